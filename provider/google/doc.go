// Package google converts Google GenerateContent payloads to and from the
// canonical message representation. Parts are keyed unions rather than
// type-tagged objects, function calls carry no ids, and inline data on a
// model turn is a generated file. Importing this package registers the
// codec and streaming-chunk codec for the google format.
package google
