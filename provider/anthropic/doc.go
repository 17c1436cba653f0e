// Package anthropic converts Anthropic Messages API payloads to and from
// the canonical message representation. One wire entry maps to exactly one
// message; tool results ride in user entries on the wire and in tool
// messages in the IR. Importing this package registers the codec and
// streaming-chunk codec for the anthropic format.
package anthropic
