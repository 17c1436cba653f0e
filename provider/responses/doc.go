// Package responses converts OpenAI Responses API payloads to and from the
// canonical message representation.
//
// The Responses API carries a flat, ordered list of typed items rather than
// role-keyed turns. Each item decodes independently to zero or one message:
// reasoning stubs with no summary disappear, everything else maps one to
// one. Importing this package registers the codec and streaming-chunk codec
// for the responses format.
package responses
