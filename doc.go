// Package wireform converts chat messages and tool definitions between
// large-language-model provider wire formats through a single canonical
// representation.
//
// The supported formats are OpenAI Chat Completions, OpenAI Responses,
// Anthropic Messages, and Google GenerateContent. Application code works
// against the types in the messages and tool packages; the per-provider
// codecs in provider/* translate to and from each wire format. On top of
// the codecs sit semantic deduplication (messages.Deduplicate), heuristic
// import from trace spans (spans), structural payload validation
// (validate), and streaming-chunk reformatting with source-format
// auto-detection (stream).
//
// This package is a facade: it re-exposes those operations keyed by
// provider.Format and registers every codec, so a blank import is never
// needed. Callers wanting a smaller dependency surface can import the
// subpackages directly.
package wireform
