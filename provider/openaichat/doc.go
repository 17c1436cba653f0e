// Package openaichat converts OpenAI Chat Completions payloads to and from
// the canonical message representation.
//
// The decoder accepts parsed JSON (maps and slices) or SDK objects with the
// same structure; it never requires a specific client library's types. The
// encoder always emits plain maps so callers can feed the result to any
// HTTP client or SDK. Importing this package registers the codec and the
// streaming-chunk codec for the chat_completions format.
package openaichat
