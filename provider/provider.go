package provider

// Format identifies a provider wire format.
type Format string

const (
	// ChatCompletions is the OpenAI Chat Completions message-array format.
	ChatCompletions Format = "chat_completions"
	// Responses is the OpenAI Responses API typed-item-list format.
	Responses Format = "responses"
	// Anthropic is the Anthropic Messages API format.
	Anthropic Format = "anthropic"
	// Google is the Google GenerateContent contents format.
	Google Format = "google"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{ChatCompletions, Responses, Anthropic, Google}
}

// Known reports whether f is a supported format.
func Known(f Format) bool {
	switch f {
	case ChatCompletions, Responses, Anthropic, Google:
		return true
	}
	return false
}

// ImportOrder is the fixed priority in which span payloads are attempted
// against decoders: Responses item arrays first (their typed items are the
// most distinctive shape), then Chat Completions message arrays, then
// Anthropic block arrays, then Google contents. The order is load-bearing:
// the shapes overlap, so reordering changes which decoder wins for
// ambiguous payloads and is a behavior-breaking change, not a refactor.
func ImportOrder() []Format {
	return []Format{Responses, ChatCompletions, Anthropic, Google}
}
