package wireform

import (
	"fmt"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/provider"
	"github.com/wireform/wireform/spans"
	"github.com/wireform/wireform/stream"
	"github.com/wireform/wireform/tool"
	"github.com/wireform/wireform/validate"

	// register every provider codec behind the facade
	_ "github.com/wireform/wireform/provider/anthropic"
	_ "github.com/wireform/wireform/provider/google"
	_ "github.com/wireform/wireform/provider/openaichat"
	_ "github.com/wireform/wireform/provider/responses"
)

// DecodeMessages converts a provider payload into messages. The input may
// be a raw JSON string, []byte, parsed maps/slices, or SDK objects with the
// provider's structure.
func DecodeMessages(f provider.Format, raw any) ([]messages.Message, error) {
	codec, ok := provider.Lookup(f)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", f)
	}
	return codec.DecodeMessages(raw)
}

// EncodeMessages converts messages into the provider's wire form.
func EncodeMessages(f provider.Format, msgs []messages.Message) ([]map[string]any, error) {
	codec, ok := provider.Lookup(f)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", f)
	}
	return codec.EncodeMessages(msgs)
}

// DecodeTools converts provider tool definitions into IR tools.
func DecodeTools(f provider.Format, raw any) ([]tool.Tool, error) {
	codec, ok := provider.Lookup(f)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", f)
	}
	return codec.DecodeTools(raw)
}

// EncodeTools converts IR tools into the provider's wire form.
func EncodeTools(f provider.Format, tools []tool.Tool) ([]map[string]any, error) {
	codec, ok := provider.Lookup(f)
	if !ok {
		return nil, fmt.Errorf("unknown format %q", f)
	}
	return codec.EncodeTools(tools)
}

// Convert decodes a payload from one format and re-encodes it for another
// in a single call.
func Convert(from, to provider.Format, raw any) ([]map[string]any, error) {
	msgs, err := DecodeMessages(from, raw)
	if err != nil {
		return nil, err
	}
	return EncodeMessages(to, msgs)
}

// Deduplicate removes semantically equal messages, keeping first
// occurrences and preserving order.
func Deduplicate(msgs []messages.Message) []messages.Message {
	return messages.Deduplicate(msgs)
}

// ImportFromSpans extracts messages from span records; see spans.Importer
// for the probing rules.
func ImportFromSpans(spns []spans.Span) ([]messages.Message, error) {
	return spans.ImportMessages(spns)
}

// ImportAndDeduplicateMessages is ImportFromSpans followed by Deduplicate
// as a single pass.
func ImportAndDeduplicateMessages(spns []spans.Span) ([]messages.Message, error) {
	return spans.ImportAndDeduplicate(spns)
}

// ValidateRequest structurally validates a request payload.
func ValidateRequest(f provider.Format, jsonText string) validate.Result {
	return validate.Request(f, jsonText)
}

// ValidateResponse structurally validates a response payload.
func ValidateResponse(f provider.Format, jsonText string) validate.Result {
	return validate.Response(f, jsonText)
}

// ValidateStreamChunk structurally validates a streaming chunk.
func ValidateStreamChunk(f provider.Format, jsonText string) validate.Result {
	return validate.StreamChunk(f, jsonText)
}

// TransformStreamChunk re-encodes one streaming chunk for the target
// format, auto-detecting the source format.
func TransformStreamChunk(jsonText string, target provider.Format) (stream.Result, error) {
	return stream.TransformChunk(jsonText, target)
}
