package google

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/provider"
)

// streamCodec converts GenerateContent streaming chunks (candidates array
// carrying incremental parts) to and from chunk deltas.
type streamCodec struct{}

func (streamCodec) Format() provider.Format { return provider.Google }

func (streamCodec) MatchesChunk(chunk gjson.Result) bool {
	return chunk.Get("candidates").IsArray()
}

func (streamCodec) DecodeChunk(chunk gjson.Result) (*provider.ChunkDelta, error) {
	delta := &provider.ChunkDelta{
		ID:    chunk.Get("responseId").String(),
		Model: chunk.Get("modelVersion").String(),
	}

	candidate := chunk.Get("candidates.0")
	if !candidate.Exists() {
		return delta, nil
	}

	content := candidate.Get("content")
	if content.Get("role").String() == "model" {
		delta.Role = "assistant"
	}

	if part := content.Get("parts.0"); part.Exists() {
		switch {
		case part.Get("functionCall").Exists():
			fc := part.Get("functionCall")
			delta.ToolCall = &provider.ToolCallDelta{
				Name:      fc.Get("name").String(),
				Arguments: fc.Get("args").Raw,
			}
		case part.Get("thought").Bool():
			delta.Reasoning = part.Get("text").String()
		default:
			delta.Text = part.Get("text").String()
		}
	}

	if fr := candidate.Get("finishReason"); fr.Exists() && fr.String() != "" {
		delta.Done = true
		delta.FinishReason = finishReason(fr.String())
	}
	return delta, nil
}

func finishReason(reason string) string {
	switch reason {
	case "STOP":
		return "stop"
	case "MAX_TOKENS":
		return "length"
	default:
		return reason
	}
}

func candidateFinishReason(finishReason string) string {
	switch finishReason {
	case "", "stop", "tool_calls":
		return "STOP"
	case "length":
		return "MAX_TOKENS"
	default:
		return finishReason
	}
}

func (streamCodec) EncodeChunk(delta *provider.ChunkDelta) ([]byte, error) {
	if delta == nil {
		return nil, provider.EncodeErr(provider.Google, fmt.Errorf("missing chunk delta"))
	}

	var parts []any
	switch {
	case delta.ToolCall != nil:
		fc := map[string]any{"name": delta.ToolCall.Name}
		if delta.ToolCall.Arguments != "" {
			fc["args"] = json.RawMessage(delta.ToolCall.Arguments)
		}
		parts = append(parts, map[string]any{"functionCall": fc})
	case delta.Reasoning != "":
		parts = append(parts, map[string]any{"text": delta.Reasoning, "thought": true})
	case delta.Text != "":
		parts = append(parts, map[string]any{"text": delta.Text})
	}

	candidate := map[string]any{"index": 0}
	if len(parts) > 0 || delta.Role != "" {
		if parts == nil {
			parts = []any{}
		}
		candidate["content"] = map[string]any{"role": "model", "parts": parts}
	}
	if delta.Done {
		candidate["finishReason"] = candidateFinishReason(delta.FinishReason)
	}

	chunk := map[string]any{"candidates": []any{candidate}}
	if delta.ID != "" {
		chunk["responseId"] = delta.ID
	}
	if delta.Model != "" {
		chunk["modelVersion"] = delta.Model
	}

	out, err := json.Marshal(chunk)
	if err != nil {
		return nil, provider.EncodeErr(provider.Google, err)
	}
	return out, nil
}
