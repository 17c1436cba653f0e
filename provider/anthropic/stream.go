package anthropic

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/provider"
)

// streamCodec converts Anthropic streaming events (message_start,
// content_block_delta and friends) to and from chunk deltas.
type streamCodec struct{}

var eventTypes = map[string]struct{}{
	"message_start":       {},
	"message_delta":       {},
	"message_stop":        {},
	"content_block_start": {},
	"content_block_delta": {},
	"content_block_stop":  {},
	"ping":                {},
}

func (streamCodec) Format() provider.Format { return provider.Anthropic }

func (streamCodec) MatchesChunk(chunk gjson.Result) bool {
	_, ok := eventTypes[chunk.Get("type").String()]
	return ok
}

func (streamCodec) DecodeChunk(chunk gjson.Result) (*provider.ChunkDelta, error) {
	delta := &provider.ChunkDelta{}

	switch chunk.Get("type").String() {
	case "message_start":
		msg := chunk.Get("message")
		delta.ID = msg.Get("id").String()
		delta.Model = msg.Get("model").String()
		delta.Role = msg.Get("role").String()
	case "content_block_start":
		if block := chunk.Get("content_block"); block.Get("type").String() == "tool_use" {
			delta.ToolCall = &provider.ToolCallDelta{
				Index: int(chunk.Get("index").Int()),
				ID:    block.Get("id").String(),
				Name:  block.Get("name").String(),
			}
		}
	case "content_block_delta":
		d := chunk.Get("delta")
		switch d.Get("type").String() {
		case "text_delta":
			delta.Text = d.Get("text").String()
		case "thinking_delta":
			delta.Reasoning = d.Get("thinking").String()
		case "input_json_delta":
			delta.ToolCall = &provider.ToolCallDelta{
				Index:     int(chunk.Get("index").Int()),
				Arguments: d.Get("partial_json").String(),
			}
		}
	case "message_delta":
		if sr := chunk.Get("delta.stop_reason"); sr.Exists() && sr.Type != gjson.Null {
			delta.Done = true
			delta.FinishReason = finishReason(sr.String())
		}
	case "message_stop":
		delta.Done = true
	}
	return delta, nil
}

func finishReason(stopReason string) string {
	switch stopReason {
	case "end_turn", "stop_sequence":
		return "stop"
	case "max_tokens":
		return "length"
	case "tool_use":
		return "tool_calls"
	default:
		return stopReason
	}
}

func stopReason(finishReason string) string {
	switch finishReason {
	case "", "stop":
		return "end_turn"
	case "length":
		return "max_tokens"
	case "tool_calls":
		return "tool_use"
	default:
		return finishReason
	}
}

func (streamCodec) EncodeChunk(delta *provider.ChunkDelta) ([]byte, error) {
	if delta == nil {
		return nil, provider.EncodeErr(provider.Anthropic, fmt.Errorf("missing chunk delta"))
	}

	var event map[string]any
	switch {
	case delta.Done:
		event = map[string]any{
			"type":  "message_delta",
			"delta": map[string]any{"stop_reason": stopReason(delta.FinishReason)},
		}
	case delta.ToolCall != nil && delta.ToolCall.Name != "":
		event = map[string]any{
			"type":  "content_block_start",
			"index": delta.ToolCall.Index,
			"content_block": map[string]any{
				"type": "tool_use",
				"id":   delta.ToolCall.ID,
				"name": delta.ToolCall.Name,
			},
		}
	case delta.ToolCall != nil:
		event = map[string]any{
			"type":  "content_block_delta",
			"index": delta.ToolCall.Index,
			"delta": map[string]any{"type": "input_json_delta", "partial_json": delta.ToolCall.Arguments},
		}
	case delta.Text != "":
		event = map[string]any{
			"type":  "content_block_delta",
			"index": 0,
			"delta": map[string]any{"type": "text_delta", "text": delta.Text},
		}
	case delta.Reasoning != "":
		event = map[string]any{
			"type":  "content_block_delta",
			"index": 0,
			"delta": map[string]any{"type": "thinking_delta", "thinking": delta.Reasoning},
		}
	default:
		id := delta.ID
		if id == "" {
			id = "msg_" + uuid.NewString()
		}
		role := delta.Role
		if role == "" {
			role = "assistant"
		}
		msg := map[string]any{"id": id, "type": "message", "role": role}
		if delta.Model != "" {
			msg["model"] = delta.Model
		}
		event = map[string]any{"type": "message_start", "message": msg}
	}

	out, err := json.Marshal(event)
	if err != nil {
		return nil, provider.EncodeErr(provider.Anthropic, err)
	}
	return out, nil
}
