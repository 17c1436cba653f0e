package responses

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/provider"
)

// streamCodec converts Responses API streaming events ("response."-prefixed
// type discriminators) to and from chunk deltas.
type streamCodec struct{}

func (streamCodec) Format() provider.Format { return provider.Responses }

func (streamCodec) MatchesChunk(chunk gjson.Result) bool {
	return strings.HasPrefix(chunk.Get("type").String(), "response.")
}

func (streamCodec) DecodeChunk(chunk gjson.Result) (*provider.ChunkDelta, error) {
	delta := &provider.ChunkDelta{
		ID:    chunk.Get("response.id").String(),
		Model: chunk.Get("response.model").String(),
	}

	switch chunk.Get("type").String() {
	case "response.created", "response.in_progress":
		delta.Role = "assistant"
	case "response.output_text.delta":
		delta.Text = chunk.Get("delta").String()
	case "response.reasoning_summary_text.delta":
		delta.Reasoning = chunk.Get("delta").String()
	case "response.output_item.added":
		if item := chunk.Get("item"); item.Get("type").String() == "function_call" {
			delta.ToolCall = &provider.ToolCallDelta{
				Index: int(chunk.Get("output_index").Int()),
				ID:    item.Get("call_id").String(),
				Name:  item.Get("name").String(),
			}
		}
	case "response.function_call_arguments.delta":
		delta.ToolCall = &provider.ToolCallDelta{
			Index:     int(chunk.Get("output_index").Int()),
			Arguments: chunk.Get("delta").String(),
		}
	case "response.completed":
		delta.Done = true
		delta.FinishReason = finishReason(chunk.Get("response.status").String())
	case "response.incomplete":
		delta.Done = true
		delta.FinishReason = finishReason("incomplete")
	}
	// Other event kinds (content part boundaries, usage) carry nothing the
	// delta form needs; they decode to an empty delta.
	return delta, nil
}

func finishReason(status string) string {
	switch status {
	case "", "completed":
		return "stop"
	case "incomplete":
		return "length"
	default:
		return status
	}
}

func (streamCodec) EncodeChunk(delta *provider.ChunkDelta) ([]byte, error) {
	if delta == nil {
		return nil, provider.EncodeErr(provider.Responses, fmt.Errorf("missing chunk delta"))
	}

	id := delta.ID
	if id == "" {
		id = "resp_" + uuid.NewString()
	}

	var event map[string]any
	switch {
	case delta.Done:
		status := "completed"
		if delta.FinishReason == "length" {
			status = "incomplete"
		}
		resp := map[string]any{"id": id, "status": status}
		if delta.Model != "" {
			resp["model"] = delta.Model
		}
		event = map[string]any{"type": "response." + status, "response": resp}
	case delta.ToolCall != nil && delta.ToolCall.Name != "":
		item := map[string]any{"type": "function_call", "name": delta.ToolCall.Name}
		if delta.ToolCall.ID != "" {
			item["call_id"] = delta.ToolCall.ID
		}
		event = map[string]any{
			"type":         "response.output_item.added",
			"output_index": delta.ToolCall.Index,
			"item":         item,
		}
	case delta.ToolCall != nil:
		event = map[string]any{
			"type":         "response.function_call_arguments.delta",
			"output_index": delta.ToolCall.Index,
			"delta":        delta.ToolCall.Arguments,
		}
	case delta.Text != "":
		event = map[string]any{"type": "response.output_text.delta", "delta": delta.Text}
	case delta.Reasoning != "":
		event = map[string]any{"type": "response.reasoning_summary_text.delta", "delta": delta.Reasoning}
	default:
		resp := map[string]any{"id": id}
		if delta.Model != "" {
			resp["model"] = delta.Model
		}
		event = map[string]any{"type": "response.created", "response": resp}
	}

	out, err := json.Marshal(event)
	if err != nil {
		return nil, provider.EncodeErr(provider.Responses, err)
	}
	return out, nil
}
