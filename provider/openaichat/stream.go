package openaichat

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/provider"
)

// streamCodec converts Chat Completions streaming chunks
// (object == "chat.completion.chunk") to and from chunk deltas.
type streamCodec struct{}

func (streamCodec) Format() provider.Format { return provider.ChatCompletions }

func (streamCodec) MatchesChunk(chunk gjson.Result) bool {
	if chunk.Get("object").String() == "chat.completion.chunk" {
		return true
	}
	// Some relays strip the object field; the choices[].delta shape is
	// unique to this format among the supported ones.
	choices := chunk.Get("choices")
	return choices.IsArray() && choices.Get("0.delta").Exists()
}

func (streamCodec) DecodeChunk(chunk gjson.Result) (*provider.ChunkDelta, error) {
	delta := &provider.ChunkDelta{
		ID:    chunk.Get("id").String(),
		Model: chunk.Get("model").String(),
	}

	choice := chunk.Get("choices.0")
	if !choice.Exists() {
		// Usage-only or keepalive chunk: nothing to carry over.
		return delta, nil
	}

	d := choice.Get("delta")
	delta.Role = d.Get("role").String()
	delta.Text = d.Get("content").String()
	delta.Reasoning = d.Get("reasoning_content").String()

	if tc := d.Get("tool_calls.0"); tc.Exists() {
		delta.ToolCall = &provider.ToolCallDelta{
			Index:     int(tc.Get("index").Int()),
			ID:        tc.Get("id").String(),
			Name:      tc.Get("function.name").String(),
			Arguments: tc.Get("function.arguments").String(),
		}
	}

	if fr := choice.Get("finish_reason"); fr.Exists() && fr.Type != gjson.Null {
		delta.FinishReason = fr.String()
		delta.Done = true
	}
	return delta, nil
}

func (streamCodec) EncodeChunk(delta *provider.ChunkDelta) ([]byte, error) {
	if delta == nil {
		return nil, provider.EncodeErr(provider.ChatCompletions, fmt.Errorf("missing chunk delta"))
	}

	id := delta.ID
	if id == "" {
		id = "chatcmpl-" + uuid.NewString()
	}

	d := map[string]any{}
	if delta.Role != "" {
		d["role"] = delta.Role
	}
	if delta.Text != "" {
		d["content"] = delta.Text
	}
	if delta.Reasoning != "" {
		d["reasoning_content"] = delta.Reasoning
	}
	if tc := delta.ToolCall; tc != nil {
		entry := map[string]any{"index": tc.Index, "type": "function"}
		if tc.ID != "" {
			entry["id"] = tc.ID
		}
		fn := map[string]any{}
		if tc.Name != "" {
			fn["name"] = tc.Name
		}
		if tc.Arguments != "" {
			fn["arguments"] = tc.Arguments
		}
		if len(fn) > 0 {
			entry["function"] = fn
		}
		d["tool_calls"] = []any{entry}
	}

	choice := map[string]any{"index": 0, "delta": d}
	if delta.Done {
		fr := delta.FinishReason
		if fr == "" {
			fr = "stop"
		}
		choice["finish_reason"] = fr
	} else {
		choice["finish_reason"] = nil
	}

	chunk := map[string]any{
		"id":      id,
		"object":  "chat.completion.chunk",
		"choices": []any{choice},
	}
	if delta.Model != "" {
		chunk["model"] = delta.Model
	}

	out, err := json.Marshal(chunk)
	if err != nil {
		return nil, provider.EncodeErr(provider.ChatCompletions, err)
	}
	return out, nil
}
