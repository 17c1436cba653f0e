package openaichat

import (
	"fmt"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
)

// EncodeMessages converts IR messages into Chat Completions message maps.
// IR parts the format cannot express are emitted verbatim inside the
// content array, tagged with their original discriminator, instead of
// being dropped.
//
// One shape does not round-trip its content shorthand: an assistant turn
// whose parts are a single text part plus tool calls encodes with a plain
// string content, because decoding merges tool_calls into the part array
// and a string body cannot sit next to tool-call parts in the IR. The
// message is semantically identical either way; only the string-vs-array
// spelling changes.
func EncodeMessages(msgs []messages.Message) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(msgs))
	for idx, msg := range msgs {
		encoded, err := encodeMessage(msg)
		if err != nil {
			return nil, provider.EncodeErr(provider.ChatCompletions, fmt.Errorf("messages.%d: %w", idx, err))
		}
		out = append(out, encoded...)
	}
	return out, nil
}

func encodeMessage(msg messages.Message) ([]map[string]any, error) {
	switch msg.Role {
	case messages.RoleSystem, messages.RoleUser:
		m, err := encodeTextual(msg)
		if err != nil {
			return nil, err
		}
		return []map[string]any{m}, nil
	case messages.RoleAssistant:
		m, err := encodeAssistant(msg)
		if err != nil {
			return nil, err
		}
		return []map[string]any{m}, nil
	case messages.RoleTool:
		// one wire message per tool result: the format keys results by
		// tool_call_id, not by turn
		return encodeToolMessage(msg)
	default:
		return nil, fmt.Errorf("unknown role %q", msg.Role)
	}
}

func encodeTextual(msg messages.Message) (map[string]any, error) {
	m := map[string]any{"role": string(msg.Role)}

	if msg.Content.Content != "" || msg.Content.Parts == nil {
		m["content"] = msg.Content.Content
	} else {
		parts := make([]any, 0, len(msg.Content.Parts))
		for _, part := range msg.Content.Parts {
			encoded, err := encodeContentPart(part)
			if err != nil {
				return nil, err
			}
			parts = append(parts, encoded)
		}
		m["content"] = parts
	}
	applyMeta(m, msg, "name")
	return m, nil
}

func encodeAssistant(msg messages.Message) (map[string]any, error) {
	m := map[string]any{"role": "assistant"}

	var textParts []any
	var toolCalls []any
	for _, part := range msg.Content.Parts {
		switch p := part.(type) {
		case messages.ToolCallPart:
			toolCalls = append(toolCalls, map[string]any{
				"id":   p.ID,
				"type": "function",
				"function": map[string]any{
					"name":      p.Name,
					"arguments": p.Arguments,
				},
			})
		case messages.TextPart:
			textParts = append(textParts, map[string]any{"type": "text", "text": p.Text})
		default:
			encoded, err := encodeContentPart(part)
			if err != nil {
				return nil, err
			}
			textParts = append(textParts, encoded)
		}
	}

	switch {
	case msg.Content.Content != "":
		m["content"] = msg.Content.Content
	case len(textParts) == 1 && len(toolCalls) > 0:
		// canonical chat form: a lone text part next to tool calls is a
		// plain content string
		if tp, ok := textParts[0].(map[string]any); ok && tp["type"] == "text" {
			m["content"] = tp["text"]
		} else {
			m["content"] = textParts
		}
	case len(textParts) > 0:
		m["content"] = textParts
	}
	if len(toolCalls) > 0 {
		m["tool_calls"] = toolCalls
	}
	applyMeta(m, msg, "name", "refusal")
	return m, nil
}

func encodeToolMessage(msg messages.Message) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(msg.Content.Parts))
	for _, part := range msg.Content.Parts {
		switch p := part.(type) {
		case messages.ToolResultPart:
			m := map[string]any{"role": "tool", "tool_call_id": p.ToolCallID}
			if p.Blocks != "" {
				val, err := jsonx.ValueFromRaw(p.Blocks)
				if err != nil {
					return nil, fmt.Errorf("tool result content: %w", err)
				}
				m["content"] = val
			} else {
				m["content"] = p.Content
			}
			if p.Name != "" {
				m["name"] = p.Name
			}
			out = append(out, m)
		case messages.ToolErrorPart:
			// the format has no error flag; the error text is the content
			m := map[string]any{"role": "tool", "tool_call_id": p.ToolCallID, "content": p.Error}
			if p.Name != "" {
				m["name"] = p.Name
			}
			out = append(out, m)
		default:
			return nil, fmt.Errorf("part kind %q is not valid in a tool message", part.Kind())
		}
	}
	return out, nil
}

// encodeContentPart maps an IR part onto the format's content-part shapes.
// Parts without a native equivalent are emitted verbatim, keyed by their
// original discriminator, so nothing is dropped.
func encodeContentPart(part messages.ContentPart) (any, error) {
	switch p := part.(type) {
	case messages.TextPart:
		return map[string]any{"type": "text", "text": p.Text}, nil
	case messages.FilePart:
		if p.URI != "" {
			return map[string]any{"type": "image_url", "image_url": map[string]any{"url": p.URI}}, nil
		}
		file := map[string]any{}
		if p.Data != "" {
			file["file_data"] = p.Data
		}
		if p.Filename != "" {
			file["filename"] = p.Filename
		}
		if p.MediaType != "" {
			file["media_type"] = p.MediaType
		}
		return map[string]any{"type": "file", "file": file}, nil
	case messages.UnknownPart:
		if p.Raw == "" {
			return map[string]any{"type": p.TypeName}, nil
		}
		return jsonx.ValueFromRaw(p.Raw)
	default:
		return verbatimPart(part)
	}
}

// verbatimPart renders an IR part in its own JSON form, preserving the
// discriminator and payload for formats that cannot express it natively.
func verbatimPart(part messages.ContentPart) (any, error) {
	jv, err := jsonx.Parse(part)
	if err != nil {
		return nil, fmt.Errorf("failed to render %q part: %w", part.Kind(), err)
	}
	return jsonx.ValueFromRaw(jv.Raw)
}

// applyMeta restores selected metadata fields captured at decode time.
func applyMeta(m map[string]any, msg messages.Message, fields ...string) {
	if !msg.Meta.Exists() {
		return
	}
	for _, f := range fields {
		if v := msg.Meta.Get(f); v.Exists() {
			val, err := jsonx.ValueFromRaw(v.Raw)
			if err == nil {
				m[f] = val
			}
		}
	}
}
