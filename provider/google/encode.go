package google

import (
	"fmt"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
)

// EncodeMessages converts IR messages into GenerateContent contents
// entries. Tool messages become user entries with functionResponse parts;
// system messages become user entries, since this format keeps the system
// instruction outside the contents list.
func EncodeMessages(msgs []messages.Message) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(msgs))
	for idx, msg := range msgs {
		encoded, err := encodeMessage(msg)
		if err != nil {
			return nil, provider.EncodeErr(provider.Google, fmt.Errorf("messages.%d: %w", idx, err))
		}
		out = append(out, encoded)
	}
	return out, nil
}

func encodeMessage(msg messages.Message) (map[string]any, error) {
	var role string
	switch msg.Role {
	case messages.RoleSystem, messages.RoleUser, messages.RoleTool:
		role = "user"
	case messages.RoleAssistant:
		role = "model"
	default:
		return nil, fmt.Errorf("unknown role %q", msg.Role)
	}

	var parts []any
	if msg.Content.Content != "" || msg.Content.Parts == nil {
		parts = []any{map[string]any{"text": msg.Content.Content}}
	} else {
		parts = make([]any, 0, len(msg.Content.Parts))
		for _, part := range msg.Content.Parts {
			encoded, err := encodePart(part)
			if err != nil {
				return nil, err
			}
			parts = append(parts, encoded)
		}
	}
	return map[string]any{"role": role, "parts": parts}, nil
}

func encodePart(part messages.ContentPart) (any, error) {
	switch p := part.(type) {
	case messages.TextPart:
		return map[string]any{"text": p.Text}, nil
	case messages.ReasoningPart:
		m := map[string]any{"text": p.Reasoning, "thought": true}
		if p.Signature != "" {
			m["thoughtSignature"] = p.Signature
		}
		return m, nil
	case messages.ToolCallPart:
		fc := map[string]any{"name": p.Name}
		if p.Arguments != "" {
			args, err := jsonx.ValueFromRaw(p.Arguments)
			if err != nil {
				return nil, fmt.Errorf("functionCall args: %w", err)
			}
			fc["args"] = args
		}
		return map[string]any{"functionCall": fc}, nil
	case messages.ToolResultPart:
		fr := map[string]any{"name": p.Name}
		switch {
		case p.Blocks != "":
			resp, err := jsonx.ValueFromRaw(p.Blocks)
			if err != nil {
				return nil, fmt.Errorf("functionResponse response: %w", err)
			}
			fr["response"] = resp
		default:
			fr["response"] = map[string]any{"result": p.Content}
		}
		return map[string]any{"functionResponse": fr}, nil
	case messages.ToolErrorPart:
		return map[string]any{"functionResponse": map[string]any{
			"name":     p.Name,
			"response": map[string]any{"error": p.Error},
		}}, nil
	case messages.FilePart:
		if p.URI != "" {
			return map[string]any{"fileData": map[string]any{
				"mimeType": p.MediaType,
				"fileUri":  p.URI,
			}}, nil
		}
		return map[string]any{"inlineData": map[string]any{
			"mimeType": p.MediaType,
			"data":     p.Data,
		}}, nil
	case messages.GeneratedFilePart:
		return map[string]any{"inlineData": map[string]any{
			"mimeType": p.MediaType,
			"data":     p.Data,
		}}, nil
	case messages.UnknownPart:
		if p.Raw == "" {
			return map[string]any{p.TypeName: map[string]any{}}, nil
		}
		return jsonx.ValueFromRaw(p.Raw)
	default:
		// parts with no keyed-union equivalent keep their own JSON form
		jv, err := jsonx.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("failed to render %q part: %w", part.Kind(), err)
		}
		return jsonx.ValueFromRaw(jv.Raw)
	}
}
