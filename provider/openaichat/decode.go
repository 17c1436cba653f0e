package openaichat

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
)

// DecodeMessages converts a Chat Completions message array into IR
// messages, one output Message per input message. Input may be parsed JSON
// (maps/slices) or SDK-shaped objects; acceptance is structural.
func DecodeMessages(raw any) ([]messages.Message, error) {
	jv, err := jsonx.Parse(raw)
	if err != nil {
		return nil, provider.DecodeErr(provider.ChatCompletions, err)
	}
	if !jv.IsArray() {
		return nil, provider.DecodeErr(provider.ChatCompletions, fmt.Errorf("expected a message array, got %s", jv.Type))
	}

	items := jv.Array()
	out := make([]messages.Message, 0, len(items))
	for idx, item := range items {
		msg, err := decodeMessage(item)
		if err != nil {
			return nil, provider.DecodeErr(provider.ChatCompletions, fmt.Errorf("messages.%d: %w", idx, err))
		}
		out = append(out, msg)
	}
	return out, nil
}

func decodeMessage(item gjson.Result) (messages.Message, error) {
	role := item.Get("role")
	if !role.Exists() {
		return messages.Message{}, fmt.Errorf("missing required field 'role'")
	}

	switch role.String() {
	case "system", "developer":
		return decodeTextual(item, messages.RoleSystem)
	case "user":
		return decodeTextual(item, messages.RoleUser)
	case "assistant":
		return decodeAssistant(item)
	case "tool":
		return decodeToolMessage(item)
	default:
		return messages.Message{}, fmt.Errorf("role: unknown role %q", role.String())
	}
}

// decodeTextual handles system and user messages: string content passes
// through unchanged, array content becomes ordered parts.
func decodeTextual(item gjson.Result, role messages.Role) (messages.Message, error) {
	content := item.Get("content")
	if !content.Exists() {
		return messages.Message{}, fmt.Errorf("content: missing required field 'content'")
	}

	msg := messages.Message{Role: role}
	if content.Type == gjson.String {
		msg.Content = messages.ContentOrParts{Content: content.String()}
	} else {
		parts, err := decodeContentParts(content)
		if err != nil {
			return messages.Message{}, err
		}
		msg.Content = messages.ContentOrParts{Parts: parts}
	}
	msg.Meta = metaFromFields(item, "name")
	return msg, msg.Validate()
}

func decodeAssistant(item gjson.Result) (messages.Message, error) {
	var parts []messages.ContentPart

	content := item.Get("content")
	isString := content.Exists() && content.Type == gjson.String

	if content.IsArray() {
		decoded, err := decodeContentParts(content)
		if err != nil {
			return messages.Message{}, err
		}
		parts = decoded
	}

	// tool_calls become trailing tool-call parts, in array order, appended
	// after any text parts.
	toolCalls := item.Get("tool_calls")
	if toolCalls.IsArray() {
		for i, tc := range toolCalls.Array() {
			fn := tc.Get("function")
			if !fn.Get("name").Exists() {
				return messages.Message{}, fmt.Errorf("tool_calls.%d.function.name: missing required field 'name'", i)
			}
			parts = append(parts, messages.ToolCallPart{
				ID:        tc.Get("id").String(),
				Name:      fn.Get("name").String(),
				Arguments: fn.Get("arguments").String(),
			})
		}
	}

	msg := messages.Message{Role: messages.RoleAssistant}
	if isString && len(parts) == 0 {
		msg.Content = messages.ContentOrParts{Content: content.String()}
	} else {
		if isString && content.String() != "" {
			parts = append([]messages.ContentPart{messages.Text(content.String())}, parts...)
		}
		msg.Content = messages.ContentOrParts{Parts: parts}
	}
	msg.Meta = metaFromFields(item, "name", "refusal")
	return msg, msg.Validate()
}

// decodeToolMessage maps a standalone role:"tool" message to a Message with
// a single tool-result part referencing the call id.
func decodeToolMessage(item gjson.Result) (messages.Message, error) {
	callID := item.Get("tool_call_id")
	if !callID.Exists() {
		return messages.Message{}, fmt.Errorf("tool_call_id: missing required field 'tool_call_id'")
	}

	part := messages.ToolResultPart{
		ToolCallID: callID.String(),
		Name:       item.Get("name").String(),
	}
	content := item.Get("content")
	switch {
	case content.Type == gjson.String:
		part.Content = content.String()
	case content.Exists():
		part.Blocks = content.Raw
	}

	msg := messages.Message{
		Role:    messages.RoleTool,
		Content: messages.ContentOrParts{Parts: []messages.ContentPart{part}},
	}
	return msg, msg.Validate()
}

func decodeContentParts(content gjson.Result) ([]messages.ContentPart, error) {
	items := content.Array()
	parts := make([]messages.ContentPart, 0, len(items))
	for idx, cp := range items {
		tpe := cp.Get("type")
		if !tpe.Exists() {
			return nil, fmt.Errorf("content.%d.type: missing required field 'type'", idx)
		}
		switch tpe.String() {
		case "text":
			txt := cp.Get("text")
			if !txt.Exists() {
				return nil, fmt.Errorf("content.%d.text: missing required field 'text'", idx)
			}
			parts = append(parts, messages.Text(txt.String()))
		case "image_url":
			url := cp.Get("image_url.url")
			if !url.Exists() {
				return nil, fmt.Errorf("content.%d.image_url.url: missing required field 'url'", idx)
			}
			parts = append(parts, messages.FilePart{URI: url.String()})
		case "file":
			parts = append(parts, messages.FilePart{
				Data:      cp.Get("file.file_data").String(),
				Filename:  cp.Get("file.filename").String(),
				MediaType: cp.Get("file.media_type").String(),
			})
		case "refusal":
			// refusal blocks have no IR part of their own; keep them opaque
			parts = append(parts, messages.Unknown("refusal", cp.Raw))
		default:
			parts = append(parts, messages.Unknown(tpe.String(), cp.Raw))
		}
	}
	return parts, nil
}

// metaFromFields copies selected wire fields into message metadata so they
// survive a round trip.
func metaFromFields(item gjson.Result, fields ...string) gjson.Result {
	raw := "{}"
	found := false
	for _, f := range fields {
		if v := item.Get(f); v.Exists() && v.Type != gjson.Null {
			raw, _ = sjson.SetRaw(raw, f, v.Raw)
			found = true
		}
	}
	if !found {
		return gjson.Result{}
	}
	return gjson.Parse(raw)
}
