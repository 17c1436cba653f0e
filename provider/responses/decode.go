package responses

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
)

// DecodeMessages converts a Responses API item array into IR messages. The
// input is a flat ordered list of typed items; each item decodes on its own
// and yields zero or one Message. Item order carries over to the output.
func DecodeMessages(raw any) ([]messages.Message, error) {
	jv, err := jsonx.Parse(raw)
	if err != nil {
		return nil, provider.DecodeErr(provider.Responses, err)
	}
	if !jv.IsArray() {
		return nil, provider.DecodeErr(provider.Responses, fmt.Errorf("expected an item array, got %s", jv.Type))
	}

	items := jv.Array()
	out := make([]messages.Message, 0, len(items))
	for idx, item := range items {
		msg, ok, err := decodeItem(item)
		if err != nil {
			return nil, provider.DecodeErr(provider.Responses, fmt.Errorf("input.%d: %w", idx, err))
		}
		if ok {
			out = append(out, msg)
		}
	}
	return out, nil
}

// decodeItem returns the message for one item, or ok=false when the item
// legitimately contributes nothing (reasoning with an empty summary).
func decodeItem(item gjson.Result) (messages.Message, bool, error) {
	tpe := item.Get("type")
	if !tpe.Exists() {
		// Bare role-keyed items are shorthand for type:"message". Shorthand
		// is strict about block types: other formats' message arrays look
		// exactly like this, and loose acceptance here would swallow them
		// before their own decoder gets a chance during format detection.
		if item.Get("role").Exists() {
			if item.Get("tool_calls").Exists() || item.Get("tool_call_id").Exists() {
				return messages.Message{}, false, fmt.Errorf("missing required field 'type'")
			}
			return decodeMessageItem(item, true)
		}
		return messages.Message{}, false, fmt.Errorf("missing required field 'type'")
	}

	switch tpe.String() {
	case "message":
		return decodeMessageItem(item, false)
	case "reasoning":
		return decodeReasoningItem(item)
	case "function_call":
		return decodeFunctionCall(item)
	case "function_call_output":
		return decodeFunctionCallOutput(item)
	default:
		return messages.Message{}, false, fmt.Errorf("type: unknown item type %q", tpe.String())
	}
}

func decodeMessageItem(item gjson.Result, strict bool) (messages.Message, bool, error) {
	role := item.Get("role")
	if !role.Exists() {
		return messages.Message{}, false, fmt.Errorf("missing required field 'role'")
	}

	var irRole messages.Role
	switch role.String() {
	case "system", "developer":
		irRole = messages.RoleSystem
	case "user":
		irRole = messages.RoleUser
	case "assistant":
		irRole = messages.RoleAssistant
	default:
		return messages.Message{}, false, fmt.Errorf("role: unknown role %q", role.String())
	}

	msg := messages.Message{Role: irRole, ID: item.Get("id").String()}
	content := item.Get("content")
	switch {
	case content.Type == gjson.String:
		msg.Content = messages.ContentOrParts{Content: content.String()}
	case content.IsArray():
		parts, err := decodeContentBlocks(content, strict)
		if err != nil {
			return messages.Message{}, false, err
		}
		msg.Content = messages.ContentOrParts{Parts: parts}
	default:
		return messages.Message{}, false, fmt.Errorf("content: missing required field 'content'")
	}
	msg.Meta = metaFromFields(item, "status")
	return msg, true, msg.Validate()
}

func decodeContentBlocks(content gjson.Result, strict bool) ([]messages.ContentPart, error) {
	blocks := content.Array()
	parts := make([]messages.ContentPart, 0, len(blocks))
	for idx, block := range blocks {
		tpe := block.Get("type")
		if !tpe.Exists() {
			return nil, fmt.Errorf("content.%d.type: missing required field 'type'", idx)
		}
		switch tpe.String() {
		case "input_text", "output_text":
			parts = append(parts, messages.Text(block.Get("text").String()))
			// citations travel as source parts right after their text
			for _, ann := range block.Get("annotations").Array() {
				if ann.Get("type").String() == "url_citation" {
					parts = append(parts, messages.Source(ann.Get("url").String(), ann.Get("title").String()))
				}
			}
		case "input_image":
			url := block.Get("image_url")
			if !url.Exists() {
				return nil, fmt.Errorf("content.%d.image_url: missing required field 'image_url'", idx)
			}
			parts = append(parts, messages.FilePart{URI: url.String()})
		case "input_file":
			parts = append(parts, messages.FilePart{
				Data:     block.Get("file_data").String(),
				URI:      block.Get("file_url").String(),
				Filename: block.Get("filename").String(),
			})
		default:
			if strict {
				return nil, fmt.Errorf("content.%d.type: unknown block type %q", idx, tpe.String())
			}
			parts = append(parts, messages.Unknown(tpe.String(), block.Raw))
		}
	}
	return parts, nil
}

// decodeReasoningItem drops items whose summary carries no text; an empty
// reasoning stub is provider bookkeeping, not content.
func decodeReasoningItem(item gjson.Result) (messages.Message, bool, error) {
	var sb strings.Builder
	for _, s := range item.Get("summary").Array() {
		if txt := s.Get("text").String(); txt != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(txt)
		}
	}

	encrypted := item.Get("encrypted_content").String()
	if sb.Len() == 0 && encrypted == "" {
		return messages.Message{}, false, nil
	}

	part := messages.Reasoning(sb.String())
	part.Signature = encrypted

	msg := messages.Message{
		Role:    messages.RoleAssistant,
		ID:      item.Get("id").String(),
		Content: messages.ContentOrParts{Parts: []messages.ContentPart{part}},
	}
	return msg, true, msg.Validate()
}

func decodeFunctionCall(item gjson.Result) (messages.Message, bool, error) {
	name := item.Get("name")
	if !name.Exists() {
		return messages.Message{}, false, fmt.Errorf("name: missing required field 'name'")
	}

	msg := messages.Message{
		Role: messages.RoleAssistant,
		ID:   item.Get("id").String(),
		Content: messages.ContentOrParts{Parts: []messages.ContentPart{
			messages.CallTool(item.Get("call_id").String(), name.String(), item.Get("arguments").String()),
		}},
	}
	msg.Meta = metaFromFields(item, "status")
	return msg, true, msg.Validate()
}

func decodeFunctionCallOutput(item gjson.Result) (messages.Message, bool, error) {
	callID := item.Get("call_id")
	if !callID.Exists() {
		return messages.Message{}, false, fmt.Errorf("call_id: missing required field 'call_id'")
	}

	part := messages.ToolResultPart{ToolCallID: callID.String()}
	output := item.Get("output")
	switch {
	case output.Type == gjson.String:
		part.Content = output.String()
	case output.Exists():
		part.Blocks = output.Raw
	}

	msg := messages.Message{
		Role:    messages.RoleTool,
		ID:      item.Get("id").String(),
		Content: messages.ContentOrParts{Parts: []messages.ContentPart{part}},
	}
	msg.Meta = metaFromFields(item, "status")
	return msg, true, msg.Validate()
}

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
