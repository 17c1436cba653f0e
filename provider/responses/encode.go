package responses

import (
	"fmt"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
)

// EncodeMessages converts IR messages into Responses API items. A single
// assistant message can fan out into several items: text runs become one
// message item, while every tool call and reasoning part is an item of its
// own, in part order.
func EncodeMessages(msgs []messages.Message) ([]map[string]any, error) {
	var out []map[string]any
	for idx, msg := range msgs {
		items, err := encodeMessage(msg)
		if err != nil {
			return nil, provider.EncodeErr(provider.Responses, fmt.Errorf("messages.%d: %w", idx, err))
		}
		out = append(out, items...)
	}
	if out == nil {
		out = []map[string]any{}
	}
	return out, nil
}

func encodeMessage(msg messages.Message) ([]map[string]any, error) {
	var items []map[string]any
	var err error

	switch msg.Role {
	case messages.RoleSystem, messages.RoleUser:
		items, err = encodeInputMessage(msg)
	case messages.RoleAssistant:
		items, err = encodeAssistant(msg)
	case messages.RoleTool:
		items, err = encodeToolMessage(msg)
	default:
		return nil, fmt.Errorf("unknown role %q", msg.Role)
	}
	if err != nil {
		return nil, err
	}

	if len(items) > 0 {
		if msg.ID != "" {
			items[0]["id"] = msg.ID
		}
		applyMeta(items[0], msg, "status")
	}
	return items, nil
}

func encodeInputMessage(msg messages.Message) ([]map[string]any, error) {
	item := map[string]any{"type": "message", "role": string(msg.Role)}

	if msg.Content.Content != "" || msg.Content.Parts == nil {
		item["content"] = msg.Content.Content
		return []map[string]any{item}, nil
	}

	blocks := make([]any, 0, len(msg.Content.Parts))
	for _, part := range msg.Content.Parts {
		switch p := part.(type) {
		case messages.TextPart:
			blocks = append(blocks, map[string]any{"type": "input_text", "text": p.Text})
		case messages.FilePart:
			blocks = append(blocks, encodeFileBlock(p, "input"))
		case messages.UnknownPart:
			block, err := unknownBlock(p)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
		default:
			return nil, fmt.Errorf("part kind %q is not valid in a %s message", part.Kind(), msg.Role)
		}
	}
	item["content"] = blocks
	return []map[string]any{item}, nil
}

// encodeAssistant splits one assistant message into items: consecutive
// text/source/file parts collect into a message item, tool calls and
// reasoning parts each close the run and emit their own item.
func encodeAssistant(msg messages.Message) ([]map[string]any, error) {
	if msg.Content.Content != "" || msg.Content.Parts == nil {
		return []map[string]any{{
			"type":    "message",
			"role":    "assistant",
			"content": msg.Content.Content,
		}}, nil
	}

	var items []map[string]any
	var blocks []any

	flush := func() {
		if len(blocks) == 0 {
			return
		}
		content := make([]any, len(blocks))
		for i, b := range blocks {
			content[i] = b
		}
		items = append(items, map[string]any{"type": "message", "role": "assistant", "content": content})
		blocks = nil
	}

	for _, part := range msg.Content.Parts {
		switch p := part.(type) {
		case messages.TextPart:
			blocks = append(blocks, map[string]any{"type": "output_text", "text": p.Text})
		case messages.SourcePart:
			ann := map[string]any{"type": "url_citation", "url": p.URL}
			if p.Title != "" {
				ann["title"] = p.Title
			}
			var last map[string]any
			if len(blocks) > 0 {
				last, _ = blocks[len(blocks)-1].(map[string]any)
			}
			if last == nil {
				last = map[string]any{"type": "output_text", "text": ""}
				blocks = append(blocks, last)
			}
			anns, _ := last["annotations"].([]any)
			last["annotations"] = append(anns, ann)
		case messages.FilePart:
			blocks = append(blocks, encodeFileBlock(p, "input"))
		case messages.GeneratedFilePart:
			blocks = append(blocks, map[string]any{"type": "input_file", "file_data": p.Data})
		case messages.ToolCallPart:
			flush()
			items = append(items, map[string]any{
				"type":      "function_call",
				"call_id":   p.ID,
				"name":      p.Name,
				"arguments": p.Arguments,
			})
		case messages.ReasoningPart:
			flush()
			item := map[string]any{"type": "reasoning", "summary": summaryBlocks(p.Reasoning)}
			if p.Signature != "" {
				item["encrypted_content"] = p.Signature
			}
			items = append(items, item)
		case messages.UnknownPart:
			block, err := unknownBlock(p)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
		default:
			return nil, fmt.Errorf("part kind %q is not valid in an assistant message", part.Kind())
		}
	}
	flush()
	return items, nil
}

func encodeToolMessage(msg messages.Message) ([]map[string]any, error) {
	items := make([]map[string]any, 0, len(msg.Content.Parts))
	for _, part := range msg.Content.Parts {
		switch p := part.(type) {
		case messages.ToolResultPart:
			item := map[string]any{"type": "function_call_output", "call_id": p.ToolCallID}
			if p.Blocks != "" {
				val, err := jsonx.ValueFromRaw(p.Blocks)
				if err != nil {
					return nil, fmt.Errorf("tool result output: %w", err)
				}
				item["output"] = val
			} else {
				item["output"] = p.Content
			}
			items = append(items, item)
		case messages.ToolErrorPart:
			items = append(items, map[string]any{
				"type":    "function_call_output",
				"call_id": p.ToolCallID,
				"output":  p.Error,
			})
		default:
			return nil, fmt.Errorf("part kind %q is not valid in a tool message", part.Kind())
		}
	}
	return items, nil
}

func encodeFileBlock(p messages.FilePart, direction string) map[string]any {
	if p.URI != "" && p.Data == "" && p.Filename == "" {
		return map[string]any{"type": direction + "_image", "image_url": p.URI}
	}
	block := map[string]any{"type": "input_file"}
	if p.Data != "" {
		block["file_data"] = p.Data
	}
	if p.URI != "" {
		block["file_url"] = p.URI
	}
	if p.Filename != "" {
		block["filename"] = p.Filename
	}
	return block
}

func summaryBlocks(text string) []any {
	if text == "" {
		return []any{}
	}
	return []any{map[string]any{"type": "summary_text", "text": text}}
}

func unknownBlock(p messages.UnknownPart) (any, error) {
	if p.Raw == "" {
		return map[string]any{"type": p.TypeName}, nil
	}
	return jsonx.ValueFromRaw(p.Raw)
}

func applyMeta(item map[string]any, msg messages.Message, fields ...string) {
	if !msg.Meta.Exists() {
		return
	}
	for _, f := range fields {
		if v := msg.Meta.Get(f); v.Exists() {
			if val, err := jsonx.ValueFromRaw(v.Raw); err == nil {
				item[f] = val
			}
		}
	}
}
