package anthropic

import (
	"fmt"
	"strings"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
)

// EncodeMessages converts IR messages into Anthropic Messages API entries.
// Tool messages become user entries carrying tool_result blocks; system
// messages become user entries, since this format keeps the system prompt
// outside the message list.
func EncodeMessages(msgs []messages.Message) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(msgs))
	for idx, msg := range msgs {
		encoded, err := encodeMessage(msg)
		if err != nil {
			return nil, provider.EncodeErr(provider.Anthropic, fmt.Errorf("messages.%d: %w", idx, err))
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
		role = "assistant"
	default:
		return nil, fmt.Errorf("unknown role %q", msg.Role)
	}

	m := map[string]any{"role": role}
	if msg.Content.Content != "" || msg.Content.Parts == nil {
		m["content"] = msg.Content.Content
		return m, nil
	}

	blocks := make([]any, 0, len(msg.Content.Parts))
	for _, part := range msg.Content.Parts {
		block, err := encodeBlock(part)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	m["content"] = blocks
	return m, nil
}

func encodeBlock(part messages.ContentPart) (any, error) {
	switch p := part.(type) {
	case messages.TextPart:
		return map[string]any{"type": "text", "text": p.Text}, nil
	case messages.ToolCallPart:
		block := map[string]any{"type": "tool_use", "id": p.ID, "name": p.Name}
		if p.Arguments != "" {
			input, err := jsonx.ValueFromRaw(p.Arguments)
			if err != nil {
				return nil, fmt.Errorf("tool_use input: %w", err)
			}
			block["input"] = input
		} else {
			block["input"] = map[string]any{}
		}
		return block, nil
	case messages.ToolResultPart:
		block := map[string]any{"type": "tool_result", "tool_use_id": p.ToolCallID}
		if p.Blocks != "" {
			content, err := jsonx.ValueFromRaw(p.Blocks)
			if err != nil {
				return nil, fmt.Errorf("tool_result content: %w", err)
			}
			block["content"] = content
		} else {
			block["content"] = p.Content
		}
		return block, nil
	case messages.ToolErrorPart:
		return map[string]any{
			"type":        "tool_result",
			"tool_use_id": p.ToolCallID,
			"content":     p.Error,
			"is_error":    true,
		}, nil
	case messages.ReasoningPart:
		if p.Redacted {
			return map[string]any{"type": "redacted_thinking", "data": p.Signature}, nil
		}
		block := map[string]any{"type": "thinking", "thinking": p.Reasoning}
		if p.Signature != "" {
			block["signature"] = p.Signature
		}
		return block, nil
	case messages.FilePart:
		return encodeFileBlock(p), nil
	case messages.GeneratedFilePart:
		return encodeFileBlock(messages.File(p.MediaType, p.Data)), nil
	case messages.UnknownPart:
		if p.Raw == "" {
			return map[string]any{"type": p.TypeName}, nil
		}
		return jsonx.ValueFromRaw(p.Raw)
	default:
		// parts with no block equivalent keep their own JSON form
		jv, err := jsonx.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("failed to render %q part: %w", part.Kind(), err)
		}
		return jsonx.ValueFromRaw(jv.Raw)
	}
}

func encodeFileBlock(p messages.FilePart) map[string]any {
	source := map[string]any{}
	if p.URI != "" {
		source["type"] = "url"
		source["url"] = p.URI
	} else {
		source["type"] = "base64"
		source["data"] = p.Data
	}
	if p.MediaType != "" {
		source["media_type"] = p.MediaType
	}

	blockType := "image"
	if p.MediaType != "" && !strings.HasPrefix(p.MediaType, "image/") {
		blockType = "document"
	}
	block := map[string]any{"type": blockType, "source": source}
	if p.Filename != "" {
		block["title"] = p.Filename
	}
	return block
}
