package anthropic

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
)

// DecodeMessages converts an Anthropic Messages API message array into IR
// messages, exactly one Message per wire entry. A user entry holding only
// tool_result blocks comes back as a tool message, matching where tool
// results live in the IR.
func DecodeMessages(raw any) ([]messages.Message, error) {
	jv, err := jsonx.Parse(raw)
	if err != nil {
		return nil, provider.DecodeErr(provider.Anthropic, err)
	}
	if !jv.IsArray() {
		return nil, provider.DecodeErr(provider.Anthropic, fmt.Errorf("expected a message array, got %s", jv.Type))
	}

	items := jv.Array()
	out := make([]messages.Message, 0, len(items))
	for idx, item := range items {
		msg, err := decodeMessage(item)
		if err != nil {
			return nil, provider.DecodeErr(provider.Anthropic, fmt.Errorf("messages.%d: %w", idx, err))
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
	if r := role.String(); r != "user" && r != "assistant" {
		return messages.Message{}, fmt.Errorf("role: unknown role %q", r)
	}

	content := item.Get("content")
	if content.Type == gjson.String {
		irRole := messages.RoleUser
		if role.String() == "assistant" {
			irRole = messages.RoleAssistant
		}
		return messages.Message{Role: irRole, Content: messages.ContentOrParts{Content: content.String()}}, nil
	}
	if !content.IsArray() {
		return messages.Message{}, fmt.Errorf("content: missing required field 'content'")
	}

	blocks := content.Array()
	parts := make([]messages.ContentPart, 0, len(blocks))
	toolParts := 0
	for idx, block := range blocks {
		part, err := decodeBlock(block)
		if err != nil {
			return messages.Message{}, fmt.Errorf("content.%d: %w", idx, err)
		}
		switch part.Kind() {
		case messages.KindToolResult, messages.KindToolError:
			toolParts++
		}
		parts = append(parts, part)
	}

	irRole := messages.RoleAssistant
	if role.String() == "user" {
		switch {
		case toolParts == len(parts) && toolParts > 0:
			irRole = messages.RoleTool
		case toolParts > 0:
			return messages.Message{}, fmt.Errorf("content: tool_result blocks cannot mix with other content")
		default:
			irRole = messages.RoleUser
		}
	}

	msg := messages.Message{Role: irRole, Content: messages.ContentOrParts{Parts: parts}}
	return msg, msg.Validate()
}

func decodeBlock(block gjson.Result) (messages.ContentPart, error) {
	tpe := block.Get("type")
	if !tpe.Exists() {
		return nil, fmt.Errorf("type: missing required field 'type'")
	}

	switch tpe.String() {
	case "text":
		txt := block.Get("text")
		if !txt.Exists() {
			return nil, fmt.Errorf("text: missing required field 'text'")
		}
		return messages.Text(txt.String()), nil
	case "tool_use":
		name := block.Get("name")
		if !name.Exists() {
			return nil, fmt.Errorf("name: missing required field 'name'")
		}
		args := "{}"
		if input := block.Get("input"); input.Exists() {
			args = input.Raw
		}
		return messages.CallTool(block.Get("id").String(), name.String(), args), nil
	case "tool_result":
		return decodeToolResult(block)
	case "thinking":
		part := messages.Reasoning(block.Get("thinking").String())
		part.Signature = block.Get("signature").String()
		return part, nil
	case "redacted_thinking":
		part := messages.ReasoningPart{Redacted: true, Signature: block.Get("data").String()}
		return part, nil
	case "image", "document":
		return decodeFileBlock(block)
	default:
		return messages.Unknown(tpe.String(), block.Raw), nil
	}
}

func decodeToolResult(block gjson.Result) (messages.ContentPart, error) {
	callID := block.Get("tool_use_id")
	if !callID.Exists() {
		return nil, fmt.Errorf("tool_use_id: missing required field 'tool_use_id'")
	}

	content := block.Get("content")
	if block.Get("is_error").Bool() {
		errText := content.String()
		if content.IsArray() {
			errText = content.Raw
		}
		return messages.ToolError(callID.String(), "", errText), nil
	}

	part := messages.ToolResultPart{ToolCallID: callID.String()}
	switch {
	case content.Type == gjson.String:
		part.Content = content.String()
	case content.Exists():
		part.Blocks = content.Raw
	}
	return part, nil
}

func decodeFileBlock(block gjson.Result) (messages.ContentPart, error) {
	source := block.Get("source")
	if !source.Exists() {
		return nil, fmt.Errorf("source: missing required field 'source'")
	}

	part := messages.FilePart{
		MediaType: source.Get("media_type").String(),
		Filename:  block.Get("title").String(),
	}
	switch source.Get("type").String() {
	case "url":
		part.URI = source.Get("url").String()
	default:
		part.Data = source.Get("data").String()
	}
	return part, nil
}
