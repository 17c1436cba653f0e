package google

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
)

// DecodeMessages converts a Google GenerateContent contents array into IR
// messages, one Message per entry. Parts are keyed unions: the field that
// is present decides the part kind.
func DecodeMessages(raw any) ([]messages.Message, error) {
	jv, err := jsonx.Parse(raw)
	if err != nil {
		return nil, provider.DecodeErr(provider.Google, err)
	}
	if !jv.IsArray() {
		return nil, provider.DecodeErr(provider.Google, fmt.Errorf("expected a contents array, got %s", jv.Type))
	}

	items := jv.Array()
	out := make([]messages.Message, 0, len(items))
	for idx, item := range items {
		msg, err := decodeContent(item)
		if err != nil {
			return nil, provider.DecodeErr(provider.Google, fmt.Errorf("contents.%d: %w", idx, err))
		}
		out = append(out, msg)
	}
	return out, nil
}

func decodeContent(item gjson.Result) (messages.Message, error) {
	role := item.Get("role").String()
	var irRole messages.Role
	switch role {
	case "", "user":
		irRole = messages.RoleUser
	case "model":
		irRole = messages.RoleAssistant
	default:
		return messages.Message{}, fmt.Errorf("role: unknown role %q", role)
	}

	partsField := item.Get("parts")
	if !partsField.IsArray() {
		return messages.Message{}, fmt.Errorf("parts: missing required field 'parts'")
	}

	rawParts := partsField.Array()
	parts := make([]messages.ContentPart, 0, len(rawParts))
	responses := 0
	for idx, rp := range rawParts {
		part, err := decodePart(rp, irRole)
		if err != nil {
			return messages.Message{}, fmt.Errorf("parts.%d: %w", idx, err)
		}
		switch part.Kind() {
		case messages.KindToolResult, messages.KindToolError:
			responses++
		}
		parts = append(parts, part)
	}

	if irRole == messages.RoleUser && responses > 0 {
		if responses != len(parts) {
			return messages.Message{}, fmt.Errorf("parts: functionResponse parts cannot mix with other content")
		}
		irRole = messages.RoleTool
	}

	msg := messages.Message{Role: irRole, Content: messages.ContentOrParts{Parts: parts}}
	return msg, msg.Validate()
}

func decodePart(rp gjson.Result, role messages.Role) (messages.ContentPart, error) {
	switch {
	case rp.Get("text").Exists():
		if rp.Get("thought").Bool() {
			part := messages.Reasoning(rp.Get("text").String())
			part.Signature = rp.Get("thoughtSignature").String()
			return part, nil
		}
		return messages.Text(rp.Get("text").String()), nil

	case rp.Get("functionCall").Exists():
		fc := rp.Get("functionCall")
		name := fc.Get("name")
		if !name.Exists() {
			return nil, fmt.Errorf("functionCall.name: missing required field 'name'")
		}
		args := "{}"
		if a := fc.Get("args"); a.Exists() {
			args = a.Raw
		}
		return messages.CallTool("", name.String(), args), nil

	case rp.Get("functionResponse").Exists():
		fr := rp.Get("functionResponse")
		name := fr.Get("name")
		if !name.Exists() {
			return nil, fmt.Errorf("functionResponse.name: missing required field 'name'")
		}
		part := messages.ToolResultPart{Name: name.String()}
		if resp := fr.Get("response"); resp.Exists() {
			part.Blocks = resp.Raw
		}
		return part, nil

	case rp.Get("inlineData").Exists():
		id := rp.Get("inlineData")
		if role == messages.RoleAssistant {
			return messages.GeneratedFile(id.Get("mimeType").String(), id.Get("data").String()), nil
		}
		return messages.File(id.Get("mimeType").String(), id.Get("data").String()), nil

	case rp.Get("fileData").Exists():
		fd := rp.Get("fileData")
		return messages.FileURI(fd.Get("mimeType").String(), fd.Get("fileUri").String()), nil

	default:
		return messages.Unknown(firstKey(rp), rp.Raw), nil
	}
}

// firstKey names an unrecognized keyed-union part by its leading field.
func firstKey(rp gjson.Result) string {
	key := "unknown"
	rp.ForEach(func(k, _ gjson.Result) bool {
		key = k.String()
		return false
	})
	return key
}
