package messages

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Role identifies who produced a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// allowedKinds gates which part kinds may appear under each role.
// KindUnknown is permitted everywhere: it exists to carry content the
// engine does not understand.
var allowedKinds = map[Role]map[PartKind]struct{}{
	RoleSystem: {
		KindText: {}, KindFile: {},
	},
	RoleUser: {
		KindText: {}, KindFile: {},
	},
	RoleAssistant: {
		KindText: {}, KindToolCall: {}, KindReasoning: {}, KindSource: {}, KindGeneratedFile: {},
	},
	RoleTool: {
		KindToolResult: {}, KindToolError: {},
	},
}

// Message is the canonical representation of one conversation turn. Content
// keeps whichever shorthand the wire format used (string or part array);
// Meta carries untouched provider metadata as raw JSON.
type Message struct {
	Role    Role
	Content ContentOrParts
	ID      string
	Meta    gjson.Result
	_       struct{} // require keyed usage
}

// New constructs a Message and rejects content parts that are not permitted
// for the given role.
func New(role Role, content ContentOrParts) (Message, error) {
	m := Message{Role: role, Content: content}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}

// UserText is shorthand for a user message with plain string content.
func UserText(text string) Message {
	return Message{Role: RoleUser, Content: ContentOrParts{Content: text}}
}

// AssistantText is shorthand for an assistant message with plain string content.
func AssistantText(text string) Message {
	return Message{Role: RoleAssistant, Content: ContentOrParts{Content: text}}
}

// RoleContentMismatchError reports a content part that is not permitted
// under the message's role.
type RoleContentMismatchError struct {
	Role  Role
	Kind  PartKind
	Index int
}

func (e *RoleContentMismatchError) Error() string {
	return fmt.Sprintf("content part %d of kind %q is not allowed for role %q", e.Index, e.Kind, e.Role)
}

// Validate checks the role and the role/part-kind gating table.
func (m Message) Validate() error {
	if _, ok := allowedKinds[m.Role]; !ok {
		return fmt.Errorf("unknown role %q", m.Role)
	}
	for i, part := range m.Content.Parts {
		if part.Kind() == KindUnknown {
			continue
		}
		if _, ok := allowedKinds[m.Role][part.Kind()]; !ok {
			return &RoleContentMismatchError{Role: m.Role, Kind: part.Kind(), Index: i}
		}
	}
	return nil
}

// Validate checks a message against the role/part-kind gating table.
func Validate(m Message) error { return m.Validate() }

var messageJSON = []byte(`{}`)

// MarshalJSON implements custom JSON marshaling for Message.
func (m Message) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes(messageJSON, "role", string(m.Role))
	if err != nil {
		return nil, err
	}

	content, err := m.Content.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content: %w", err)
	}
	if result, err = sjson.SetRawBytes(result, "content", content); err != nil {
		return nil, err
	}

	if m.ID != "" {
		if result, err = sjson.SetBytes(result, "id", m.ID); err != nil {
			return nil, err
		}
	}
	if m.Meta.Exists() {
		if result, err = sjson.SetRawBytes(result, "metadata", []byte(m.Meta.Raw)); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Message.
func (m *Message) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid json: %s", data)
	}

	role := gjson.GetBytes(data, "role")
	if !role.Exists() {
		return fmt.Errorf("missing required field 'role'")
	}
	m.Role = Role(role.String())

	content := gjson.GetBytes(data, "content")
	if !content.Exists() {
		return fmt.Errorf("missing required field 'content'")
	}
	if err := m.Content.UnmarshalJSON([]byte(content.Raw)); err != nil {
		return fmt.Errorf("invalid content: %w", err)
	}

	m.ID = gjson.GetBytes(data, "id").String()
	if meta := gjson.GetBytes(data, "metadata"); meta.Exists() {
		m.Meta = meta
	}

	return m.Validate()
}
