package messages

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var jsonNull = []byte(`null`)

// PartKind identifies one of the closed set of content part variants.
type PartKind string

const (
	KindText          PartKind = "text"
	KindFile          PartKind = "file"
	KindToolCall      PartKind = "tool_call"
	KindReasoning     PartKind = "reasoning"
	KindSource        PartKind = "source"
	KindGeneratedFile PartKind = "generated_file"
	KindToolResult    PartKind = "tool_result"
	KindToolError     PartKind = "tool_error"
	KindUnknown       PartKind = "unknown"
)

// ContentPart is the interface implemented by every content part variant.
// The set is closed except for UnknownPart, which carries content the engine
// does not recognize so it can round-trip untouched.
type ContentPart interface {
	contentPart()
	Kind() PartKind
}

// ContentOrParts represents either a simple string content or an ordered
// sequence of content parts. The two representations are distinct on the
// wire and are never silently normalized into each other; normalization
// happens only inside equality comparisons.
type ContentOrParts struct {
	Content string        // Raw string content, used when the message is just text
	Parts   []ContentPart // Ordered content parts
	_       struct{}      // require keyed usage
}

// MarshalJSON returns the Content as a JSON string when set, otherwise the
// Parts as a JSON array. Returns null when both are empty.
func (c ContentOrParts) MarshalJSON() ([]byte, error) {
	if c.Content != "" {
		return json.Marshal(c.Content)
	}
	if c.Parts == nil {
		return jsonNull, nil
	}
	return json.Marshal(c.Parts)
}

// UnmarshalJSON handles both string content and arrays of content parts.
func (c *ContentOrParts) UnmarshalJSON(input []byte) error {
	if !gjson.ValidBytes(input) {
		return fmt.Errorf("invalid json: %s", input)
	}
	jv := gjson.ParseBytes(input)
	if jv.IsArray() {
		aj := jv.Array()
		parts := make([]ContentPart, len(aj))
		for idx, ajv := range aj {
			part, err := parsePart(ajv)
			if err != nil {
				return fmt.Errorf("invalid content part at %d: %w", idx, err)
			}
			parts[idx] = part
		}
		c.Parts = parts
		return nil
	}
	if jv.Type == gjson.Null {
		return nil
	}
	c.Content = jv.String()
	return nil
}

// parsePart decodes a single IR content part object, dispatching on the
// "type" discriminator. Unrecognized discriminators become UnknownPart so
// that content introduced after this code shipped still round-trips.
func parsePart(jv gjson.Result) (ContentPart, error) {
	if !jv.IsObject() {
		return nil, errors.New("content part must be an object")
	}
	tpe := jv.Get("type")
	if !tpe.Exists() {
		return nil, errors.New("missing required field 'type'")
	}
	switch PartKind(tpe.String()) {
	case KindText:
		var part TextPart
		if err := part.UnmarshalJSON([]byte(jv.Raw)); err != nil {
			return nil, err
		}
		return part, nil
	case KindFile:
		var part FilePart
		if err := part.UnmarshalJSON([]byte(jv.Raw)); err != nil {
			return nil, err
		}
		return part, nil
	case KindToolCall:
		var part ToolCallPart
		if err := part.UnmarshalJSON([]byte(jv.Raw)); err != nil {
			return nil, err
		}
		return part, nil
	case KindReasoning:
		var part ReasoningPart
		if err := part.UnmarshalJSON([]byte(jv.Raw)); err != nil {
			return nil, err
		}
		return part, nil
	case KindSource:
		var part SourcePart
		if err := part.UnmarshalJSON([]byte(jv.Raw)); err != nil {
			return nil, err
		}
		return part, nil
	case KindGeneratedFile:
		var part GeneratedFilePart
		if err := part.UnmarshalJSON([]byte(jv.Raw)); err != nil {
			return nil, err
		}
		return part, nil
	case KindToolResult:
		var part ToolResultPart
		if err := part.UnmarshalJSON([]byte(jv.Raw)); err != nil {
			return nil, err
		}
		return part, nil
	case KindToolError:
		var part ToolErrorPart
		if err := part.UnmarshalJSON([]byte(jv.Raw)); err != nil {
			return nil, err
		}
		return part, nil
	default:
		return Unknown(tpe.String(), jv.Raw), nil
	}
}

// Text creates a new TextPart with the given text.
func Text(text string) TextPart {
	return TextPart{Text: text}
}

// TextPart is a plain text content part.
type TextPart struct {
	Text string   `json:"text"`
	_    struct{} // require keyed usage
}

func (TextPart) contentPart()   {}
func (TextPart) Kind() PartKind { return KindText }

var textJSON = []byte(`{"type":"text"}`)

func (t TextPart) MarshalJSON() ([]byte, error) {
	return sjson.SetBytes(textJSON, "text", t.Text)
}

func (t *TextPart) UnmarshalJSON(input []byte) error {
	text := gjson.GetBytes(input, "text")
	if !text.Exists() {
		return errors.New("missing required field 'text'")
	}
	t.Text = text.String()
	return nil
}

// File creates a FilePart carrying base64 data with a media type.
func File(mediaType, data string) FilePart {
	return FilePart{MediaType: mediaType, Data: data}
}

// FileURI creates a FilePart referencing external data by URI.
func FileURI(mediaType, uri string) FilePart {
	return FilePart{MediaType: mediaType, URI: uri}
}

// FilePart is a file attached to a system or user message. Exactly one of
// Data (base64) and URI is set.
type FilePart struct {
	MediaType string   `json:"media_type,omitempty"`
	Data      string   `json:"data,omitempty"`
	URI       string   `json:"uri,omitempty"`
	Filename  string   `json:"filename,omitempty"`
	_         struct{} // require keyed usage
}

func (FilePart) contentPart()   {}
func (FilePart) Kind() PartKind { return KindFile }

var fileJSON = []byte(`{"type":"file"}`)

func (f FilePart) MarshalJSON() ([]byte, error) {
	result := fileJSON
	var err error
	if f.MediaType != "" {
		if result, err = sjson.SetBytes(result, "media_type", f.MediaType); err != nil {
			return nil, err
		}
	}
	if f.Data != "" {
		if result, err = sjson.SetBytes(result, "data", f.Data); err != nil {
			return nil, err
		}
	}
	if f.URI != "" {
		if result, err = sjson.SetBytes(result, "uri", f.URI); err != nil {
			return nil, err
		}
	}
	if f.Filename != "" {
		if result, err = sjson.SetBytes(result, "filename", f.Filename); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (f *FilePart) UnmarshalJSON(input []byte) error {
	data := gjson.GetBytes(input, "data")
	uri := gjson.GetBytes(input, "uri")
	if !data.Exists() && !uri.Exists() {
		return errors.New("file part requires either 'data' or 'uri'")
	}
	f.Data = data.String()
	f.URI = uri.String()
	f.MediaType = gjson.GetBytes(input, "media_type").String()
	f.Filename = gjson.GetBytes(input, "filename").String()
	return nil
}

// CallTool creates a ToolCallPart. Arguments is JSON text.
func CallTool(id, name, arguments string) ToolCallPart {
	return ToolCallPart{ID: id, Name: name, Arguments: arguments}
}

// ToolCallPart is an assistant request to invoke a tool. Arguments holds the
// call arguments as JSON text, exactly as the provider produced them.
type ToolCallPart struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Arguments string   `json:"arguments"`
	_         struct{} // require keyed usage
}

func (ToolCallPart) contentPart()   {}
func (ToolCallPart) Kind() PartKind { return KindToolCall }

var toolCallJSON = []byte(`{"type":"tool_call"}`)

func (t ToolCallPart) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes(toolCallJSON, "id", t.ID)
	if err != nil {
		return nil, err
	}
	if result, err = sjson.SetBytes(result, "name", t.Name); err != nil {
		return nil, err
	}
	return sjson.SetBytes(result, "arguments", t.Arguments)
}

func (t *ToolCallPart) UnmarshalJSON(input []byte) error {
	name := gjson.GetBytes(input, "name")
	if !name.Exists() {
		return errors.New("missing required field 'name'")
	}
	t.ID = gjson.GetBytes(input, "id").String()
	t.Name = name.String()
	t.Arguments = gjson.GetBytes(input, "arguments").String()
	return nil
}

// Reasoning creates a ReasoningPart with the given text.
func Reasoning(text string) ReasoningPart {
	return ReasoningPart{Reasoning: text}
}

// ReasoningPart carries model thinking output. Signature preserves the
// provider's round-trip signature when one is present; Redacted marks
// blocks whose text the provider withheld.
type ReasoningPart struct {
	Reasoning string   `json:"reasoning"`
	Signature string   `json:"signature,omitempty"`
	Redacted  bool     `json:"redacted,omitempty"`
	_         struct{} // require keyed usage
}

func (ReasoningPart) contentPart()   {}
func (ReasoningPart) Kind() PartKind { return KindReasoning }

var reasoningJSON = []byte(`{"type":"reasoning"}`)

func (r ReasoningPart) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes(reasoningJSON, "reasoning", r.Reasoning)
	if err != nil {
		return nil, err
	}
	if r.Signature != "" {
		if result, err = sjson.SetBytes(result, "signature", r.Signature); err != nil {
			return nil, err
		}
	}
	if r.Redacted {
		if result, err = sjson.SetBytes(result, "redacted", true); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *ReasoningPart) UnmarshalJSON(input []byte) error {
	reasoning := gjson.GetBytes(input, "reasoning")
	if !reasoning.Exists() {
		return errors.New("missing required field 'reasoning'")
	}
	r.Reasoning = reasoning.String()
	r.Signature = gjson.GetBytes(input, "signature").String()
	r.Redacted = gjson.GetBytes(input, "redacted").Bool()
	return nil
}

// Source creates a SourcePart referencing a cited URL.
func Source(url, title string) SourcePart {
	return SourcePart{URL: url, Title: title}
}

// SourcePart is a citation attached to assistant output, such as a URL
// annotation on a Responses API message.
type SourcePart struct {
	URL   string   `json:"url"`
	Title string   `json:"title,omitempty"`
	_     struct{} // require keyed usage
}

func (SourcePart) contentPart()   {}
func (SourcePart) Kind() PartKind { return KindSource }

var sourceJSON = []byte(`{"type":"source"}`)

func (s SourcePart) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes(sourceJSON, "url", s.URL)
	if err != nil {
		return nil, err
	}
	if s.Title != "" {
		return sjson.SetBytes(result, "title", s.Title)
	}
	return result, nil
}

func (s *SourcePart) UnmarshalJSON(input []byte) error {
	url := gjson.GetBytes(input, "url")
	if !url.Exists() {
		return errors.New("missing required field 'url'")
	}
	s.URL = url.String()
	s.Title = gjson.GetBytes(input, "title").String()
	return nil
}

// GeneratedFile creates a GeneratedFilePart carrying base64 data.
func GeneratedFile(mediaType, data string) GeneratedFilePart {
	return GeneratedFilePart{MediaType: mediaType, Data: data}
}

// GeneratedFilePart is a file produced by the model (for example an image
// returned inline by Google GenerateContent).
type GeneratedFilePart struct {
	MediaType string   `json:"media_type"`
	Data      string   `json:"data"`
	_         struct{} // require keyed usage
}

func (GeneratedFilePart) contentPart()   {}
func (GeneratedFilePart) Kind() PartKind { return KindGeneratedFile }

var generatedFileJSON = []byte(`{"type":"generated_file"}`)

func (g GeneratedFilePart) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes(generatedFileJSON, "media_type", g.MediaType)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(result, "data", g.Data)
}

func (g *GeneratedFilePart) UnmarshalJSON(input []byte) error {
	data := gjson.GetBytes(input, "data")
	if !data.Exists() {
		return errors.New("missing required field 'data'")
	}
	g.Data = data.String()
	g.MediaType = gjson.GetBytes(input, "media_type").String()
	return nil
}

// ToolResult creates a ToolResultPart with plain text content.
func ToolResult(toolCallID, name, content string) ToolResultPart {
	return ToolResultPart{ToolCallID: toolCallID, Name: name, Content: content}
}

// ToolResultPart is the outcome of a tool call. Content carries plain text
// results; Blocks preserves structured wire content (an Anthropic block
// array, a Google response object) verbatim as raw JSON so it survives a
// round trip without reshaping.
type ToolResultPart struct {
	ToolCallID string   `json:"tool_call_id"`
	Name       string   `json:"name,omitempty"`
	Content    string   `json:"content,omitempty"`
	Blocks     string   `json:"-"` // raw JSON, set instead of Content for structured results
	_          struct{} // require keyed usage
}

func (ToolResultPart) contentPart()   {}
func (ToolResultPart) Kind() PartKind { return KindToolResult }

var toolResultJSON = []byte(`{"type":"tool_result"}`)

func (t ToolResultPart) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes(toolResultJSON, "tool_call_id", t.ToolCallID)
	if err != nil {
		return nil, err
	}
	if t.Name != "" {
		if result, err = sjson.SetBytes(result, "name", t.Name); err != nil {
			return nil, err
		}
	}
	if t.Blocks != "" {
		return sjson.SetRawBytes(result, "content", []byte(t.Blocks))
	}
	return sjson.SetBytes(result, "content", t.Content)
}

func (t *ToolResultPart) UnmarshalJSON(input []byte) error {
	id := gjson.GetBytes(input, "tool_call_id")
	if !id.Exists() {
		return errors.New("missing required field 'tool_call_id'")
	}
	t.ToolCallID = id.String()
	t.Name = gjson.GetBytes(input, "name").String()
	content := gjson.GetBytes(input, "content")
	switch {
	case content.Type == gjson.String:
		t.Content = content.String()
	case content.Exists():
		t.Blocks = content.Raw
	}
	return nil
}

// ToolError creates a ToolErrorPart.
func ToolError(toolCallID, name, message string) ToolErrorPart {
	return ToolErrorPart{ToolCallID: toolCallID, Name: name, Error: message}
}

// ToolErrorPart reports a failed tool call.
type ToolErrorPart struct {
	ToolCallID string   `json:"tool_call_id"`
	Name       string   `json:"name,omitempty"`
	Error      string   `json:"error"`
	_          struct{} // require keyed usage
}

func (ToolErrorPart) contentPart()   {}
func (ToolErrorPart) Kind() PartKind { return KindToolError }

var toolErrorJSON = []byte(`{"type":"tool_error"}`)

func (t ToolErrorPart) MarshalJSON() ([]byte, error) {
	result, err := sjson.SetBytes(toolErrorJSON, "tool_call_id", t.ToolCallID)
	if err != nil {
		return nil, err
	}
	if t.Name != "" {
		if result, err = sjson.SetBytes(result, "name", t.Name); err != nil {
			return nil, err
		}
	}
	return sjson.SetBytes(result, "error", t.Error)
}

func (t *ToolErrorPart) UnmarshalJSON(input []byte) error {
	id := gjson.GetBytes(input, "tool_call_id")
	if !id.Exists() {
		return errors.New("missing required field 'tool_call_id'")
	}
	errMsg := gjson.GetBytes(input, "error")
	if !errMsg.Exists() {
		return errors.New("missing required field 'error'")
	}
	t.ToolCallID = id.String()
	t.Name = gjson.GetBytes(input, "name").String()
	t.Error = errMsg.String()
	return nil
}

// Unknown creates an UnknownPart from a discriminator and the raw JSON of
// the original object. The raw form is re-emitted verbatim on marshal.
func Unknown(typeName, raw string) UnknownPart {
	return UnknownPart{TypeName: typeName, Raw: raw}
}

// UnknownPart is the open-world escape hatch: a content part whose type
// discriminator this engine does not recognize. It keeps the original
// object byte-for-byte so the payload survives any round trip.
type UnknownPart struct {
	TypeName string
	Raw      string
	_        struct{} // require keyed usage
}

func (UnknownPart) contentPart()   {}
func (UnknownPart) Kind() PartKind { return KindUnknown }

func (u UnknownPart) MarshalJSON() ([]byte, error) {
	if u.Raw == "" {
		return sjson.SetBytes([]byte(`{}`), "type", u.TypeName)
	}
	if !gjson.Valid(u.Raw) {
		return nil, fmt.Errorf("unknown part carries invalid json: %s", u.Raw)
	}
	return []byte(u.Raw), nil
}

func (u *UnknownPart) UnmarshalJSON(input []byte) error {
	if !gjson.ValidBytes(input) {
		return fmt.Errorf("invalid json: %s", input)
	}
	u.TypeName = gjson.GetBytes(input, "type").String()
	u.Raw = string(input)
	return nil
}
