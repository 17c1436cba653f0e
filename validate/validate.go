package validate

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/provider"
)

// Kind names a payload class within one provider format.
type Kind string

const (
	KindRequest     Kind = "request"
	KindResponse    Kind = "response"
	KindStreamChunk Kind = "stream_chunk"
)

// Failure describes why a payload did not validate.
type Failure struct {
	Message string
	_       struct{} // require keyed usage
}

// Result is the outcome of a validation. Validators never return Go errors
// or panic; every outcome is a Result.
type Result struct {
	OK   bool
	Data gjson.Result
	Err  *Failure
	_    struct{} // require keyed usage
}

// GoogleUnsupportedMessage is the fixed failure message for Google
// validators. GenerateContent schemas are protobuf-backed and structural
// JSON validation of them is unsupported, permanently and on purpose.
const GoogleUnsupportedMessage = "google schema validation is unsupported: GenerateContent schemas are protobuf-backed"

// Request validates a request payload for the format.
func Request(f provider.Format, jsonText string) Result {
	return validate(f, KindRequest, jsonText)
}

// Response validates a response payload for the format.
func Response(f provider.Format, jsonText string) Result {
	return validate(f, KindResponse, jsonText)
}

// StreamChunk validates a streaming chunk for the format.
func StreamChunk(f provider.Format, jsonText string) Result {
	return validate(f, KindStreamChunk, jsonText)
}

func validate(f provider.Format, kind Kind, jsonText string) Result {
	if f == provider.Google {
		return fail(GoogleUnsupportedMessage)
	}
	if !provider.Known(f) {
		return fail(fmt.Sprintf("unknown format %q", f))
	}

	if !gjson.Valid(jsonText) {
		return fail("deserialization failure: invalid json")
	}
	jv := gjson.Parse(jsonText)
	if !jv.IsObject() {
		return fail(fmt.Sprintf("deserialization failure: expected a json object, got %s", jv.Type))
	}

	var msg string
	switch f {
	case provider.ChatCompletions:
		msg = checkChatCompletions(kind, jv)
	case provider.Responses:
		msg = checkResponses(kind, jv)
	case provider.Anthropic:
		msg = checkAnthropic(kind, jv)
	}
	if msg != "" {
		return fail(msg)
	}
	return Result{OK: true, Data: jv}
}

func fail(msg string) Result {
	return Result{Err: &Failure{Message: msg}}
}

func checkChatCompletions(kind Kind, jv gjson.Result) string {
	switch kind {
	case KindRequest:
		if msg := requireString(jv, "model"); msg != "" {
			return msg
		}
		msgs := jv.Get("messages")
		if !msgs.Exists() {
			return "missing required field 'messages'"
		}
		if !msgs.IsArray() {
			return "field 'messages': expected an array"
		}
		for i, m := range msgs.Array() {
			if !m.Get("role").Exists() {
				return fmt.Sprintf("messages.%d: missing required field 'role'", i)
			}
		}
		return ""
	case KindResponse:
		choices := jv.Get("choices")
		if !choices.Exists() {
			return "missing required field 'choices'"
		}
		if !choices.IsArray() {
			return "field 'choices': expected an array"
		}
		for i, c := range choices.Array() {
			if !c.Get("message").IsObject() {
				return fmt.Sprintf("choices.%d: missing required field 'message'", i)
			}
		}
		return ""
	default:
		if obj := jv.Get("object"); obj.String() == "chat.completion.chunk" {
			return ""
		}
		choices := jv.Get("choices")
		if !choices.IsArray() {
			return "missing required field 'choices'"
		}
		if first := choices.Get("0"); first.Exists() && !first.Get("delta").IsObject() {
			return "choices.0: missing required field 'delta'"
		}
		return ""
	}
}

func checkResponses(kind Kind, jv gjson.Result) string {
	switch kind {
	case KindRequest:
		if msg := requireString(jv, "model"); msg != "" {
			return msg
		}
		input := jv.Get("input")
		if !input.Exists() {
			return "missing required field 'input'"
		}
		if input.Type != gjson.String && !input.IsArray() {
			return "field 'input': expected a string or an array"
		}
		return ""
	case KindResponse:
		output := jv.Get("output")
		if !output.Exists() {
			return "missing required field 'output'"
		}
		if !output.IsArray() {
			return "field 'output': expected an array"
		}
		return ""
	default:
		tpe := jv.Get("type")
		if !tpe.Exists() {
			return "missing required field 'type'"
		}
		if !strings.HasPrefix(tpe.String(), "response.") {
			return fmt.Sprintf("field 'type': %q is not a responses stream event", tpe.String())
		}
		return ""
	}
}

var anthropicEvents = map[string]struct{}{
	"message_start":       {},
	"message_delta":       {},
	"message_stop":        {},
	"content_block_start": {},
	"content_block_delta": {},
	"content_block_stop":  {},
	"ping":                {},
	"error":               {},
}

func checkAnthropic(kind Kind, jv gjson.Result) string {
	switch kind {
	case KindRequest:
		if msg := requireString(jv, "model"); msg != "" {
			return msg
		}
		if !jv.Get("max_tokens").Exists() {
			return "missing required field 'max_tokens'"
		}
		msgs := jv.Get("messages")
		if !msgs.Exists() {
			return "missing required field 'messages'"
		}
		if !msgs.IsArray() {
			return "field 'messages': expected an array"
		}
		return ""
	case KindResponse:
		if tpe := jv.Get("type"); tpe.String() != "message" {
			return "field 'type': expected \"message\""
		}
		if !jv.Get("content").IsArray() {
			return "missing required field 'content'"
		}
		return ""
	default:
		tpe := jv.Get("type")
		if !tpe.Exists() {
			return "missing required field 'type'"
		}
		if _, ok := anthropicEvents[tpe.String()]; !ok {
			return fmt.Sprintf("field 'type': %q is not an anthropic stream event", tpe.String())
		}
		return ""
	}
}

func requireString(jv gjson.Result, field string) string {
	v := jv.Get(field)
	if !v.Exists() {
		return fmt.Sprintf("missing required field '%s'", field)
	}
	if v.Type != gjson.String {
		return fmt.Sprintf("field '%s': expected a string", field)
	}
	return ""
}
