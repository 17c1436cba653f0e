package responses

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/provider"
	"github.com/wireform/wireform/tool"
)

func TestDecodeMessages(t *testing.T) {
	t.Parallel()

	t.Run("message item with output text", func(t *testing.T) {
		t.Parallel()
		msgs, err := DecodeMessages(`[{
			"type": "message",
			"id": "msg_1",
			"role": "assistant",
			"content": [{"type": "output_text", "text": "foo"}]
		}]`)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, messages.RoleAssistant, msgs[0].Role)
		assert.Equal(t, "msg_1", msgs[0].ID)
		require.Len(t, msgs[0].Content.Parts, 1)
		assert.Equal(t, messages.Text("foo"), msgs[0].Content.Parts[0])
	})

	t.Run("bare role item is message shorthand", func(t *testing.T) {
		t.Parallel()
		msgs, err := DecodeMessages(`[{"role": "user", "content": "hi"}]`)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, messages.RoleUser, msgs[0].Role)
		assert.Equal(t, "hi", msgs[0].Content.Content)
	})

	t.Run("annotations become source parts after the text", func(t *testing.T) {
		t.Parallel()
		msgs, err := DecodeMessages(`[{
			"type": "message",
			"role": "assistant",
			"content": [{
				"type": "output_text",
				"text": "see the docs",
				"annotations": [{"type": "url_citation", "url": "https://example.com", "title": "Example"}]
			}]
		}]`)
		require.NoError(t, err)
		parts := msgs[0].Content.Parts
		require.Len(t, parts, 2)
		src, ok := parts[1].(messages.SourcePart)
		require.True(t, ok)
		assert.Equal(t, "https://example.com", src.URL)
		assert.Equal(t, "Example", src.Title)
	})

	t.Run("empty reasoning item is dropped", func(t *testing.T) {
		t.Parallel()
		msgs, err := DecodeMessages(`[
			{"type": "reasoning", "id": "rs_1", "summary": []},
			{"type": "message", "role": "assistant", "content": [{"type": "output_text", "text": "hi"}]}
		]`)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "hi", msgs[0].Content.Parts[0].(messages.TextPart).Text)
	})

	t.Run("reasoning summary becomes a reasoning part", func(t *testing.T) {
		t.Parallel()
		msgs, err := DecodeMessages(`[{
			"type": "reasoning",
			"summary": [{"type": "summary_text", "text": "thinking about it"}],
			"encrypted_content": "sig123"
		}]`)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		part, ok := msgs[0].Content.Parts[0].(messages.ReasoningPart)
		require.True(t, ok)
		assert.Equal(t, "thinking about it", part.Reasoning)
		assert.Equal(t, "sig123", part.Signature)
	})

	t.Run("function call and output", func(t *testing.T) {
		t.Parallel()
		msgs, err := DecodeMessages(`[
			{"type": "function_call", "id": "fc_1", "call_id": "call_1", "name": "get_weather", "arguments": "{\"city\":\"Paris\"}"},
			{"type": "function_call_output", "call_id": "call_1", "output": "21C"}
		]`)
		require.NoError(t, err)
		require.Len(t, msgs, 2)

		call, ok := msgs[0].Content.Parts[0].(messages.ToolCallPart)
		require.True(t, ok)
		assert.Equal(t, messages.RoleAssistant, msgs[0].Role)
		assert.Equal(t, "call_1", call.ID)
		assert.Equal(t, "get_weather", call.Name)

		res, ok := msgs[1].Content.Parts[0].(messages.ToolResultPart)
		require.True(t, ok)
		assert.Equal(t, messages.RoleTool, msgs[1].Role)
		assert.Equal(t, "call_1", res.ToolCallID)
		assert.Equal(t, "21C", res.Content)
	})

	t.Run("unknown item type fails", func(t *testing.T) {
		t.Parallel()
		_, err := DecodeMessages(`[{"type": "web_search_call", "id": "ws_1"}]`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown item type "web_search_call"`)

		var convErr *provider.ConversionError
		require.ErrorAs(t, err, &convErr)
		assert.Equal(t, provider.Responses, convErr.Provider)
	})

	t.Run("unknown content block survives as unknown part", func(t *testing.T) {
		t.Parallel()
		msgs, err := DecodeMessages(`[{
			"type": "message",
			"role": "user",
			"content": [{"type": "input_audio", "input_audio": {"data": "UklGRg=="}}]
		}]`)
		require.NoError(t, err)
		unk, ok := msgs[0].Content.Parts[0].(messages.UnknownPart)
		require.True(t, ok)
		assert.Equal(t, "input_audio", unk.TypeName)
	})
}

func TestEncodeMessages(t *testing.T) {
	t.Parallel()

	t.Run("assistant fans out into items in part order", func(t *testing.T) {
		t.Parallel()
		reasoning := messages.Reasoning("let me check")
		encoded, err := EncodeMessages([]messages.Message{
			{Role: messages.RoleAssistant, Content: messages.ContentOrParts{Parts: []messages.ContentPart{
				reasoning,
				messages.Text("checking now"),
				messages.CallTool("call_1", "get_weather", `{"city":"Paris"}`),
			}}},
		})
		require.NoError(t, err)
		data, err := json.Marshal(encoded)
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"type": "reasoning", "summary": [{"type": "summary_text", "text": "let me check"}]},
			{"type": "message", "role": "assistant", "content": [{"type": "output_text", "text": "checking now"}]},
			{"type": "function_call", "call_id": "call_1", "name": "get_weather", "arguments": "{\"city\":\"Paris\"}"}
		]`, string(data))
	})

	t.Run("tool result becomes function_call_output", func(t *testing.T) {
		t.Parallel()
		encoded, err := EncodeMessages([]messages.Message{
			{Role: messages.RoleTool, Content: messages.ContentOrParts{Parts: []messages.ContentPart{
				messages.ToolResult("call_1", "get_weather", "21C"),
			}}},
		})
		require.NoError(t, err)
		data, err := json.Marshal(encoded)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"type": "function_call_output", "call_id": "call_1", "output": "21C"}]`, string(data))
	})

	t.Run("source part folds back into annotations", func(t *testing.T) {
		t.Parallel()
		encoded, err := EncodeMessages([]messages.Message{
			{Role: messages.RoleAssistant, Content: messages.ContentOrParts{Parts: []messages.ContentPart{
				messages.Text("see the docs"),
				messages.Source("https://example.com", "Example"),
			}}},
		})
		require.NoError(t, err)
		data, err := json.Marshal(encoded)
		require.NoError(t, err)
		assert.JSONEq(t, `[{
			"type": "message",
			"role": "assistant",
			"content": [{
				"type": "output_text",
				"text": "see the docs",
				"annotations": [{"type": "url_citation", "url": "https://example.com", "title": "Example"}]
			}]
		}]`, string(data))
	})
}

func TestItemRoundTrip(t *testing.T) {
	t.Parallel()

	original := `[
		{"type": "message", "role": "user", "content": [{"type": "input_text", "text": "weather in Paris?"}]},
		{"type": "reasoning", "summary": [{"type": "summary_text", "text": "user wants weather"}]},
		{"type": "function_call", "call_id": "call_1", "name": "get_weather", "arguments": "{\"city\":\"Paris\"}"},
		{"type": "function_call_output", "call_id": "call_1", "output": "21C"},
		{"type": "message", "role": "assistant", "content": [{"type": "output_text", "text": "It is 21C."}]}
	]`

	msgs, err := DecodeMessages(original)
	require.NoError(t, err)
	encoded, err := EncodeMessages(msgs)
	require.NoError(t, err)
	data, err := json.Marshal(encoded)
	require.NoError(t, err)
	assert.JSONEq(t, original, string(data))
}

func TestTools(t *testing.T) {
	t.Parallel()

	t.Run("flat function tool decodes to client tool", func(t *testing.T) {
		t.Parallel()
		tools, err := DecodeTools(`[{
			"type": "function",
			"name": "get_weather",
			"description": "Current weather",
			"parameters": {"type": "object"},
			"strict": true
		}]`)
		require.NoError(t, err)
		ct, ok := tools[0].(tool.ClientTool)
		require.True(t, ok)
		assert.Equal(t, "get_weather", ct.Name)
		assert.Equal(t, map[string]any{"strict": true}, ct.Options)
	})

	t.Run("provider tool type is respelled for this format", func(t *testing.T) {
		t.Parallel()
		encoded, err := EncodeTools([]tool.Tool{
			tool.ProviderTool{Type: "web_search_20250305"},
		})
		require.NoError(t, err)
		assert.Equal(t, "web_search_preview", encoded[0]["type"])
	})

	t.Run("unknown provider tool type passes through", func(t *testing.T) {
		t.Parallel()
		encoded, err := EncodeTools([]tool.Tool{
			tool.ProviderTool{Type: "file_search", Config: map[string]any{"vector_store_ids": []any{"vs_1"}}},
		})
		require.NoError(t, err)
		assert.Equal(t, "file_search", encoded[0]["type"])
		assert.Equal(t, []any{"vs_1"}, encoded[0]["vector_store_ids"])
	})

	t.Run("client tool encodes flat", func(t *testing.T) {
		t.Parallel()
		encoded, err := EncodeTools([]tool.Tool{
			tool.ClientTool{Name: "get_weather", InputSchema: map[string]any{"type": "object"}},
		})
		require.NoError(t, err)
		data, err := json.Marshal(encoded)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"type": "function", "name": "get_weather", "parameters": {"type": "object"}}]`, string(data))
	})
}
