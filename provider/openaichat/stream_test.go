package openaichat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/provider"
)

func TestStreamCodecMatchesChunk(t *testing.T) {
	t.Parallel()

	sc := streamCodec{}
	assert.True(t, sc.MatchesChunk(gjson.Parse(`{"object":"chat.completion.chunk","choices":[]}`)))
	assert.True(t, sc.MatchesChunk(gjson.Parse(`{"choices":[{"delta":{"content":"hi"}}]}`)))
	assert.False(t, sc.MatchesChunk(gjson.Parse(`{"type":"response.output_text.delta","delta":"hi"}`)))
	assert.False(t, sc.MatchesChunk(gjson.Parse(`{"type":"content_block_delta","delta":{"type":"text_delta","text":"hi"}}`)))
	assert.False(t, sc.MatchesChunk(gjson.Parse(`{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`)))
}

func TestStreamCodecDecodeChunk(t *testing.T) {
	t.Parallel()

	sc := streamCodec{}

	t.Run("text delta", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{
			"id": "chatcmpl-123",
			"object": "chat.completion.chunk",
			"model": "gpt-4o",
			"choices": [{"index": 0, "delta": {"role": "assistant", "content": "Hel"}, "finish_reason": null}]
		}`))
		require.NoError(t, err)
		assert.Equal(t, "chatcmpl-123", delta.ID)
		assert.Equal(t, "gpt-4o", delta.Model)
		assert.Equal(t, "assistant", delta.Role)
		assert.Equal(t, "Hel", delta.Text)
		assert.False(t, delta.Done)
	})

	t.Run("tool call fragment", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{
			"id": "chatcmpl-123",
			"choices": [{"index": 0, "delta": {"tool_calls": [
				{"index": 0, "id": "call_1", "function": {"name": "get_weather", "arguments": "{\"ci"}}
			]}, "finish_reason": null}]
		}`))
		require.NoError(t, err)
		require.NotNil(t, delta.ToolCall)
		assert.Equal(t, 0, delta.ToolCall.Index)
		assert.Equal(t, "call_1", delta.ToolCall.ID)
		assert.Equal(t, "get_weather", delta.ToolCall.Name)
		assert.Equal(t, `{"ci`, delta.ToolCall.Arguments)
	})

	t.Run("finish reason marks done", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{
			"id": "chatcmpl-123",
			"choices": [{"index": 0, "delta": {}, "finish_reason": "stop"}]
		}`))
		require.NoError(t, err)
		assert.True(t, delta.Done)
		assert.Equal(t, "stop", delta.FinishReason)
	})
}

func TestStreamCodecEncodeChunk(t *testing.T) {
	t.Parallel()

	sc := streamCodec{}

	t.Run("text delta", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{ID: "chatcmpl-1", Model: "gpt-4o", Role: "assistant", Text: "Hel"})
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"id": "chatcmpl-1",
			"object": "chat.completion.chunk",
			"model": "gpt-4o",
			"choices": [{"index": 0, "delta": {"role": "assistant", "content": "Hel"}, "finish_reason": null}]
		}`, string(out))
	})

	t.Run("missing id gets synthesized", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{Text: "hi"})
		require.NoError(t, err)
		id := gjson.GetBytes(out, "id").String()
		assert.True(t, strings.HasPrefix(id, "chatcmpl-"))
		assert.Greater(t, len(id), len("chatcmpl-"))
	})

	t.Run("done chunk carries finish reason", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{ID: "chatcmpl-1", Done: true})
		require.NoError(t, err)
		assert.Equal(t, "stop", gjson.GetBytes(out, "choices.0.finish_reason").String())
	})

	t.Run("nil delta fails", func(t *testing.T) {
		t.Parallel()
		_, err := sc.EncodeChunk(nil)
		require.Error(t, err)
	})
}

func TestCodecRegistration(t *testing.T) {
	t.Parallel()

	c, ok := provider.Lookup(provider.ChatCompletions)
	require.True(t, ok)
	assert.Equal(t, provider.ChatCompletions, c.Format())

	sc, ok := provider.LookupStream(provider.ChatCompletions)
	require.True(t, ok)
	assert.Equal(t, provider.ChatCompletions, sc.Format())
}
