package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/provider"
)

func TestStreamCodecMatchesChunk(t *testing.T) {
	t.Parallel()

	sc := streamCodec{}
	assert.True(t, sc.MatchesChunk(gjson.Parse(`{"type":"message_start","message":{"id":"msg_1"}}`)))
	assert.True(t, sc.MatchesChunk(gjson.Parse(`{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"hi"}}`)))
	assert.True(t, sc.MatchesChunk(gjson.Parse(`{"type":"ping"}`)))
	assert.False(t, sc.MatchesChunk(gjson.Parse(`{"object":"chat.completion.chunk","choices":[]}`)))
	assert.False(t, sc.MatchesChunk(gjson.Parse(`{"type":"response.output_text.delta","delta":"hi"}`)))
}

func TestStreamCodecDecodeChunk(t *testing.T) {
	t.Parallel()

	sc := streamCodec{}

	t.Run("message_start", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{
			"type": "message_start",
			"message": {"id": "msg_1", "model": "claude-sonnet-4", "role": "assistant"}
		}`))
		require.NoError(t, err)
		assert.Equal(t, "msg_1", delta.ID)
		assert.Equal(t, "claude-sonnet-4", delta.Model)
		assert.Equal(t, "assistant", delta.Role)
	})

	t.Run("text delta", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{
			"type": "content_block_delta", "index": 0,
			"delta": {"type": "text_delta", "text": "Hel"}
		}`))
		require.NoError(t, err)
		assert.Equal(t, "Hel", delta.Text)
	})

	t.Run("thinking delta", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{
			"type": "content_block_delta", "index": 0,
			"delta": {"type": "thinking_delta", "thinking": "hmm"}
		}`))
		require.NoError(t, err)
		assert.Equal(t, "hmm", delta.Reasoning)
	})

	t.Run("tool_use block start", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{
			"type": "content_block_start", "index": 1,
			"content_block": {"type": "tool_use", "id": "toolu_1", "name": "get_weather"}
		}`))
		require.NoError(t, err)
		require.NotNil(t, delta.ToolCall)
		assert.Equal(t, 1, delta.ToolCall.Index)
		assert.Equal(t, "toolu_1", delta.ToolCall.ID)
		assert.Equal(t, "get_weather", delta.ToolCall.Name)
	})

	t.Run("stop reason translates", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{"type": "message_delta", "delta": {"stop_reason": "tool_use"}}`))
		require.NoError(t, err)
		assert.True(t, delta.Done)
		assert.Equal(t, "tool_calls", delta.FinishReason)
	})
}

func TestStreamCodecEncodeChunk(t *testing.T) {
	t.Parallel()

	sc := streamCodec{}

	t.Run("text delta", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{Text: "Hel"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hel"}}`, string(out))
	})

	t.Run("done maps finish reason back", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{Done: true, FinishReason: "length"})
		require.NoError(t, err)
		assert.Equal(t, "max_tokens", gjson.GetBytes(out, "delta.stop_reason").String())
	})

	t.Run("start chunk synthesizes a message id", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{Role: "assistant"})
		require.NoError(t, err)
		assert.Equal(t, "message_start", gjson.GetBytes(out, "type").String())
		assert.NotEmpty(t, gjson.GetBytes(out, "message.id").String())
	})
}
