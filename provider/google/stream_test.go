package google

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
	assert.True(t, sc.MatchesChunk(gjson.Parse(`{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`)))
	assert.False(t, sc.MatchesChunk(gjson.Parse(`{"object":"chat.completion.chunk","choices":[]}`)))
	assert.False(t, sc.MatchesChunk(gjson.Parse(`{"type":"message_start","message":{}}`)))
	assert.False(t, sc.MatchesChunk(gjson.Parse(`{"type":"response.created","response":{}}`)))
}

func TestStreamCodecDecodeChunk(t *testing.T) {
	t.Parallel()

	sc := streamCodec{}

	t.Run("text chunk", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{
			"responseId": "r1",
			"modelVersion": "gemini-2.0-flash",
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Hel"}]}}]
		}`))
		require.NoError(t, err)
		assert.Equal(t, "r1", delta.ID)
		assert.Equal(t, "gemini-2.0-flash", delta.Model)
		assert.Equal(t, "assistant", delta.Role)
		assert.Equal(t, "Hel", delta.Text)
		assert.False(t, delta.Done)
	})

	t.Run("function call chunk", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{
			"candidates": [{"content": {"parts": [{"functionCall": {"name": "get_weather", "args": {"city": "Paris"}}}]}}]
		}`))
		require.NoError(t, err)
		require.NotNil(t, delta.ToolCall)
		assert.Equal(t, "get_weather", delta.ToolCall.Name)
		assert.JSONEq(t, `{"city":"Paris"}`, delta.ToolCall.Arguments)
	})

	t.Run("finish reason translates", func(t *testing.T) {
		t.Parallel()
		delta, err := sc.DecodeChunk(gjson.Parse(`{
			"candidates": [{"content": {"parts": []}, "finishReason": "MAX_TOKENS"}]
		}`))
		require.NoError(t, err)
		assert.True(t, delta.Done)
		assert.Equal(t, "length", delta.FinishReason)
	})
}

func TestStreamCodecEncodeChunk(t *testing.T) {
	t.Parallel()

	sc := streamCodec{}

	t.Run("text delta", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{Text: "Hel"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"candidates":[{"index":0,"content":{"role":"model","parts":[{"text":"Hel"}]}}]}`, string(out))
	})

	t.Run("done chunk carries finish reason", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{Done: true, FinishReason: "stop"})
		require.NoError(t, err)
		assert.Equal(t, "STOP", gjson.GetBytes(out, "candidates.0.finishReason").String())
	})

	t.Run("tool call delta", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{
			ToolCall: &provider.ToolCallDelta{Name: "get_weather", Arguments: `{"city":"Paris"}`},
		})
		require.NoError(t, err)
		assert.Equal(t, "get_weather", gjson.GetBytes(out, "candidates.0.content.parts.0.functionCall.name").String())
		assert.JSONEq(t, `{"city":"Paris"}`, gjson.GetBytes(out, "candidates.0.content.parts.0.functionCall.args").Raw)
	})
}
