package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/provider"
)

func TestTransformChunk(t *testing.T) {
	t.Parallel()

	t.Run("same format passes through untouched", func(t *testing.T) {
		t.Parallel()
		chunk := `{"id":"chatcmpl-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"Hel"},"finish_reason":null}]}`
		res, err := TransformChunk(chunk, provider.ChatCompletions)
		require.NoError(t, err)
		assert.True(t, res.PassThrough)
		assert.Equal(t, provider.ChatCompletions, res.SourceFormat)
		assert.Equal(t, chunk, string(res.Data))
	})

	t.Run("anthropic text delta becomes a chat chunk", func(t *testing.T) {
		t.Parallel()
		chunk := `{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Hel"}}`
		res, err := TransformChunk(chunk, provider.ChatCompletions)
		require.NoError(t, err)
		assert.False(t, res.PassThrough)
		assert.Equal(t, provider.Anthropic, res.SourceFormat)
		assert.Equal(t, "Hel", gjson.GetBytes(res.Data, "choices.0.delta.content").String())
	})

	t.Run("chat chunk becomes a responses event", func(t *testing.T) {
		t.Parallel()
		chunk := `{"id":"chatcmpl-1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"Hel"},"finish_reason":null}]}`
		res, err := TransformChunk(chunk, provider.Responses)
		require.NoError(t, err)
		assert.Equal(t, "response.output_text.delta", gjson.GetBytes(res.Data, "type").String())
		assert.Equal(t, "Hel", gjson.GetBytes(res.Data, "delta").String())
	})

	t.Run("google candidates chunk is detected", func(t *testing.T) {
		t.Parallel()
		chunk := `{"candidates":[{"content":{"role":"model","parts":[{"text":"Hel"}]}}]}`
		res, err := TransformChunk(chunk, provider.Anthropic)
		require.NoError(t, err)
		assert.Equal(t, provider.Google, res.SourceFormat)
		assert.Equal(t, "Hel", gjson.GetBytes(res.Data, "delta.text").String())
	})

	t.Run("finish reason crosses formats", func(t *testing.T) {
		t.Parallel()
		chunk := `{"type":"message_delta","delta":{"stop_reason":"max_tokens"}}`
		res, err := TransformChunk(chunk, provider.ChatCompletions)
		require.NoError(t, err)
		assert.Equal(t, "length", gjson.GetBytes(res.Data, "choices.0.finish_reason").String())
	})

	t.Run("unrecognized chunk is a conversion error", func(t *testing.T) {
		t.Parallel()
		_, err := TransformChunk(`{"event":"mystery"}`, provider.ChatCompletions)
		require.Error(t, err)

		var convErr *provider.ConversionError
		require.ErrorAs(t, err, &convErr)
	})

	t.Run("invalid json is a deserialization failure", func(t *testing.T) {
		t.Parallel()
		_, err := TransformChunk(`{not json}`, provider.ChatCompletions)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deserialization")
	})

	t.Run("unknown target is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := TransformChunk(`{"candidates":[]}`, provider.Format("mystery"))
		require.Error(t, err)
	})
}
