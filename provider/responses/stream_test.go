package responses

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
	assert.True(t, sc.MatchesChunk(gjson.Parse(`{"type":"response.output_text.delta","delta":"hi"}`)))
	assert.True(t, sc.MatchesChunk(gjson.Parse(`{"type":"response.created","response":{"id":"resp_1"}}`)))
	assert.False(t, sc.MatchesChunk(gjson.Parse(`{"object":"chat.completion.chunk","choices":[]}`)))
	assert.False(t, sc.MatchesChunk(gjson.Parse(`{"type":"message_start","message":{}}`)))
}

func TestStreamCodecDecodeChunk(t *testing.T) {
	t.Parallel()

	sc := streamCodec{}

	tests := []struct {
		name  string
		chunk string
		check func(t *testing.T, d *provider.ChunkDelta)
	}{
		{
			name:  "created carries id and role",
			chunk: `{"type":"response.created","response":{"id":"resp_1","model":"gpt-4o"}}`,
			check: func(t *testing.T, d *provider.ChunkDelta) {
				assert.Equal(t, "resp_1", d.ID)
				assert.Equal(t, "gpt-4o", d.Model)
				assert.Equal(t, "assistant", d.Role)
			},
		},
		{
			name:  "output text delta",
			chunk: `{"type":"response.output_text.delta","delta":"Hel"}`,
			check: func(t *testing.T, d *provider.ChunkDelta) {
				assert.Equal(t, "Hel", d.Text)
			},
		},
		{
			name:  "function call item added",
			chunk: `{"type":"response.output_item.added","output_index":1,"item":{"type":"function_call","call_id":"call_1","name":"get_weather"}}`,
			check: func(t *testing.T, d *provider.ChunkDelta) {
				require.NotNil(t, d.ToolCall)
				assert.Equal(t, 1, d.ToolCall.Index)
				assert.Equal(t, "call_1", d.ToolCall.ID)
				assert.Equal(t, "get_weather", d.ToolCall.Name)
			},
		},
		{
			name:  "arguments delta",
			chunk: `{"type":"response.function_call_arguments.delta","output_index":1,"delta":"{\"ci"}`,
			check: func(t *testing.T, d *provider.ChunkDelta) {
				require.NotNil(t, d.ToolCall)
				assert.Equal(t, `{"ci`, d.ToolCall.Arguments)
			},
		},
		{
			name:  "completed marks done",
			chunk: `{"type":"response.completed","response":{"id":"resp_1","status":"completed"}}`,
			check: func(t *testing.T, d *provider.ChunkDelta) {
				assert.True(t, d.Done)
				assert.Equal(t, "stop", d.FinishReason)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			delta, err := sc.DecodeChunk(gjson.Parse(tt.chunk))
			require.NoError(t, err)
			tt.check(t, delta)
		})
	}
}

func TestStreamCodecEncodeChunk(t *testing.T) {
	t.Parallel()

	sc := streamCodec{}

	t.Run("text delta", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{Text: "Hel"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"response.output_text.delta","delta":"Hel"}`, string(out))
	})

	t.Run("done chunk", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{ID: "resp_1", Done: true})
		require.NoError(t, err)
		assert.Equal(t, "response.completed", gjson.GetBytes(out, "type").String())
		assert.Equal(t, "resp_1", gjson.GetBytes(out, "response.id").String())
	})

	t.Run("start chunk synthesizes an id", func(t *testing.T) {
		t.Parallel()
		out, err := sc.EncodeChunk(&provider.ChunkDelta{Role: "assistant"})
		require.NoError(t, err)
		assert.Equal(t, "response.created", gjson.GetBytes(out, "type").String())
		assert.NotEmpty(t, gjson.GetBytes(out, "response.id").String())
	})
}
