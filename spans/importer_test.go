package spans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/provider"
)

func TestImportMessages(t *testing.T) {
	t.Parallel()

	t.Run("responses output item array", func(t *testing.T) {
		t.Parallel()
		msgs, err := ImportMessages([]Span{{
			Output: []any{map[string]any{
				"type": "message",
				"role": "assistant",
				"content": []any{
					map[string]any{"type": "output_text", "text": "foo"},
				},
			}},
		}})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, messages.RoleAssistant, msgs[0].Role)
		assert.Equal(t, "foo", msgs[0].Content.Parts[0].(messages.TextPart).Text)
	})

	t.Run("unparsable fields contribute zero messages without raising", func(t *testing.T) {
		t.Parallel()
		msgs, err := ImportMessages([]Span{
			{Input: "plain text, not json", Output: map[string]any{"latency_ms": 12}},
		})
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})

	t.Run("input comes before output, spans stay ordered", func(t *testing.T) {
		t.Parallel()
		msgs, err := ImportMessages([]Span{
			{
				Input:  `[{"role": "user", "content": "first"}]`,
				Output: `[{"role": "assistant", "content": "second"}]`,
			},
			{
				Input: `[{"role": "user", "content": "third"}]`,
			},
		})
		require.NoError(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, "first", msgs[0].Content.Content)
		assert.Equal(t, "second", msgs[1].Content.Content)
		assert.Equal(t, "third", msgs[2].Content.Content)
	})

	t.Run("anthropic block arrays are detected", func(t *testing.T) {
		t.Parallel()
		msgs, err := ImportMessages([]Span{{
			Input: `[{"role": "user", "content": [{"type": "text", "text": "hi"}]}]`,
		}})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		// a block-array decoder must win here, so the block is a real text
		// part rather than an opaque one
		assert.Equal(t, messages.Text("hi"), msgs[0].Content.Parts[0])
	})

	t.Run("chat completions tool calls are detected", func(t *testing.T) {
		t.Parallel()
		msgs, err := ImportMessages([]Span{{
			Output: `[{"role": "assistant", "content": null, "tool_calls": [
				{"id": "call_1", "type": "function", "function": {"name": "get_weather", "arguments": "{}"}}
			]}]`,
		}})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		call, ok := msgs[0].Content.Parts[0].(messages.ToolCallPart)
		require.True(t, ok)
		assert.Equal(t, "get_weather", call.Name)
	})

	t.Run("single object payloads probe as one-element lists", func(t *testing.T) {
		t.Parallel()
		msgs, err := ImportMessages([]Span{{
			Output: map[string]any{"role": "assistant", "content": "hi"},
		}})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "hi", msgs[0].Content.Content)
	})

	t.Run("unserializable field fails when nothing else works", func(t *testing.T) {
		t.Parallel()
		_, err := ImportMessages([]Span{{Input: make(chan int)}})
		require.Error(t, err)
	})

	t.Run("unserializable field is tolerated when another field works", func(t *testing.T) {
		t.Parallel()
		msgs, err := ImportMessages([]Span{{
			Input:  make(chan int),
			Output: `[{"role": "assistant", "content": "hi"}]`,
		}})
		require.NoError(t, err)
		assert.Len(t, msgs, 1)
	})
}

func TestImporterOptions(t *testing.T) {
	t.Parallel()

	t.Run("order override changes the winner", func(t *testing.T) {
		t.Parallel()
		// this payload decodes under both anthropic and google orders;
		// restricting to google must force the google decoder
		imp, err := New(WithOrder(provider.Google))
		require.NoError(t, err)
		msgs, err := imp.ImportMessages([]Span{{
			Input: `[{"role": "user", "parts": [{"text": "hi"}]}]`,
		}})
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, messages.Text("hi"), msgs[0].Content.Parts[0])
	})

	t.Run("unknown format in order is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := New(WithOrder(provider.Format("mystery")))
		require.Error(t, err)
	})
}

func TestImportAndDeduplicate(t *testing.T) {
	t.Parallel()

	msgs, err := ImportAndDeduplicate([]Span{
		{Input: `[{"role": "user", "content": "hello"}]`},
		{Input: `[{"role": "user", "content": [{"type": "input_text", "text": "hello"}]}]`},
	})
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}
