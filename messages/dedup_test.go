package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicate(t *testing.T) {
	t.Run("string equals single text part", func(t *testing.T) {
		msgs := []Message{
			UserText("hi"),
			{Role: RoleUser, Content: ContentOrParts{Parts: []ContentPart{Text("hi")}}},
		}
		out := Deduplicate(msgs)
		require.Len(t, out, 1)
		// first occurrence wins, in its original shorthand form
		assert.Equal(t, "hi", out[0].Content.Content)
		assert.Nil(t, out[0].Content.Parts)
	})

	t.Run("different roles are not duplicates", func(t *testing.T) {
		msgs := []Message{UserText("hi"), AssistantText("hi")}
		assert.Len(t, Deduplicate(msgs), 2)
	})

	t.Run("order preserved", func(t *testing.T) {
		msgs := []Message{
			UserText("a"),
			AssistantText("b"),
			UserText("a"),
			UserText("c"),
		}
		out := Deduplicate(msgs)
		require.Len(t, out, 3)
		assert.Equal(t, "a", out[0].Content.Content)
		assert.Equal(t, "b", out[1].Content.Content)
		assert.Equal(t, "c", out[2].Content.Content)
	})

	t.Run("idempotent", func(t *testing.T) {
		msgs := []Message{
			UserText("x"),
			UserText("x"),
			AssistantText("y"),
		}
		once := Deduplicate(msgs)
		twice := Deduplicate(once)
		assert.Equal(t, once, twice)
	})

	t.Run("single non-text part never equals a string", func(t *testing.T) {
		// Pins down the string-vs-array equivalence boundary: only text
		// content has a string shorthand.
		msgs := []Message{
			{Role: RoleUser, Content: ContentOrParts{Parts: []ContentPart{File("image/png", "aGk=")}}},
			UserText("aGk="),
		}
		assert.Len(t, Deduplicate(msgs), 2)
	})

	t.Run("tool call identity includes arguments", func(t *testing.T) {
		a := Message{Role: RoleAssistant, Content: ContentOrParts{Parts: []ContentPart{CallTool("1", "f", `{"q":1}`)}}}
		b := Message{Role: RoleAssistant, Content: ContentOrParts{Parts: []ContentPart{CallTool("1", "f", `{"q":2}`)}}}
		assert.Len(t, Deduplicate([]Message{a, b}), 2)
	})
}

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(UserText("hello"))
	require.NoError(t, err)
	b, err := Fingerprint(Message{Role: RoleUser, Content: ContentOrParts{Parts: []ContentPart{Text("hello")}}})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Fingerprint(AssistantText("hello"))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestEqualContent(t *testing.T) {
	assert.True(t, EqualContent(
		UserText("hi"),
		Message{Role: RoleUser, Content: ContentOrParts{Parts: []ContentPart{Text("hi")}}},
	))
	assert.False(t, EqualContent(UserText("hi"), UserText("bye")))
}
