package messages

import (
	"crypto/sha256"
	"encoding/hex"

	json "github.com/goccy/go-json"
)

// NormalizedParts returns the canonical part-sequence form of the content:
// bare string content becomes a single text part. Only text content has a
// string shorthand, so the equivalence never extends to non-text parts.
// The receiver is not modified.
func (c ContentOrParts) NormalizedParts() []ContentPart {
	if c.Content != "" {
		return []ContentPart{TextPart{Text: c.Content}}
	}
	return c.Parts
}

// Fingerprint computes a content hash over (role, ordered normalized parts).
// Two messages with equal fingerprints are semantic duplicates: a bare
// string "X" hashes identically to [{type:text, text:"X"}].
func Fingerprint(m Message) (string, error) {
	h := sha256.New()
	h.Write([]byte(m.Role))
	h.Write([]byte{0})
	for _, part := range m.Content.NormalizedParts() {
		b, err := json.Marshal(part)
		if err != nil {
			return "", err
		}
		h.Write(b)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// EqualContent reports whether two messages are semantic duplicates under
// the deduplication rules: equal role and equal normalized content.
func EqualContent(a, b Message) bool {
	if a.Role != b.Role {
		return false
	}
	fa, err := Fingerprint(a)
	if err != nil {
		return false
	}
	fb, err := Fingerprint(b)
	if err != nil {
		return false
	}
	return fa == fb
}

// Deduplicate returns the messages with semantic duplicates removed,
// preserving input order and keeping the first occurrence of each distinct
// (role, content) pair. Returned messages are the original values; the
// normalization used for comparison never mutates them.
func Deduplicate(msgs []Message) []Message {
	seen := make(map[string]struct{}, len(msgs))
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		fp, err := Fingerprint(m)
		if err != nil {
			// A message whose parts cannot be rendered has no comparable
			// identity; keep it rather than risk dropping data.
			out = append(out, m)
			continue
		}
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		out = append(out, m)
	}
	return out
}
