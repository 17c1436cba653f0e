package spans

import (
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// Span is one record from a trace or request log. Only Input and Output
// matter to the importer; the rest is carried for callers that want to
// correlate imported messages back to their source records.
type Span struct {
	ID         uuid.UUID       `json:"id,omitempty"`
	Name       string          `json:"name,omitempty"`
	StartedAt  strfmt.DateTime `json:"started_at,omitempty"`
	EndedAt    strfmt.DateTime `json:"ended_at,omitempty"`
	Input      any             `json:"input,omitempty"`
	Output     any             `json:"output,omitempty"`
	Attributes map[string]any  `json:"attributes,omitempty"`
}
