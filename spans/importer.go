package spans

import (
	"fmt"

	"github.com/fogfish/opts"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/messages"
	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"

	// register the provider codecs the importer probes
	_ "github.com/wireform/wireform/provider/anthropic"
	_ "github.com/wireform/wireform/provider/google"
	_ "github.com/wireform/wireform/provider/openaichat"
	_ "github.com/wireform/wireform/provider/responses"
)

// Importer extracts messages from span records by probing each span's input
// and output against the provider decoders in priority order.
type Importer struct {
	log   zerolog.Logger
	order []provider.Format
}

var (
	// WithLogger sets the logger used for per-field probe diagnostics.
	WithLogger = opts.ForName[Importer, zerolog.Logger]("log")
)

// WithOrder overrides the decoder priority order. The default is
// provider.ImportOrder; overriding it changes which decoder wins for
// ambiguous payloads.
func WithOrder(formats ...provider.Format) opts.Option[Importer] {
	return opts.Type[Importer](func(i *Importer) error {
		for _, f := range formats {
			if !provider.Known(f) {
				return fmt.Errorf("unknown format %q", f)
			}
		}
		i.order = formats
		return nil
	})
}

// New builds an Importer. Without options it probes in provider.ImportOrder
// and logs nothing.
func New(options ...opts.Option[Importer]) (*Importer, error) {
	imp := &Importer{
		log:   zerolog.Nop(),
		order: provider.ImportOrder(),
	}
	if err := opts.Apply(imp, options); err != nil {
		return nil, err
	}
	return imp, nil
}

// ImportMessages extracts messages from spans, span order preserved and,
// within a span, input before output. A field that matches no decoder
// contributes zero messages; an error surfaces only when no field of any
// span could be processed at all.
func (i *Importer) ImportMessages(spns []Span) ([]messages.Message, error) {
	out := []messages.Message{}

	fields := 0
	failures := 0
	var firstErr error
	for _, span := range spns {
		for _, field := range []struct {
			name string
			val  any
		}{{"input", span.Input}, {"output", span.Output}} {
			if field.val == nil {
				continue
			}
			fields++
			msgs, err := i.importField(span, field.name, field.val)
			if err != nil {
				failures++
				if firstErr == nil {
					firstErr = fmt.Errorf("span %s %s: %w", span.ID, field.name, err)
				}
				continue
			}
			out = append(out, msgs...)
		}
	}

	if fields > 0 && failures == fields {
		return nil, firstErr
	}
	return out, nil
}

// ImportAndDeduplicate is ImportMessages followed by messages.Deduplicate
// as a single pass.
func (i *Importer) ImportAndDeduplicate(spns []Span) ([]messages.Message, error) {
	msgs, err := i.ImportMessages(spns)
	if err != nil {
		return nil, err
	}
	return messages.Deduplicate(msgs), nil
}

// importField probes one span field against the decoders. A field that
// renders to JSON but matches no decoder returns an empty slice; only a
// field that cannot be rendered at all returns an error.
func (i *Importer) importField(span Span, name string, val any) ([]messages.Message, error) {
	jv, err := jsonx.Parse(val)
	if err != nil {
		i.log.Debug().Str("span", span.ID.String()).Str("field", name).Err(err).Msg("span field is not json")
		switch val.(type) {
		case string, []byte, json.RawMessage:
			// free-form text is a mismatch, not a failure
			return []messages.Message{}, nil
		}
		return nil, err
	}
	if !jv.IsArray() {
		// single-object payloads probe as a one-element list
		if !jv.IsObject() {
			return []messages.Message{}, nil
		}
		jv = gjson.Parse("[" + jv.Raw + "]")
	}

	for _, format := range i.order {
		codec, ok := provider.Lookup(format)
		if !ok {
			continue
		}
		msgs, err := codec.DecodeMessages(jv)
		if err != nil {
			continue
		}
		i.log.Debug().
			Str("span", span.ID.String()).
			Str("field", name).
			Str("format", string(format)).
			Int("messages", len(msgs)).
			Msg("span field decoded")
		return msgs, nil
	}

	i.log.Debug().Str("span", span.ID.String()).Str("field", name).Msg("span field matched no decoder")
	return []messages.Message{}, nil
}

// ImportMessages extracts messages from spans with the default importer.
func ImportMessages(spns []Span) ([]messages.Message, error) {
	imp, err := New()
	if err != nil {
		return nil, err
	}
	return imp.ImportMessages(spns)
}

// ImportAndDeduplicate extracts and deduplicates messages from spans with
// the default importer.
func ImportAndDeduplicate(spns []Span) ([]messages.Message, error) {
	imp, err := New()
	if err != nil {
		return nil, err
	}
	return imp.ImportAndDeduplicate(spns)
}
