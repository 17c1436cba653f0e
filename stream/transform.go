// Package stream reformats provider streaming chunks between formats,
// auto-detecting the source format from the chunk's shape.
package stream

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/provider"

	// register the stream codecs detection probes
	_ "github.com/wireform/wireform/provider/anthropic"
	_ "github.com/wireform/wireform/provider/google"
	_ "github.com/wireform/wireform/provider/openaichat"
	_ "github.com/wireform/wireform/provider/responses"
)

// Result is a transformed streaming chunk. When the source format already
// matches the target, PassThrough is true and Data is the input unchanged.
type Result struct {
	PassThrough  bool
	SourceFormat provider.Format
	Data         []byte
	_            struct{} // require keyed usage
}

// TransformChunk detects the format of one streaming chunk and re-encodes
// it for the target format. Detection walks provider.ImportOrder; a chunk
// matching no format is a ConversionError.
func TransformChunk(jsonText string, target provider.Format) (Result, error) {
	if !provider.Known(target) {
		return Result{}, fmt.Errorf("unknown target format %q", target)
	}
	if !gjson.Valid(jsonText) {
		return Result{}, provider.DecodeErr(target, fmt.Errorf("deserialization failure: invalid json"))
	}
	chunk := gjson.Parse(jsonText)

	source, sourceCodec, ok := detect(chunk)
	if !ok {
		return Result{}, provider.DecodeErr(target, fmt.Errorf("chunk matches no known stream format"))
	}

	if source == target {
		return Result{PassThrough: true, SourceFormat: source, Data: []byte(jsonText)}, nil
	}

	delta, err := sourceCodec.DecodeChunk(chunk)
	if err != nil {
		return Result{}, err
	}

	targetCodec, ok := provider.LookupStream(target)
	if !ok {
		return Result{}, fmt.Errorf("no stream codec registered for %q", target)
	}
	data, err := targetCodec.EncodeChunk(delta)
	if err != nil {
		return Result{}, err
	}
	return Result{SourceFormat: source, Data: data}, nil
}

func detect(chunk gjson.Result) (provider.Format, provider.StreamCodec, bool) {
	for _, format := range provider.ImportOrder() {
		codec, ok := provider.LookupStream(format)
		if !ok {
			continue
		}
		if codec.MatchesChunk(chunk) {
			return format, codec, true
		}
	}
	return "", nil, false
}
