// Package jsonx provides helpers for working with dynamic, schema-less JSON
// values. Decoding always goes through json.Number so numeric fields keep
// their original literal form across round trips.
package jsonx

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// ToDynamicJSON converts any Go value to a dynamic JSON object represented as a
// map[string]any. It first marshals the input value to JSON bytes and then
// decodes those bytes into a map with UseNumber enabled, so ints and floats
// survive as json.Number instead of being widened to float64.
func ToDynamicJSON(val any) (map[string]any, error) {
	out, err := ToDynamicValue(val)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	m, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", out)
	}
	return m, nil
}

// ToDynamicValue is like ToDynamicJSON but accepts any JSON value shape
// (object, array, scalar). Numbers decode as json.Number.
func ToDynamicValue(val any) (any, error) {
	b, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValueFromRaw decodes raw JSON text into a dynamic Go value with numbers
// preserved as json.Number.
func ValueFromRaw(raw string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// MapFromRaw decodes raw JSON text that must be an object.
func MapFromRaw(raw string) (map[string]any, error) {
	out, err := ValueFromRaw(raw)
	if err != nil {
		return nil, err
	}
	m, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %T", out)
	}
	return m, nil
}

// Parse renders an arbitrary Go value (already-parsed JSON maps/slices or a
// struct with JSON tags) to its JSON form and returns a gjson.Result over it.
// Raw JSON carried as []byte, string containing JSON, or a gjson.Result is
// used as-is without a marshal pass.
func Parse(val any) (gjson.Result, error) {
	switch v := val.(type) {
	case gjson.Result:
		return v, nil
	case []byte:
		if !gjson.ValidBytes(v) {
			return gjson.Result{}, fmt.Errorf("invalid json: %s", v)
		}
		return gjson.ParseBytes(v), nil
	case json.RawMessage:
		if !gjson.ValidBytes(v) {
			return gjson.Result{}, fmt.Errorf("invalid json: %s", v)
		}
		return gjson.ParseBytes(v), nil
	case string:
		if gjson.Valid(v) {
			return gjson.Parse(v), nil
		}
		return gjson.Result{}, fmt.Errorf("invalid json: %s", v)
	}
	b, err := json.Marshal(val)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("value is not representable as json: %w", err)
	}
	return gjson.ParseBytes(b), nil
}
