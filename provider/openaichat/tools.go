package openaichat

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
	"github.com/wireform/wireform/tool"
)

// DecodeTools converts Chat Completions tool definitions to IR tools.
// Entries of type "function" become client tools; any other type becomes a
// provider tool carrying its config untouched.
func DecodeTools(raw any) ([]tool.Tool, error) {
	jv, err := jsonx.Parse(raw)
	if err != nil {
		return nil, provider.DecodeErr(provider.ChatCompletions, err)
	}
	if !jv.IsArray() {
		return nil, provider.DecodeErr(provider.ChatCompletions, fmt.Errorf("expected a tool array, got %s", jv.Type))
	}

	items := jv.Array()
	out := make([]tool.Tool, 0, len(items))
	for idx, item := range items {
		t, err := decodeTool(item)
		if err != nil {
			return nil, provider.DecodeErr(provider.ChatCompletions, fmt.Errorf("tools.%d: %w", idx, err))
		}
		out = append(out, t)
	}
	return out, nil
}

func decodeTool(item gjson.Result) (tool.Tool, error) {
	tpe := item.Get("type")
	if !tpe.Exists() {
		return nil, fmt.Errorf("missing required field 'type'")
	}

	if tpe.String() != "function" {
		cfg, err := configWithout(item, "type", "name")
		if err != nil {
			return nil, err
		}
		return tool.ProviderTool{
			Type:   tpe.String(),
			Name:   item.Get("name").String(),
			Config: cfg,
		}, nil
	}

	fn := item.Get("function")
	name := fn.Get("name")
	if !name.Exists() {
		return nil, fmt.Errorf("function.name: missing required field 'name'")
	}

	ct := tool.ClientTool{
		Name:        name.String(),
		Description: fn.Get("description").String(),
	}
	if params := fn.Get("parameters"); params.Exists() {
		schema, err := jsonx.MapFromRaw(params.Raw)
		if err != nil {
			return nil, fmt.Errorf("function.parameters: %w", err)
		}
		ct.InputSchema = schema
	}
	if strict := fn.Get("strict"); strict.Exists() {
		ct.Options = map[string]any{"strict": strict.Bool()}
	}
	return ct, nil
}

// EncodeTools converts IR tools to Chat Completions tool definitions.
// Provider tools have no native home in this format; they are emitted as
// opaque entries the transport will carry but never execute.
func EncodeTools(tools []tool.Tool) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(tools))
	for idx, t := range tools {
		switch tt := t.(type) {
		case tool.ClientTool:
			fn := map[string]any{"name": tt.Name}
			if tt.Description != "" {
				fn["description"] = tt.Description
			}
			if tt.InputSchema != nil {
				fn["parameters"] = tt.InputSchema
			}
			if strict, ok := tt.Options["strict"]; ok {
				fn["strict"] = strict
			}
			out = append(out, map[string]any{"type": "function", "function": fn})
		case tool.ProviderTool:
			out = append(out, encodeProviderTool(tt))
		default:
			return nil, provider.EncodeErr(provider.ChatCompletions, fmt.Errorf("tools.%d: unknown tool variant %T", idx, t))
		}
	}
	return out, nil
}

func encodeProviderTool(pt tool.ProviderTool) map[string]any {
	m := map[string]any{"type": pt.Type}
	if pt.Name != "" {
		m["name"] = pt.Name
	}
	for k, v := range pt.Config {
		m[k] = v
	}
	return m
}

// configWithout captures every field of a tool object except the listed
// keys, preserving numeric values as numbers.
func configWithout(item gjson.Result, except ...string) (map[string]any, error) {
	all, err := jsonx.MapFromRaw(item.Raw)
	if err != nil {
		return nil, err
	}
	for _, k := range except {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}
