package responses

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
	"github.com/wireform/wireform/tool"
)

// DecodeTools converts Responses API tool definitions to IR tools. Function
// tools are flat objects here, not nested under a "function" key.
func DecodeTools(raw any) ([]tool.Tool, error) {
	jv, err := jsonx.Parse(raw)
	if err != nil {
		return nil, provider.DecodeErr(provider.Responses, err)
	}
	if !jv.IsArray() {
		return nil, provider.DecodeErr(provider.Responses, fmt.Errorf("expected a tool array, got %s", jv.Type))
	}

	items := jv.Array()
	out := make([]tool.Tool, 0, len(items))
	for idx, item := range items {
		t, err := decodeTool(item)
		if err != nil {
			return nil, provider.DecodeErr(provider.Responses, fmt.Errorf("tools.%d: %w", idx, err))
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
		cfg, err := jsonx.MapFromRaw(item.Raw)
		if err != nil {
			return nil, err
		}
		delete(cfg, "type")
		delete(cfg, "name")
		if len(cfg) == 0 {
			cfg = nil
		}
		return tool.ProviderTool{
			Type:   tpe.String(),
			Name:   item.Get("name").String(),
			Config: cfg,
		}, nil
	}

	name := item.Get("name")
	if !name.Exists() {
		return nil, fmt.Errorf("name: missing required field 'name'")
	}

	ct := tool.ClientTool{
		Name:        name.String(),
		Description: item.Get("description").String(),
	}
	if params := item.Get("parameters"); params.Exists() {
		schema, err := jsonx.MapFromRaw(params.Raw)
		if err != nil {
			return nil, fmt.Errorf("parameters: %w", err)
		}
		ct.InputSchema = schema
	}
	if strict := item.Get("strict"); strict.Exists() {
		ct.Options = map[string]any{"strict": strict.Bool()}
	}
	return ct, nil
}

// EncodeTools converts IR tools to Responses API tool definitions. Provider
// tool types are respelled for this format when the capability has a known
// equivalent, otherwise passed through unchanged.
func EncodeTools(tools []tool.Tool) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(tools))
	for idx, t := range tools {
		switch tt := t.(type) {
		case tool.ClientTool:
			m := map[string]any{"type": "function", "name": tt.Name}
			if tt.Description != "" {
				m["description"] = tt.Description
			}
			if tt.InputSchema != nil {
				m["parameters"] = tt.InputSchema
			}
			if strict, ok := tt.Options["strict"]; ok {
				m["strict"] = strict
			}
			out = append(out, m)
		case tool.ProviderTool:
			tpe := tt.Type
			if mapped, ok := tool.TranslateType(tpe, tool.TargetResponses); ok {
				tpe = mapped
			}
			m := map[string]any{"type": tpe}
			if tt.Name != "" {
				m["name"] = tt.Name
			}
			for k, v := range tt.Config {
				m[k] = v
			}
			out = append(out, m)
		default:
			return nil, provider.EncodeErr(provider.Responses, fmt.Errorf("tools.%d: unknown tool variant %T", idx, t))
		}
	}
	return out, nil
}
