package anthropic

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
	"github.com/wireform/wireform/tool"
)

// DecodeTools converts Anthropic tool definitions to IR tools. Entries with
// an input_schema are client tools; typed entries without one are
// provider-executed tools and keep their config verbatim.
func DecodeTools(raw any) ([]tool.Tool, error) {
	jv, err := jsonx.Parse(raw)
	if err != nil {
		return nil, provider.DecodeErr(provider.Anthropic, err)
	}
	if !jv.IsArray() {
		return nil, provider.DecodeErr(provider.Anthropic, fmt.Errorf("expected a tool array, got %s", jv.Type))
	}

	items := jv.Array()
	out := make([]tool.Tool, 0, len(items))
	for idx, item := range items {
		t, err := decodeTool(item)
		if err != nil {
			return nil, provider.DecodeErr(provider.Anthropic, fmt.Errorf("tools.%d: %w", idx, err))
		}
		out = append(out, t)
	}
	return out, nil
}

func decodeTool(item gjson.Result) (tool.Tool, error) {
	if schema := item.Get("input_schema"); schema.Exists() {
		name := item.Get("name")
		if !name.Exists() {
			return nil, fmt.Errorf("name: missing required field 'name'")
		}
		ct := tool.ClientTool{
			Name:        name.String(),
			Description: item.Get("description").String(),
		}
		parsed, err := jsonx.MapFromRaw(schema.Raw)
		if err != nil {
			return nil, fmt.Errorf("input_schema: %w", err)
		}
		ct.InputSchema = parsed
		if cc := item.Get("cache_control"); cc.Exists() {
			val, err := jsonx.ValueFromRaw(cc.Raw)
			if err != nil {
				return nil, fmt.Errorf("cache_control: %w", err)
			}
			ct.Options = map[string]any{"cache_control": val}
		}
		return ct, nil
	}

	tpe := item.Get("type")
	if !tpe.Exists() {
		return nil, fmt.Errorf("missing required field 'type' or 'input_schema'")
	}
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

// EncodeTools converts IR tools to Anthropic tool definitions.
func EncodeTools(tools []tool.Tool) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(tools))
	for idx, t := range tools {
		switch tt := t.(type) {
		case tool.ClientTool:
			m := map[string]any{"name": tt.Name}
			if tt.Description != "" {
				m["description"] = tt.Description
			}
			if tt.InputSchema != nil {
				m["input_schema"] = tt.InputSchema
			} else {
				m["input_schema"] = map[string]any{"type": "object"}
			}
			if cc, ok := tt.Options["cache_control"]; ok {
				m["cache_control"] = cc
			}
			out = append(out, m)
		case tool.ProviderTool:
			tpe := tt.Type
			if mapped, ok := tool.TranslateType(tpe, tool.TargetAnthropic); ok {
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
			return nil, provider.EncodeErr(provider.Anthropic, fmt.Errorf("tools.%d: unknown tool variant %T", idx, t))
		}
	}
	return out, nil
}
