package google

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/wireform/wireform/pkg/jsonx"
	"github.com/wireform/wireform/provider"
	"github.com/wireform/wireform/tool"
)

// DecodeTools converts GenerateContent tool entries to IR tools. Each entry
// is a keyed union: functionDeclarations yield client tools, any other key
// (googleSearch, codeExecution, urlContext, ...) a provider tool whose
// config is the key's value.
func DecodeTools(raw any) ([]tool.Tool, error) {
	jv, err := jsonx.Parse(raw)
	if err != nil {
		return nil, provider.DecodeErr(provider.Google, err)
	}
	if !jv.IsArray() {
		return nil, provider.DecodeErr(provider.Google, fmt.Errorf("expected a tool array, got %s", jv.Type))
	}

	var out []tool.Tool
	for idx, item := range jv.Array() {
		decoded, err := decodeToolEntry(item)
		if err != nil {
			return nil, provider.DecodeErr(provider.Google, fmt.Errorf("tools.%d: %w", idx, err))
		}
		out = append(out, decoded...)
	}
	if out == nil {
		out = []tool.Tool{}
	}
	return out, nil
}

func decodeToolEntry(item gjson.Result) ([]tool.Tool, error) {
	var tools []tool.Tool
	var entryErr error

	item.ForEach(func(key, value gjson.Result) bool {
		if key.String() == "functionDeclarations" {
			for i, fd := range value.Array() {
				name := fd.Get("name")
				if !name.Exists() {
					entryErr = fmt.Errorf("functionDeclarations.%d.name: missing required field 'name'", i)
					return false
				}
				ct := tool.ClientTool{
					Name:        name.String(),
					Description: fd.Get("description").String(),
				}
				if params := fd.Get("parameters"); params.Exists() {
					schema, err := jsonx.MapFromRaw(params.Raw)
					if err != nil {
						entryErr = fmt.Errorf("functionDeclarations.%d.parameters: %w", i, err)
						return false
					}
					ct.InputSchema = schema
				}
				tools = append(tools, ct)
			}
			return true
		}

		cfg, err := jsonx.MapFromRaw(value.Raw)
		if err != nil {
			entryErr = fmt.Errorf("%s: %w", key.String(), err)
			return false
		}
		if len(cfg) == 0 {
			cfg = nil
		}
		tools = append(tools, tool.ProviderTool{Type: key.String(), Config: cfg})
		return true
	})

	return tools, entryErr
}

// EncodeTools converts IR tools to GenerateContent tool entries. Client
// tools collect into a single functionDeclarations entry; each provider
// tool becomes its own keyed entry.
func EncodeTools(tools []tool.Tool) ([]map[string]any, error) {
	var declarations []any
	var out []map[string]any

	for idx, t := range tools {
		switch tt := t.(type) {
		case tool.ClientTool:
			decl := map[string]any{"name": tt.Name}
			if tt.Description != "" {
				decl["description"] = tt.Description
			}
			if tt.InputSchema != nil {
				decl["parameters"] = tt.InputSchema
			}
			declarations = append(declarations, decl)
		case tool.ProviderTool:
			key := tt.Type
			if mapped, ok := tool.TranslateType(key, tool.TargetGoogle); ok {
				key = mapped
			}
			cfg := map[string]any{}
			for k, v := range tt.Config {
				cfg[k] = v
			}
			out = append(out, map[string]any{key: cfg})
		default:
			return nil, provider.EncodeErr(provider.Google, fmt.Errorf("tools.%d: unknown tool variant %T", idx, t))
		}
	}

	if len(declarations) > 0 {
		out = append([]map[string]any{{"functionDeclarations": declarations}}, out...)
	}
	if out == nil {
		out = []map[string]any{}
	}
	return out, nil
}
