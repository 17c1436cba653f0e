package tool

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/fogfish/opts"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/wireform/wireform/pkg/jsonx"
)

// Definition names a Go function and the parameter names to expose in its
// input schema. Parameters maps positional keys ("param0", "param1", ...)
// to human-readable names.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]string
	Function    any
}

// Option configures a Definition.
type Option = opts.Option[Definition]

// Name overrides the reflected function name.
var Name = opts.ForName[Definition, string]("Name")

// Description sets the tool description.
var Description = opts.ForName[Definition, string]("Description")

// Parameters assigns names to the function's positional parameters.
func Parameters(parameters ...string) Option {
	return opts.Type[Definition](func(o *Definition) error {
		o.Parameters = make(map[string]string, len(parameters))
		for i, p := range parameters {
			o.Parameters[fmt.Sprintf("param%d", i)] = p
		}
		return nil
	})
}

var schemaReflector = jsonschema.Reflector{
	AllowAdditionalProperties: true,
	DoNotReference:            true,
}

// FromFunction builds a ClientTool from a Go function, deriving the input
// schema from the function's parameter types.
func FromFunction(fn any, options ...Option) (ClientTool, error) {
	def := Definition{Function: fn}
	if err := opts.Apply(&def, options); err != nil {
		return ClientTool{}, err
	}

	typ := reflect.TypeOf(fn)
	if typ == nil || typ.Kind() != reflect.Func {
		return ClientTool{}, fmt.Errorf("expected a function, got %T", fn)
	}

	name := def.Name
	if name == "" {
		if rf := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); rf != nil {
			name = rf.Name()
			if lastDot := strings.LastIndex(name, "."); lastDot >= 0 {
				name = name[lastDot+1:]
			}
		}
	}
	if name == "" {
		return ClientTool{}, fmt.Errorf("could not derive a name for %T", fn)
	}

	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: orderedmap.New[string, *jsonschema.Schema](),
	}

	var required []string
	for i := 0; i < typ.NumIn(); i++ {
		paramName := fmt.Sprintf("param%d", i)
		if p, ok := def.Parameters[paramName]; ok {
			paramName = p
		}

		propSchema := schemaReflector.ReflectFromType(typ.In(i))
		propSchema.Version = ""
		schema.Properties.Set(paramName, propSchema)
		required = append(required, paramName)
	}
	if len(required) > 0 {
		schema.Required = required
	}

	inputSchema, err := jsonx.ToDynamicJSON(schema)
	if err != nil {
		return ClientTool{}, fmt.Errorf("failed to render input schema: %w", err)
	}

	return ClientTool{
		Name:        name,
		Description: def.Description,
		InputSchema: inputSchema,
	}, nil
}

// Must wraps FromFunction and panics on error. Intended for package-level
// tool declarations.
func Must(fn any, options ...Option) ClientTool {
	ct, err := FromFunction(fn, options...)
	if err != nil {
		panic(err)
	}
	return ct
}
