package tool

// Tool is the canonical representation of a tool definition. It has exactly
// two variants: ClientTool for functions executed by caller code, and
// ProviderTool for tools executed on the vendor's own infrastructure.
type Tool interface {
	tool()
}

// ClientTool describes a function the caller executes when the model asks
// for it. InputSchema is a JSON-schema-shaped object; Options carries
// provider-specific flags (an OpenAI "strict" marker, an Anthropic
// cache_control block) verbatim so they survive conversion.
type ClientTool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Options     map[string]any
	_           struct{} // require keyed usage
}

func (ClientTool) tool() {}

// ProviderTool describes a tool run by the provider itself, identified by
// an opaque, provider-defined tool_type string. Types absent from the
// translation table are not an error: they round-trip untouched, config
// and all, so tool types introduced after this code shipped keep working.
type ProviderTool struct {
	Type   string
	Name   string
	Config map[string]any
	_      struct{} // require keyed usage
}

func (ProviderTool) tool() {}
