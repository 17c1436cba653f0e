// Package tool defines the canonical tool model: ClientTool for functions
// the caller executes, ProviderTool for vendor-executed tools identified by
// opaque tool_type strings. The translation table maps known tool_type
// identifiers between provider formats; unknown types pass through
// unchanged by design. FromFunction builds ClientTool definitions from Go
// functions via JSON-schema reflection.
package tool
