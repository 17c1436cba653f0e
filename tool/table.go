package tool

// Target names for provider tool-type translation. They match the wire
// format identifiers used across the module.
const (
	TargetChatCompletions = "chat_completions"
	TargetResponses       = "responses"
	TargetAnthropic       = "anthropic"
	TargetGoogle          = "google"
)

// typeFamily groups the provider-specific spellings of one provider-tool
// capability. aliases lists every tool_type that identifies the family on
// decode; byTarget gives the preferred spelling per target format.
type typeFamily struct {
	aliases  []string
	byTarget map[string]string
}

// Chat Completions has no provider-executed tool types, so no family maps
// to it; provider tools encode there as opaque passthrough entries.
var typeFamilies = []typeFamily{
	{
		aliases: []string{
			"web_search", "web_search_preview", "web_search_preview_2025_03_11",
			"web_search_20250305",
		},
		byTarget: map[string]string{
			TargetResponses: "web_search_preview",
			TargetAnthropic: "web_search_20250305",
			TargetGoogle:    "googleSearch",
		},
	},
	{
		aliases: []string{"bash_20241022", "bash_20250124"},
		byTarget: map[string]string{
			TargetAnthropic: "bash_20250124",
		},
	},
	{
		aliases: []string{
			"text_editor_20241022", "text_editor_20250124", "text_editor_20250429",
			"text_editor_20250728",
		},
		byTarget: map[string]string{
			TargetAnthropic: "text_editor_20250429",
		},
	},
	{
		aliases: []string{"computer_20241022", "computer_20250124", "computer_use_preview"},
		byTarget: map[string]string{
			TargetResponses: "computer_use_preview",
			TargetAnthropic: "computer_20250124",
		},
	},
	{
		aliases: []string{"code_interpreter", "code_execution_20250522", "codeExecution"},
		byTarget: map[string]string{
			TargetResponses: "code_interpreter",
			TargetAnthropic: "code_execution_20250522",
			TargetGoogle:    "codeExecution",
		},
	},
	{
		aliases: []string{"googleSearch", "google_search"},
		byTarget: map[string]string{
			TargetResponses: "web_search_preview",
			TargetAnthropic: "web_search_20250305",
			TargetGoogle:    "googleSearch",
		},
	},
}

var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]*typeFamily {
	idx := make(map[string]*typeFamily)
	for i := range typeFamilies {
		for _, alias := range typeFamilies[i].aliases {
			idx[alias] = &typeFamilies[i]
		}
	}
	return idx
}

// TranslateType maps a provider tool_type onto the target format's spelling
// of the same capability. The second return is false when the type is not
// in the table or the capability has no equivalent on the target; callers
// then pass the original type through unchanged.
func TranslateType(toolType, target string) (string, bool) {
	fam, ok := aliasIndex[toolType]
	if !ok {
		return "", false
	}
	mapped, ok := fam.byTarget[target]
	return mapped, ok
}

// KnownType reports whether the tool_type appears in the translation table.
func KnownType(toolType string) bool {
	_, ok := aliasIndex[toolType]
	return ok
}
