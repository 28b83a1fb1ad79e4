package prompts

import "sort"

func StringArraySchema() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

func StringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

func BoolSchema() map[string]any {
	return map[string]any{"type": "boolean"}
}

// StrictObject builds an object schema where every property is required, as
// strict structured output demands.
func StrictObject(properties map[string]any) map[string]any {
	req := sortedKeys(properties)
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             req,
		"additionalProperties": false,
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
