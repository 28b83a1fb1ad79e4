package promptstyle

import "strings"

const marker = "CAREERCOMPASS_PROMPT_STYLE_V1"

// ApplySystem prepends a short guidance block to system prompts. Applying it
// twice is a no-op.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" || strings.Contains(base, marker) {
		return base
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nYou are a careful assistant for Career Compass, a career development planner.")
	b.WriteString("\nFollow the system and user instructions precisely.")
	b.WriteString("\nUse the provided user information as grounding; do not invent credentials or history.")
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "json":
		b.WriteString("\nReturn a single JSON object that conforms to the schema and contains no extra keys.")
	case "plan":
		b.WriteString("\nOutput only the requested plan format, without preamble or closing remarks.")
	default:
		b.WriteString("\nBe concise and friendly.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return b.String()
}
