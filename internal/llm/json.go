package llm

import "strings"

// ExtractJSON strips a leading/trailing markdown code fence from model output
// so the remainder can be parsed as JSON. Output without a fence is returned
// trimmed but otherwise untouched.
func ExtractJSON(raw string) string {
	clean := strings.TrimSpace(raw)
	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```json")
		clean = strings.TrimPrefix(clean, "```")
		clean = strings.TrimSpace(clean)
		if idx := strings.LastIndex(clean, "```"); idx != -1 {
			clean = clean[:idx]
		}
	}
	clean = strings.Trim(clean, "`")
	return strings.TrimSpace(clean)
}
