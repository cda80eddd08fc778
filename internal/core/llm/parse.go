package llm

import "strings"

// StripCodeFences removes a surrounding Markdown code fence (``` or
// ```json) from a model response. Models add them despite instructions; the
// JSON parser downstream should never see them.
func StripCodeFences(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") {
		return out
	}

	out = strings.TrimPrefix(out, "```")
	// Drop an optional language tag on the opening fence line.
	if idx := strings.Index(out, "\n"); idx >= 0 {
		first := strings.TrimSpace(out[:idx])
		if first == "" || isLanguageTag(first) {
			out = out[idx+1:]
		}
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}

func isLanguageTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
