package util

import (
	"strings"
	"unicode"
)

// SplitSentences cuts s after '.', '!' or '?' when followed by whitespace or the
// end of the text, so decimals and dotted dates such as 12.03.2024 stay whole.
func SplitSentences(s string) []string {
	runes := []rune(s)
	out := make([]string, 0, 8)
	start := 0
	for i, r := range runes {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if x := strings.TrimSpace(string(runes[start : i+1])); x != "" {
			out = append(out, x)
		}
		start = i + 1
	}
	if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
		out = append(out, rest)
	}
	return out
}

// Snippet collapses whitespace and truncates to maxRunes, appending "..." when cut.
func Snippet(s string, maxRunes int) string {
	if maxRunes <= 0 {
		maxRunes = 420
	}
	s = strings.Join(strings.Fields(SanitizeText(s)), " ")
	runes := []rune(s)
	if len(runes) > maxRunes {
		return strings.TrimSpace(string(runes[:maxRunes])) + "..."
	}
	return s
}
