package extract

import (
	"regexp"
	"strings"
)

const locationMaxLen = 255

// locationPatterns is the ordered venue heuristic list; the first pattern
// that matches wins. Ordering runs from most specific (an explicit pin line)
// to generic venue words, so "Haad Rin Beach" resolves as "Haad Rin Beach"
// rather than just "beach".
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`📍\s*([^\n\r]+)`),
	regexp.MustCompile(`(?i)(haad\s+\w+(?:\s+\w+)?)`),
	regexp.MustCompile(`(?i)(ban\s+tai(?:\s+beach)?)`),
	regexp.MustCompile(`(?i)(thong\s+\w+(?:\s+\w+)?)`),
	regexp.MustCompile(`(?i)(secret\s+\w+\s+location)`),
	regexp.MustCompile(`(?i)(jungle\s+location)`),
	regexp.MustCompile(`(?i)(waterfall\s+location)`),
	regexp.MustCompile(`(?i)(beach)`),
	regexp.MustCompile(`(?i)(temple)`),
}

// ExtractLocation returns the venue implied by the text, or nil when no
// pattern matches. The captured value is trimmed, stripped of pin emoji, and
// truncated to 255 characters.
func ExtractLocation(text string) *string {
	for _, re := range locationPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		loc := strings.TrimSpace(m[1])
		loc = strings.ReplaceAll(loc, "📍", "")
		loc = truncateRunes(strings.TrimSpace(loc), locationMaxLen)
		if loc == "" {
			return nil
		}
		return &loc
	}
	return nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
