package extract

import (
	"regexp"
	"strings"
)

const (
	descriptionMaxLen = 255
	// descriptionFallback stands in when stripping leaves nothing behind.
	descriptionFallback = "Event"
)

// emojiRanges are the Unicode blocks stripped from descriptions:
// emoticons, symbols and pictographs, transport, and regional flags.
var emojiRanges = [...][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanDescription derives a short display description from a message:
// first line only, emoji stripped, whitespace runs collapsed, truncated to
// 255 characters. An empty result becomes "Event".
func CleanDescription(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimSuffix(line, "\r")

	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if !isEmoji(r) {
			b.WriteRune(r)
		}
	}

	cleaned := strings.TrimSpace(whitespaceRun.ReplaceAllString(b.String(), " "))
	if cleaned == "" {
		return descriptionFallback
	}
	return truncateRunes(cleaned, descriptionMaxLen)
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}
