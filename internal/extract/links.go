package extract

import "regexp"

var (
	urlPattern     = regexp.MustCompile(`https?://\S+`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
)

// ExtractURLs returns every http(s) URL in the text, in order of
// appearance. Duplicates are preserved.
func ExtractURLs(text string) []string {
	urls := urlPattern.FindAllString(text, -1)
	if urls == nil {
		return []string{}
	}
	return urls
}

// ExtractMentions returns every @handle in the text with the leading @
// stripped, in order of appearance. Duplicates are preserved.
func ExtractMentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		mentions = append(mentions, m[1])
	}
	return mentions
}
