// Package extract implements the field extraction heuristics that turn
// free-text channel posts into structured event fields.
package extract

import (
	"regexp"
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// KeywordMatcher scans message text against a configured vocabulary.
// Matching is case-insensitive substring containment with no stemming and,
// by default, no word-boundary checks: "yoga" matches inside "yogait".
// That looseness is intentional; the strict mode exists as an opt-in.
type KeywordMatcher struct {
	terms        []string // original-case vocabulary, duplicate-free, in order
	matcher      *ahocorasick.Matcher
	strict       []*regexp.Regexp
	wordBoundary bool
}

// NewKeywordMatcher builds a matcher over the vocabulary. Terms are
// de-duplicated case-insensitively, keeping the first spelling; blank terms
// are dropped. An empty vocabulary yields a matcher that never matches.
func NewKeywordMatcher(vocabulary []string, wordBoundary bool) *KeywordMatcher {
	m := &KeywordMatcher{wordBoundary: wordBoundary}

	seen := make(map[string]bool, len(vocabulary))
	patterns := make([]string, 0, len(vocabulary))
	for _, term := range vocabulary {
		lower := strings.ToLower(strings.TrimSpace(term))
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		m.terms = append(m.terms, strings.TrimSpace(term))
		patterns = append(patterns, lower)
	}

	if len(patterns) == 0 {
		return m
	}

	if wordBoundary {
		m.strict = make([]*regexp.Regexp, len(patterns))
		for i, p := range patterns {
			m.strict[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p) + `\b`)
		}
		return m
	}

	m.matcher = ahocorasick.NewStringMatcher(patterns)
	return m
}

// Match returns the original-case vocabulary terms found in text, in
// vocabulary order. The result is empty when nothing matches; callers filter
// such messages out.
func (m *KeywordMatcher) Match(text string) []string {
	if m.wordBoundary {
		return m.matchStrict(text)
	}
	if m.matcher == nil {
		return nil
	}

	hits := m.matcher.Match([]byte(strings.ToLower(text)))
	sort.Ints(hits)

	found := make([]string, 0, len(hits))
	for _, idx := range hits {
		if idx < len(m.terms) {
			found = append(found, m.terms[idx])
		}
	}
	return found
}

func (m *KeywordMatcher) matchStrict(text string) []string {
	var found []string
	for i, re := range m.strict {
		if re.MatchString(text) {
			found = append(found, m.terms[i])
		}
	}
	return found
}

// Terms returns the effective vocabulary in matching order.
func (m *KeywordMatcher) Terms() []string {
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}
