// Package scraper orchestrates the message-to-event pipeline: keyword
// matching, field extraction, classification, and deduplicated persistence.
package scraper

import (
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/islandbeat/eventradar/internal/classify"
	"github.com/islandbeat/eventradar/internal/domain"
	"github.com/islandbeat/eventradar/internal/extract"
)

// Transformer turns one raw message into one structured event, or nothing.
type Transformer struct {
	keywords *extract.KeywordMatcher
	dates    *extract.DateExtractor
	now      func() time.Time
}

// TransformerOptions configures a Transformer.
type TransformerOptions struct {
	// Vocabulary is the ordered keyword list deciding relevance.
	Vocabulary []string
	// WordBoundary enables strict whole-word keyword matching.
	WordBoundary bool
	// DateYears is the month->year table for explicit date mentions.
	DateYears map[time.Month]int
	// Now is injected for deterministic tests; nil means time.Now.
	Now func() time.Time
}

// NewTransformer builds a transformer from options.
func NewTransformer(opts TransformerOptions) *Transformer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Transformer{
		keywords: extract.NewKeywordMatcher(opts.Vocabulary, opts.WordBoundary),
		dates:    extract.NewDateExtractor(opts.DateYears, now),
		now:      now,
	}
}

// VocabularySize returns the number of effective vocabulary terms.
func (t *Transformer) VocabularySize() int {
	return len(t.keywords.Terms())
}

// Transform extracts a structured event from msg. It returns nil when no
// vocabulary keyword matches; that is a filter, not an error, and the field
// extractors are deliberately not run for such messages.
func (t *Transformer) Transform(msg domain.RawMessage) *domain.ExtractedEvent {
	keywordsFound := t.keywords.Match(msg.Text)
	if len(keywordsFound) == 0 {
		return nil
	}

	// Extractors see NFC-normalized text so composed and decomposed emoji
	// sequences behave the same. RawText stays verbatim: it is half of the
	// dedup key.
	text := norm.NFC.String(msg.Text)

	postedAt := msg.PostedAt
	if postedAt.IsZero() {
		postedAt = t.now()
	}

	return &domain.ExtractedEvent{
		Channel:       msg.Channel,
		RawText:       msg.Text,
		EventDate:     t.dates.Extract(text),
		Location:      extract.ExtractLocation(text),
		EventType:     classify.EventType(keywordsFound),
		Description:   extract.CleanDescription(text),
		KeywordsFound: keywordsFound,
		URLs:          extract.ExtractURLs(text),
		Mentions:      extract.ExtractMentions(text),
		PostedAt:      postedAt,
	}
}
