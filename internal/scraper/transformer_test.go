package scraper_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandbeat/eventradar/internal/domain"
	"github.com/islandbeat/eventradar/internal/scraper"
)

func fixedNow() time.Time {
	// A Monday.
	return time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
}

func newTestTransformer(t *testing.T, vocabulary []string) *scraper.Transformer {
	t.Helper()
	return scraper.NewTransformer(scraper.TransformerOptions{
		Vocabulary: vocabulary,
		DateYears:  map[time.Month]int{time.September: 2025},
		Now:        fixedNow,
	})
}

func TestTransformer_IrrelevantMessageIsFiltered(t *testing.T) {
	tr := newTestTransformer(t, []string{"party", "yoga"})

	ev := tr.Transform(domain.RawMessage{
		Channel:  "test",
		Text:     "Weather report: sunny, 32 degrees",
		PostedAt: fixedNow(),
	})

	assert.Nil(t, ev)
}

func TestTransformer_ExtractsAllFields(t *testing.T) {
	tr := newTestTransformer(t, []string{"party", "techno", "yoga"})

	text := "🎉 WATERFALL PARTY 🎉\n" +
		"📍 Secret Jungle Location\n" +
		"Techno all night, September 14\n" +
		"Tickets https://example.com/tix DM @phanganparty"

	ev := tr.Transform(domain.RawMessage{
		Channel:  "phanganparty",
		Text:     text,
		PostedAt: fixedNow().Add(-time.Hour),
	})
	require.NotNil(t, ev)

	assert.Equal(t, "phanganparty", ev.Channel)
	assert.Equal(t, text, ev.RawText)
	assert.Equal(t, "WATERFALL PARTY", ev.Description)
	assert.Equal(t, domain.EventTypeParty, ev.EventType)
	assert.Equal(t, []string{"party", "techno"}, ev.KeywordsFound)

	require.NotNil(t, ev.EventDate)
	assert.Equal(t, time.Date(2025, time.September, 14, 0, 0, 0, 0, time.UTC), *ev.EventDate)

	require.NotNil(t, ev.Location)
	assert.Equal(t, "Secret Jungle Location", *ev.Location)

	assert.Equal(t, []string{"https://example.com/tix"}, ev.URLs)
	assert.Equal(t, []string{"phanganparty"}, ev.Mentions)
	assert.Equal(t, fixedNow().Add(-time.Hour), ev.PostedAt)
}

func TestTransformer_ZeroPostedAtDefaultsToNow(t *testing.T) {
	tr := newTestTransformer(t, []string{"party"})

	ev := tr.Transform(domain.RawMessage{Channel: "test", Text: "party time"})
	require.NotNil(t, ev)
	assert.Equal(t, fixedNow(), ev.PostedAt)
}

func TestTransformer_RawTextStaysVerbatim(t *testing.T) {
	tr := newTestTransformer(t, []string{"party"})

	// Decomposed input must survive untouched even though extraction
	// normalizes its working copy.
	text := "Café party\n📍 beach"
	ev := tr.Transform(domain.RawMessage{Channel: "test", Text: text, PostedAt: fixedNow()})
	require.NotNil(t, ev)
	assert.Equal(t, text, ev.RawText)
}
