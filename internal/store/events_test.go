package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandbeat/eventradar/internal/config"
	"github.com/islandbeat/eventradar/internal/domain"
	"github.com/islandbeat/eventradar/internal/store"
)

func newTestRepo(t *testing.T) *store.EventRepository {
	t.Helper()

	db, err := store.Open(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, store.EnsureSchema(context.Background(), db))
	return store.NewEventRepository(db)
}

func testEvent(channel, rawText string, mutate ...func(*domain.ExtractedEvent)) domain.ExtractedEvent {
	ev := domain.ExtractedEvent{
		Channel:       channel,
		RawText:       rawText,
		EventType:     domain.EventTypeParty,
		Description:   "Test party",
		KeywordsFound: []string{"party"},
		URLs:          []string{},
		Mentions:      []string{},
		PostedAt:      time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC),
	}
	for _, m := range mutate {
		m(&ev)
	}
	return ev
}

func withDate(year int, month time.Month, day int) func(*domain.ExtractedEvent) {
	return func(ev *domain.ExtractedEvent) {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		ev.EventDate = &d
	}
}

func withLocation(loc string) func(*domain.ExtractedEvent) {
	return func(ev *domain.ExtractedEvent) { ev.Location = &loc }
}

func TestEventRepository_InsertAndExists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	exists, err := repo.Exists(ctx, "test", "party msg")
	require.NoError(t, err)
	assert.False(t, exists)

	stored, err := repo.Insert(ctx, testEvent("test", "party msg", withDate(2025, time.September, 14), withLocation("Haad Rin Beach")))
	require.NoError(t, err)
	assert.Positive(t, stored.ID)

	exists, err = repo.Exists(ctx, "test", "party msg")
	require.NoError(t, err)
	assert.True(t, exists)

	// Same raw text on another channel is a different event.
	exists, err = repo.Exists(ctx, "other", "party msg")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEventRepository_InsertDuplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, testEvent("test", "party msg"))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, testEvent("test", "party msg"))
	assert.ErrorIs(t, err, domain.ErrDuplicateEvent)
}

func TestEventRepository_ListRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := testEvent("test", "full listing", withDate(2025, time.September, 14), withLocation("Ban Tai Beach"))
	in.KeywordsFound = []string{"party", "techno"}
	in.URLs = []string{"https://example.com"}
	in.Mentions = []string{"phanganparty"}

	_, err := repo.Insert(ctx, in)
	require.NoError(t, err)

	events, total, err := repo.List(ctx, domain.EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, in.Channel, got.Channel)
	assert.Equal(t, in.RawText, got.RawText)
	assert.Equal(t, in.EventType, got.EventType)
	assert.Equal(t, in.KeywordsFound, got.KeywordsFound)
	assert.Equal(t, in.URLs, got.URLs)
	assert.Equal(t, in.Mentions, got.Mentions)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Ban Tai Beach", *got.Location)
	require.NotNil(t, got.EventDate)
	assert.Equal(t, 14, got.EventDate.Day())
}

func TestEventRepository_ListFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []domain.ExtractedEvent{
		testEvent("alpha", "party one", withDate(2025, time.September, 5)),
		testEvent("alpha", "yoga morning", func(ev *domain.ExtractedEvent) {
			ev.EventType = domain.EventTypeWellness
			ev.KeywordsFound = []string{"yoga"}
		}),
		testEvent("beta", "festival weekend", withDate(2025, time.September, 20), func(ev *domain.ExtractedEvent) {
			ev.EventType = domain.EventTypeFestival
			ev.KeywordsFound = []string{"festival"}
		}),
	}
	for _, ev := range seed {
		_, err := repo.Insert(ctx, ev)
		require.NoError(t, err)
	}

	t.Run("by type", func(t *testing.T) {
		events, total, err := repo.List(ctx, domain.EventFilter{EventType: domain.EventTypeWellness})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, events, 1)
		assert.Equal(t, "yoga morning", events[0].RawText)
	})

	t.Run("by channel", func(t *testing.T) {
		_, total, err := repo.List(ctx, domain.EventFilter{Channel: "alpha"})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
	})

	t.Run("by keyword", func(t *testing.T) {
		events, total, err := repo.List(ctx, domain.EventFilter{Keywords: []string{"festival"}})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, events, 1)
		assert.Equal(t, "festival weekend", events[0].RawText)
	})

	t.Run("by date range", func(t *testing.T) {
		from := time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC)
		_, total, err := repo.List(ctx, domain.EventFilter{DateFrom: &from})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("by location substring against raw text", func(t *testing.T) {
		_, total, err := repo.List(ctx, domain.EventFilter{Location: "yoga"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})
}

func TestEventRepository_ListSortPutsUndatedLast(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, testEvent("test", "undated"))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, testEvent("test", "later", withDate(2025, time.September, 20)))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, testEvent("test", "sooner", withDate(2025, time.September, 5)))
	require.NoError(t, err)

	events, _, err := repo.List(ctx, domain.EventFilter{SortBy: domain.SortByEventDate})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "sooner", events[0].RawText)
	assert.Equal(t, "later", events[1].RawText)
	assert.Equal(t, "undated", events[2].RawText)
}

func TestEventRepository_ListPagination(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		_, err := repo.Insert(ctx, testEvent("test", time.Date(2025, time.September, day, 0, 0, 0, 0, time.UTC).String(),
			withDate(2025, time.September, day)))
		require.NoError(t, err)
	}

	events, total, err := repo.List(ctx, domain.EventFilter{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, events, 2)
	assert.Equal(t, 3, events[0].EventDate.Day())
	assert.Equal(t, 4, events[1].EventDate.Day())
}

func TestEventRepository_Stats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC) // Monday

	seed := []domain.ExtractedEvent{
		testEvent("alpha", "today party", withDate(2025, time.September, 1)),
		testEvent("alpha", "weekend festival", withDate(2025, time.September, 6), func(ev *domain.ExtractedEvent) {
			ev.EventType = domain.EventTypeFestival
		}),
		testEvent("beta", "old news", func(ev *domain.ExtractedEvent) {
			ev.PostedAt = now.AddDate(0, 0, -30)
		}),
	}
	for _, ev := range seed {
		_, err := repo.Insert(ctx, ev)
		require.NoError(t, err)
	}

	stats, err := repo.Stats(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalEvents)
	assert.Equal(t, map[string]int{"party": 2, "festival": 1}, stats.ByType)
	assert.Equal(t, map[string]int{"alpha": 2, "beta": 1}, stats.ByChannel)
	assert.Equal(t, 2, stats.RecentEvents)
	assert.Equal(t, 2, stats.UpcomingEvents)
	assert.Equal(t, 1, stats.EventsToday)
	assert.Equal(t, 2, stats.EventsThisWeek)
}

func TestEventRepository_Rankings(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []domain.ExtractedEvent{
		testEvent("a", "one", withLocation("Haad Rin Beach"), func(ev *domain.ExtractedEvent) {
			ev.KeywordsFound = []string{"party", "techno"}
		}),
		testEvent("a", "two", withLocation("Haad Rin Beach"), func(ev *domain.ExtractedEvent) {
			ev.KeywordsFound = []string{"party"}
		}),
		testEvent("a", "three", withLocation("Ban Tai"), func(ev *domain.ExtractedEvent) {
			ev.KeywordsFound = []string{"yoga"}
		}),
		testEvent("a", "four"),
	}
	for _, ev := range seed {
		_, err := repo.Insert(ctx, ev)
		require.NoError(t, err)
	}

	locations, err := repo.TopLocations(ctx, 10)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, domain.LocationCount{Location: "Haad Rin Beach", Count: 2}, locations[0])
	assert.Equal(t, domain.LocationCount{Location: "Ban Tai", Count: 1}, locations[1])

	keywords, err := repo.TopKeywords(ctx, 2)
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, domain.KeywordCount{Keyword: "party", Count: 3}, keywords[0])
	assert.Equal(t, domain.KeywordCount{Keyword: "techno", Count: 1}, keywords[1])
}

func TestEventRepository_Truncate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, testEvent("test", "gone soon"))
	require.NoError(t, err)

	require.NoError(t, repo.Truncate(ctx))

	_, total, err := repo.List(ctx, domain.EventFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
