package scraper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islandbeat/eventradar/internal/domain"
	"github.com/islandbeat/eventradar/internal/scraper"
)

// fakeSource serves canned messages per channel and can fail per channel.
type fakeSource struct {
	messages map[string][]domain.RawMessage
	fail     map[string]error
}

func (f *fakeSource) FetchMessages(_ context.Context, channel string, limit int) ([]domain.RawMessage, error) {
	if err := f.fail[channel]; err != nil {
		return nil, err
	}
	msgs := f.messages[channel]
	if limit < len(msgs) {
		msgs = msgs[:limit]
	}
	return msgs, nil
}

// fakeStore records inserts in memory and can fail on chosen raw texts.
type fakeStore struct {
	events     map[string]bool // channel + "\x00" + rawText
	failInsert map[string]error
	failExists error
	inserted   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:     make(map[string]bool),
		failInsert: make(map[string]error),
	}
}

func (f *fakeStore) key(channel, rawText string) string { return channel + "\x00" + rawText }

func (f *fakeStore) Exists(_ context.Context, channel, rawText string) (bool, error) {
	if f.failExists != nil {
		return false, f.failExists
	}
	return f.events[f.key(channel, rawText)], nil
}

func (f *fakeStore) Insert(_ context.Context, ev domain.ExtractedEvent) (*domain.StoredEvent, error) {
	if err := f.failInsert[ev.RawText]; err != nil {
		return nil, err
	}
	k := f.key(ev.Channel, ev.RawText)
	if f.events[k] {
		return nil, domain.ErrDuplicateEvent
	}
	f.events[k] = true
	f.inserted++
	return &domain.StoredEvent{ID: int64(f.inserted), ExtractedEvent: ev}, nil
}

func newTestService(t *testing.T, src *fakeSource, store *fakeStore, channels []string) *scraper.Service {
	t.Helper()
	svc, err := scraper.NewService(
		src, store,
		newTestTransformer(t, []string{"party", "yoga"}),
		channels, 100, nil,
	)
	require.NoError(t, err)
	return svc
}

func TestService_ConstructionErrors(t *testing.T) {
	src := &fakeSource{}
	store := newFakeStore()

	_, err := scraper.NewService(src, store, newTestTransformer(t, nil), []string{"a"}, 10, nil)
	assert.ErrorIs(t, err, scraper.ErrNoVocabulary)

	_, err = scraper.NewService(src, store, newTestTransformer(t, []string{"party"}), nil, 10, nil)
	assert.ErrorIs(t, err, scraper.ErrNoChannels)

	_, err = scraper.NewService(src, store, newTestTransformer(t, []string{"party"}), []string{"a"}, 0, nil)
	assert.Error(t, err)
}

func TestService_ScrapeExtractsRelevantMessages(t *testing.T) {
	src := &fakeSource{messages: map[string][]domain.RawMessage{
		"test": {
			{Channel: "test", Text: "Huge party tonight at the beach", PostedAt: fixedNow()},
			{Channel: "test", Text: "Lost wallet, please help", PostedAt: fixedNow()},
		},
	}}
	svc := newTestService(t, src, newFakeStore(), []string{"test"})

	events := svc.Scrape(context.Background(), nil, 0)

	require.Len(t, events, 1)
	assert.Equal(t, "test", events[0].Channel)
	assert.Equal(t, domain.EventTypeParty, events[0].EventType)
	assert.Equal(t, []string{"party"}, events[0].KeywordsFound)
	require.NotNil(t, events[0].EventDate)
	assert.Equal(t, time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), *events[0].EventDate)
}

func TestService_ScrapeSkipsFailingChannel(t *testing.T) {
	src := &fakeSource{
		messages: map[string][]domain.RawMessage{
			"good": {{Channel: "good", Text: "yoga at dawn", PostedAt: fixedNow()}},
		},
		fail: map[string]error{"bad": errors.New("rate limited")},
	}
	svc := newTestService(t, src, newFakeStore(), []string{"bad", "good"})

	events := svc.Scrape(context.Background(), nil, 0)

	require.Len(t, events, 1)
	assert.Equal(t, "good", events[0].Channel)
}

func TestService_SaveDeduplicates(t *testing.T) {
	store := newFakeStore()
	src := &fakeSource{messages: map[string][]domain.RawMessage{
		"test": {{Channel: "test", Text: "party on", PostedAt: fixedNow()}},
	}}
	svc := newTestService(t, src, store, []string{"test"})

	events := svc.Scrape(context.Background(), nil, 0)
	require.Len(t, events, 1)

	first := svc.Save(context.Background(), events)
	assert.Equal(t, domain.SaveStats{TotalProcessed: 1, Saved: 1}, first)

	// Same batch again: everything is a skip, nothing an error.
	second := svc.Save(context.Background(), events)
	assert.Equal(t, domain.SaveStats{TotalProcessed: 1, Skipped: 1}, second)
}

func TestService_SaveCountsInsertFailures(t *testing.T) {
	store := newFakeStore()
	store.failInsert["boom"] = errors.New("disk full")

	svc := newTestService(t, &fakeSource{}, store, []string{"test"})

	events := []domain.ExtractedEvent{
		{Channel: "test", RawText: "one", EventType: domain.EventTypeParty, PostedAt: fixedNow()},
		{Channel: "test", RawText: "boom", EventType: domain.EventTypeParty, PostedAt: fixedNow()},
		{Channel: "test", RawText: "three", EventType: domain.EventTypeParty, PostedAt: fixedNow()},
	}

	stats := svc.Save(context.Background(), events)

	// The failing event never aborts the rest of the batch.
	assert.Equal(t, domain.SaveStats{TotalProcessed: 3, Saved: 2, Errors: 1}, stats)
	assert.True(t, store.events[store.key("test", "one")])
	assert.True(t, store.events[store.key("test", "three")])
	assert.False(t, store.events[store.key("test", "boom")])
}

func TestService_SaveTreatsRacedInsertAsSkip(t *testing.T) {
	store := newFakeStore()
	store.failInsert["raced"] = domain.ErrDuplicateEvent

	svc := newTestService(t, &fakeSource{}, store, []string{"test"})

	stats := svc.Save(context.Background(), []domain.ExtractedEvent{
		{Channel: "test", RawText: "raced", EventType: domain.EventTypeParty, PostedAt: fixedNow()},
	})

	assert.Equal(t, domain.SaveStats{TotalProcessed: 1, Skipped: 1}, stats)
}
