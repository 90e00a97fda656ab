package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/islandbeat/eventradar/internal/domain"
	"github.com/islandbeat/eventradar/internal/logger"
	"github.com/islandbeat/eventradar/internal/metrics"
	"github.com/islandbeat/eventradar/internal/source"
)

// EventStore is the slice of the record store the saver needs.
type EventStore interface {
	Exists(ctx context.Context, channel, rawText string) (bool, error)
	Insert(ctx context.Context, event domain.ExtractedEvent) (*domain.StoredEvent, error)
}

// Construction errors. Misconfiguration must fail loudly so operators can
// tell "found nothing" from "scraped nothing".
var (
	ErrNoVocabulary = errors.New("scraper: keyword vocabulary is empty")
	ErrNoChannels   = errors.New("scraper: no channels configured")
)

// Service runs the scraping pipeline: fetch, transform, persist. Scrape and
// Save are separate operations so callers can inspect extracted events
// before committing them (dry runs).
type Service struct {
	src         source.MessageSource
	store       EventStore
	transformer *Transformer
	channels    []string
	limit       int
	log         logger.Logger
}

// NewService wires the pipeline. channels and the transformer vocabulary
// must be non-empty; limit is the default per-channel message cap.
func NewService(
	src source.MessageSource,
	store EventStore,
	transformer *Transformer,
	channels []string,
	limit int,
	log logger.Logger,
) (*Service, error) {
	if transformer.VocabularySize() == 0 {
		return nil, ErrNoVocabulary
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}
	if limit < 1 {
		return nil, fmt.Errorf("scraper: message limit must be positive, got %d", limit)
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &Service{
		src:         src,
		store:       store,
		transformer: transformer,
		channels:    channels,
		limit:       limit,
		log:         log,
	}, nil
}

// Scrape pulls up to limit messages from each channel and returns the
// structured events extracted from them, preserving channel-iteration order
// and per-channel message order. A fetch failure skips that channel only;
// the remaining channels still run. Empty arguments fall back to the
// configured channels and limit.
func (s *Service) Scrape(ctx context.Context, channels []string, limit int) []domain.ExtractedEvent {
	if len(channels) == 0 {
		channels = s.channels
	}
	if limit < 1 {
		limit = s.limit
	}

	start := time.Now()
	log := s.log.With(logger.String("run_id", uuid.NewString()))
	log.Info("scrape run starting",
		logger.Strings("channels", channels),
		logger.Int("limit", limit))

	var events []domain.ExtractedEvent
	for _, channel := range channels {
		msgs, err := s.src.FetchMessages(ctx, channel, limit)
		if err != nil {
			metrics.ChannelFetchErrors.WithLabelValues(channel).Inc()
			log.Error("channel fetch failed, skipping channel",
				logger.String("channel", channel),
				logger.Error(err))
			continue
		}

		found := 0
		for _, msg := range msgs {
			metrics.MessagesProcessed.WithLabelValues(channel).Inc()
			if ev := s.transformer.Transform(msg); ev != nil {
				metrics.EventsExtracted.WithLabelValues(string(ev.EventType)).Inc()
				events = append(events, *ev)
				found++
			}
		}

		log.Info("channel scraped",
			logger.String("channel", channel),
			logger.Int("messages", len(msgs)),
			logger.Int("events", found))
	}

	metrics.ScrapeDuration.Observe(time.Since(start).Seconds())
	log.Info("scrape run finished",
		logger.Int("events", len(events)),
		logger.Duration("took", time.Since(start)))

	return events
}

// Save persists events one by one, deduplicating on (channel, raw_text).
// A duplicate counts as skipped; an insert failure is logged, counted, and
// never aborts the rest of the batch. Save itself never fails.
func (s *Service) Save(ctx context.Context, events []domain.ExtractedEvent) domain.SaveStats {
	stats := domain.SaveStats{TotalProcessed: len(events)}

	for i := range events {
		ev := &events[i]

		exists, err := s.store.Exists(ctx, ev.Channel, ev.RawText)
		if err != nil {
			stats.Errors++
			metrics.SaveErrors.Inc()
			s.log.Error("duplicate check failed",
				logger.String("channel", ev.Channel),
				logger.String("description", ev.Description),
				logger.Error(err))
			continue
		}
		if exists {
			stats.Skipped++
			metrics.EventsSkipped.Inc()
			continue
		}

		if _, err := s.store.Insert(ctx, *ev); err != nil {
			// The unique index can still fire when two runs race past the
			// existence check; that is a duplicate, not a failure.
			if errors.Is(err, domain.ErrDuplicateEvent) {
				stats.Skipped++
				metrics.EventsSkipped.Inc()
				continue
			}
			stats.Errors++
			metrics.SaveErrors.Inc()
			s.log.Error("event insert failed",
				logger.String("channel", ev.Channel),
				logger.String("description", ev.Description),
				logger.Error(err))
			continue
		}

		stats.Saved++
		metrics.EventsSaved.Inc()
	}

	s.log.Info("event batch saved",
		logger.Int("total_processed", stats.TotalProcessed),
		logger.Int("saved", stats.Saved),
		logger.Int("skipped", stats.Skipped),
		logger.Int("errors", stats.Errors))

	return stats
}
