// Package metrics exposes prometheus instrumentation for the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eventradar"

var (
	// MessagesProcessed counts messages pulled through the transformer.
	MessagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_processed_total",
		Help:      "Messages fetched and fed through the transformer.",
	}, []string{"channel"})

	// EventsExtracted counts messages that yielded a structured event.
	EventsExtracted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_extracted_total",
		Help:      "Structured events produced, by classified type.",
	}, []string{"event_type"})

	// ChannelFetchErrors counts per-channel fetch failures (skipped channels).
	ChannelFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "channel_fetch_errors_total",
		Help:      "Message source failures; the channel was skipped for that run.",
	}, []string{"channel"})

	// EventsSaved counts newly persisted events.
	EventsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_saved_total",
		Help:      "Events inserted into the record store.",
	})

	// EventsSkipped counts exact duplicates dropped by the dedup check.
	EventsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_skipped_total",
		Help:      "Events skipped as exact (channel, raw_text) duplicates.",
	})

	// SaveErrors counts per-event persistence failures.
	SaveErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_save_errors_total",
		Help:      "Insert failures absorbed without aborting the batch.",
	})

	// ScrapeDuration observes wall time of whole scrape runs.
	ScrapeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scrape_duration_seconds",
		Help:      "Duration of full scrape runs across all channels.",
		Buckets:   prometheus.DefBuckets,
	})
)
