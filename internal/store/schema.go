package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema notes: the unique index on (channel, raw_message) is the real
// duplicate guarantee. The saver still does a read-before-write so skips are
// counted, but two overlapping runs racing past that check cannot produce
// two rows; the second insert lands on the index and is dropped.
const (
	schemaPostgres = `
CREATE TABLE IF NOT EXISTS scraped_events (
	id             BIGSERIAL PRIMARY KEY,
	channel        TEXT NOT NULL,
	raw_message    TEXT NOT NULL,
	event_date     DATE,
	location       TEXT,
	event_type     TEXT NOT NULL DEFAULT 'general',
	description    TEXT NOT NULL,
	keywords_found TEXT NOT NULL,
	urls           TEXT NOT NULL,
	mentions       TEXT NOT NULL,
	date_posted    TIMESTAMPTZ NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
)`

	schemaSQLite = `
CREATE TABLE IF NOT EXISTS scraped_events (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	channel        TEXT NOT NULL,
	raw_message    TEXT NOT NULL,
	event_date     DATE,
	location       TEXT,
	event_type     TEXT NOT NULL DEFAULT 'general',
	description    TEXT NOT NULL,
	keywords_found TEXT NOT NULL,
	urls           TEXT NOT NULL,
	mentions       TEXT NOT NULL,
	date_posted    TIMESTAMP NOT NULL,
	created_at     TIMESTAMP NOT NULL,
	updated_at     TIMESTAMP NOT NULL
)`
)

var schemaIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_scraped_events_dedup ON scraped_events (channel, raw_message)`,
	`CREATE INDEX IF NOT EXISTS ix_scraped_events_channel_posted ON scraped_events (channel, date_posted)`,
	`CREATE INDEX IF NOT EXISTS ix_scraped_events_event_date ON scraped_events (event_date)`,
	`CREATE INDEX IF NOT EXISTS ix_scraped_events_event_type ON scraped_events (event_type)`,
}

// EnsureSchema creates the events table and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := schemaSQLite
	if db.DriverName() == "postgres" {
		schema = schemaPostgres
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create scraped_events table: %w", err)
	}
	for _, idx := range schemaIndexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
