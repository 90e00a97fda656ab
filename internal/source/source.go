// Package source defines the boundary to external message feeds.
package source

import (
	"context"

	"github.com/islandbeat/eventradar/internal/domain"
)

// MessageSource pulls recent messages from a named channel. Implementations
// talk to an external chat platform; failures are per-channel and the
// orchestrator treats them as skippable.
type MessageSource interface {
	FetchMessages(ctx context.Context, channel string, limit int) ([]domain.RawMessage, error)
}
