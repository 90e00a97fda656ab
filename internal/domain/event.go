// Package domain defines the records flowing through the scraping pipeline.
package domain

import "time"

// EventType categorizes an extracted event.
type EventType string

// Event type constants. Classification picks exactly one of these.
const (
	EventTypeParty    EventType = "party"
	EventTypeFestival EventType = "festival"
	EventTypeWellness EventType = "wellness"
	EventTypeGeneral  EventType = "general"
)

// EventTypes lists all valid event types.
var EventTypes = []EventType{EventTypeParty, EventTypeFestival, EventTypeWellness, EventTypeGeneral}

// ValidEventType reports whether s names a known event type.
func ValidEventType(s string) bool {
	for _, t := range EventTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// ExtractedEvent is the structured record derived from one relevant
// RawMessage. It exists only when at least one vocabulary keyword matched.
type ExtractedEvent struct {
	Channel string `json:"channel"`
	// RawText is the verbatim message text. Together with Channel it forms
	// the dedup key, so it must never be normalized or trimmed.
	RawText       string     `json:"raw_text"`
	EventDate     *time.Time `json:"event_date"`
	Location      *string    `json:"location"`
	EventType     EventType  `json:"event_type"`
	Description   string     `json:"description"`
	KeywordsFound []string   `json:"keywords_found"`
	URLs          []string   `json:"urls"`
	Mentions      []string   `json:"mentions"`
	PostedAt      time.Time  `json:"posted_at"`
}

// StoredEvent is an ExtractedEvent persisted to the record store.
type StoredEvent struct {
	ID int64 `json:"id"`
	ExtractedEvent
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
