package domain

import "time"

// Sort field constants for event listings.
const (
	SortByEventDate  = "event_date"
	SortByDatePosted = "date_posted"
	SortByCreatedAt  = "created_at"
)

// Sort direction constants.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Pagination defaults and limits.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// EventFilter narrows an event listing. Zero values mean "no constraint".
type EventFilter struct {
	EventType EventType
	Channel   string
	DateFrom  *time.Time
	DateTo    *time.Time
	// Location matches as a substring against the extracted location and the
	// raw message text.
	Location string
	// Keywords matches events whose keyword set contains any of the given
	// terms.
	Keywords []string
	// Urgency filters after the query, since it is derived from "now".
	Urgency Urgency

	SortBy        string
	SortDirection string
	Page          int
	PerPage       int
}

// Normalize fills defaults and clamps pagination.
func (f *EventFilter) Normalize() {
	if f.SortBy == "" {
		f.SortBy = SortByEventDate
	}
	if f.SortDirection != SortDesc {
		f.SortDirection = SortAsc
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
}
