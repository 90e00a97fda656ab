package domain

// SaveStats aggregates the outcome of persisting one batch of events.
// Per-item failures are absorbed into Errors; a batch save never fails as a
// whole because of a single event.
type SaveStats struct {
	TotalProcessed int `json:"total_processed"`
	Saved          int `json:"saved"`
	Skipped        int `json:"skipped"`
	Errors         int `json:"errors"`
}

// EventStats summarizes the stored event set.
type EventStats struct {
	TotalEvents    int            `json:"total_events"`
	ByType         map[string]int `json:"by_type"`
	ByChannel      map[string]int `json:"by_channel"`
	RecentEvents   int            `json:"recent_events"`
	UpcomingEvents int            `json:"upcoming_events"`
	EventsToday    int            `json:"events_today"`
	EventsThisWeek int            `json:"events_this_week"`
}

// LocationCount is one entry of a top-locations ranking.
type LocationCount struct {
	Location string `json:"location" db:"location"`
	Count    int    `json:"count" db:"count"`
}

// KeywordCount is one entry of a trending-keywords ranking.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}
