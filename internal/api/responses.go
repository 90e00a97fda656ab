package api

import (
	"time"

	"github.com/islandbeat/eventradar/internal/domain"
)

// EventResponse is one stored event as the API presents it. The event date
// is a plain calendar day; urgency is computed from it at serialization
// time, relative to the server clock.
type EventResponse struct {
	ID            int64      `json:"id"`
	Channel       string     `json:"channel"`
	EventType     string     `json:"event_type"`
	Description   string     `json:"description"`
	EventDate     *string    `json:"event_date"`
	Location      *string    `json:"location"`
	Urgency       string     `json:"urgency"`
	KeywordsFound []string   `json:"keywords_found"`
	URLs          []string   `json:"urls"`
	Mentions      []string   `json:"mentions"`
	DatePosted    time.Time  `json:"date_posted"`
	CreatedAt     time.Time  `json:"created_at"`
}

// EventsListResponse is a paginated event listing. Total counts every row
// matching the query filters; an urgency filter narrows the returned page
// after the query, so Events can hold fewer than PerPage items while Total
// stays unchanged.
type EventsListResponse struct {
	Events  []EventResponse `json:"events"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// StatsResponse aggregates store-wide statistics for the dashboard.
type StatsResponse struct {
	Stats             *domain.EventStats     `json:"stats"`
	PopularLocations  []domain.LocationCount `json:"popular_locations"`
	TrendingKeywords  []domain.KeywordCount  `json:"trending_keywords"`
	GeneratedAt       time.Time              `json:"generated_at"`
}

// ScrapeRequest triggers a scrape run over the given channels. Empty
// channels and a zero limit fall back to the configured defaults. With
// DryRun set the extracted events are returned but not persisted.
type ScrapeRequest struct {
	Channels []string `json:"channels"`
	Limit    int      `json:"limit" binding:"min=0,max=1000"`
	DryRun   bool     `json:"dry_run"`
}

// ScrapeResponse reports the outcome of one scrape run.
type ScrapeResponse struct {
	Events []domain.ExtractedEvent `json:"events"`
	Stats  *domain.SaveStats       `json:"stats,omitempty"`
	DryRun bool                    `json:"dry_run"`
}

const dateLayout = "2006-01-02"

// toEventResponse converts a stored event to its API form, deriving urgency
// from now.
func toEventResponse(ev domain.StoredEvent, now time.Time) EventResponse {
	resp := EventResponse{
		ID:            ev.ID,
		Channel:       ev.Channel,
		EventType:     string(ev.EventType),
		Description:   ev.Description,
		Location:      ev.Location,
		Urgency:       string(domain.ClassifyUrgency(ev.EventDate, now)),
		KeywordsFound: ev.KeywordsFound,
		URLs:          ev.URLs,
		Mentions:      ev.Mentions,
		DatePosted:    ev.PostedAt,
		CreatedAt:     ev.CreatedAt,
	}
	if ev.EventDate != nil {
		d := ev.EventDate.Format(dateLayout)
		resp.EventDate = &d
	}
	return resp
}
