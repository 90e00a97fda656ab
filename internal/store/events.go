package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/islandbeat/eventradar/internal/domain"
)

// EventRepository handles database operations for scraped events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates an event repository over an open database.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// eventRow mirrors the scraped_events table. Keyword, URL, and mention
// lists are stored as JSON text so the schema stays identical across
// postgres and sqlite.
type eventRow struct {
	ID            int64          `db:"id"`
	Channel       string         `db:"channel"`
	RawMessage    string         `db:"raw_message"`
	EventDate     sql.NullTime   `db:"event_date"`
	Location      sql.NullString `db:"location"`
	EventType     string         `db:"event_type"`
	Description   string         `db:"description"`
	KeywordsFound string         `db:"keywords_found"`
	URLs          string         `db:"urls"`
	Mentions      string         `db:"mentions"`
	DatePosted    time.Time      `db:"date_posted"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r eventRow) toDomain() (domain.StoredEvent, error) {
	ev := domain.StoredEvent{
		ID: r.ID,
		ExtractedEvent: domain.ExtractedEvent{
			Channel:     r.Channel,
			RawText:     r.RawMessage,
			EventType:   domain.EventType(r.EventType),
			Description: r.Description,
			PostedAt:    r.DatePosted,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.EventDate.Valid {
		d := r.EventDate.Time
		ev.EventDate = &d
	}
	if r.Location.Valid {
		l := r.Location.String
		ev.Location = &l
	}

	for _, col := range []struct {
		raw  string
		dest *[]string
	}{
		{r.KeywordsFound, &ev.KeywordsFound},
		{r.URLs, &ev.URLs},
		{r.Mentions, &ev.Mentions},
	} {
		if err := json.Unmarshal([]byte(col.raw), col.dest); err != nil {
			return ev, fmt.Errorf("decode event %d list column: %w", r.ID, err)
		}
	}
	return ev, nil
}

// Exists reports whether an event with the same (channel, raw_text) dedup
// key is already stored.
func (r *EventRepository) Exists(ctx context.Context, channel, rawText string) (bool, error) {
	query := r.db.Rebind(`SELECT EXISTS (SELECT 1 FROM scraped_events WHERE channel = ? AND raw_message = ?)`)

	var exists bool
	if err := r.db.QueryRowxContext(ctx, query, channel, rawText).Scan(&exists); err != nil {
		return false, fmt.Errorf("check event existence: %w", err)
	}
	return exists, nil
}

// Insert stores a new event. When the (channel, raw_message) unique index
// fires the insert is dropped and ErrDuplicateEvent is returned, so racing
// writers converge on a single row.
func (r *EventRepository) Insert(ctx context.Context, event domain.ExtractedEvent) (*domain.StoredEvent, error) {
	keywords, err := json.Marshal(orEmpty(event.KeywordsFound))
	if err != nil {
		return nil, fmt.Errorf("encode keywords: %w", err)
	}
	urls, err := json.Marshal(orEmpty(event.URLs))
	if err != nil {
		return nil, fmt.Errorf("encode urls: %w", err)
	}
	mentions, err := json.Marshal(orEmpty(event.Mentions))
	if err != nil {
		return nil, fmt.Errorf("encode mentions: %w", err)
	}

	now := time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO scraped_events (
			channel, raw_message, event_date, location, event_type,
			description, keywords_found, urls, mentions, date_posted,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (channel, raw_message) DO NOTHING
		RETURNING id`)

	var eventDate any
	if event.EventDate != nil {
		eventDate = *event.EventDate
	}
	var location any
	if event.Location != nil {
		location = *event.Location
	}

	stored := domain.StoredEvent{ExtractedEvent: event, CreatedAt: now, UpdatedAt: now}
	err = r.db.QueryRowxContext(ctx, query,
		event.Channel, event.RawText, eventDate, location, string(event.EventType),
		event.Description, string(keywords), string(urls), string(mentions),
		event.PostedAt, now, now,
	).Scan(&stored.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDuplicateEvent
		}
		return nil, fmt.Errorf("insert event: %w", err)
	}

	return &stored, nil
}

// List returns one page of events matching the filter plus the total match
// count. Sorting by event date puts dated events first and null dates last.
func (r *EventRepository) List(ctx context.Context, filter domain.EventFilter) ([]domain.StoredEvent, int, error) {
	filter.Normalize()
	where, args := buildWhere(filter)

	var total int
	countQuery := r.db.Rebind(`SELECT COUNT(*) FROM scraped_events` + where)
	if err := r.db.QueryRowxContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := `SELECT * FROM scraped_events` + where + orderClause(filter) + ` LIMIT ? OFFSET ?`
	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	events := make([]domain.StoredEvent, 0, len(rows))
	for _, row := range rows {
		ev, err := row.toDomain()
		if err != nil {
			return nil, 0, err
		}
		events = append(events, ev)
	}
	return events, total, nil
}

func buildWhere(filter domain.EventFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if filter.EventType != "" {
		clauses = append(clauses, `event_type = ?`)
		args = append(args, string(filter.EventType))
	}
	if filter.Channel != "" {
		clauses = append(clauses, `channel = ?`)
		args = append(args, filter.Channel)
	}
	if filter.DateFrom != nil {
		clauses = append(clauses, `event_date >= ?`)
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		clauses = append(clauses, `event_date <= ?`)
		args = append(args, *filter.DateTo)
	}
	if filter.Location != "" {
		clauses = append(clauses, `(location LIKE ? OR raw_message LIKE ?)`)
		needle := "%" + filter.Location + "%"
		args = append(args, needle, needle)
	}
	if len(filter.Keywords) > 0 {
		// Keywords are stored as a JSON array, so containment of the quoted
		// term is an exact element match on both dialects.
		likes := make([]string, 0, len(filter.Keywords))
		for _, kw := range filter.Keywords {
			likes = append(likes, `keywords_found LIKE ?`)
			args = append(args, `%"`+kw+`"%`)
		}
		clauses = append(clauses, `(`+strings.Join(likes, ` OR `)+`)`)
	}

	if len(clauses) == 0 {
		return ``, nil
	}
	return ` WHERE ` + strings.Join(clauses, ` AND `), args
}

func orderClause(filter domain.EventFilter) string {
	dir := `ASC`
	if filter.SortDirection == domain.SortDesc {
		dir = `DESC`
	}

	switch filter.SortBy {
	case domain.SortByDatePosted:
		return ` ORDER BY date_posted ` + dir
	case domain.SortByCreatedAt:
		return ` ORDER BY created_at ` + dir
	default:
		// Dated events first, then the undated tail.
		return ` ORDER BY (event_date IS NULL) ASC, event_date ` + dir
	}
}

// Stats aggregates counts over the stored event set relative to now.
// "Recent" means posted within the last 7 days; "this week" spans Monday
// through Sunday of the current week.
func (r *EventRepository) Stats(ctx context.Context, now time.Time) (*domain.EventStats, error) {
	stats := &domain.EventStats{
		ByType:    make(map[string]int),
		ByChannel: make(map[string]int),
	}

	if err := r.db.QueryRowxContext(ctx, `SELECT COUNT(*) FROM scraped_events`).Scan(&stats.TotalEvents); err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	if err := r.groupCount(ctx, `event_type`, stats.ByType); err != nil {
		return nil, err
	}
	if err := r.groupCount(ctx, `channel`, stats.ByChannel); err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := startOfWeek(today)

	counts := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&stats.RecentEvents, `SELECT COUNT(*) FROM scraped_events WHERE date_posted >= ?`,
			[]any{now.AddDate(0, 0, -recentDays)}},
		{&stats.UpcomingEvents, `SELECT COUNT(*) FROM scraped_events WHERE event_date >= ?`,
			[]any{today}},
		{&stats.EventsToday, `SELECT COUNT(*) FROM scraped_events WHERE event_date >= ? AND event_date < ?`,
			[]any{today, today.AddDate(0, 0, 1)}},
		{&stats.EventsThisWeek, `SELECT COUNT(*) FROM scraped_events WHERE event_date >= ? AND event_date < ?`,
			[]any{weekStart, weekStart.AddDate(0, 0, 7)}},
	}
	for _, c := range counts {
		if err := r.db.QueryRowxContext(ctx, r.db.Rebind(c.query), c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("aggregate event stats: %w", err)
		}
	}

	return stats, nil
}

// recentDays is the posting-age window for the "recent" counter.
const recentDays = 7

func (r *EventRepository) groupCount(ctx context.Context, column string, dest map[string]int) error {
	// column is one of two fixed identifiers, never user input.
	query := fmt.Sprintf(`SELECT %s, COUNT(*) FROM scraped_events GROUP BY %s`, column, column)

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return fmt.Errorf("group events by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			count int
		)
		if err := rows.Scan(&key, &count); err != nil {
			return fmt.Errorf("scan %s group: %w", column, err)
		}
		dest[key] = count
	}
	return rows.Err()
}

// TopLocations returns the most frequent extracted locations, up to limit.
func (r *EventRepository) TopLocations(ctx context.Context, limit int) ([]domain.LocationCount, error) {
	query := r.db.Rebind(`
		SELECT location, COUNT(*) AS count
		FROM scraped_events
		WHERE location IS NOT NULL
		GROUP BY location
		ORDER BY count DESC, location ASC
		LIMIT ?`)

	var out []domain.LocationCount
	if err := r.db.SelectContext(ctx, &out, query, limit); err != nil {
		return nil, fmt.Errorf("top locations: %w", err)
	}
	return out, nil
}

// TopKeywords returns the most frequent matched keywords across all stored
// events, up to limit. The JSON keyword columns are aggregated in Go; the
// table is small enough that a full scan of one column is fine.
func (r *EventRepository) TopKeywords(ctx context.Context, limit int) ([]domain.KeywordCount, error) {
	var columns []string
	if err := r.db.SelectContext(ctx, &columns, `SELECT keywords_found FROM scraped_events`); err != nil {
		return nil, fmt.Errorf("load keyword columns: %w", err)
	}

	counts := make(map[string]int)
	for _, raw := range columns {
		var keywords []string
		if err := json.Unmarshal([]byte(raw), &keywords); err != nil {
			return nil, fmt.Errorf("decode keyword column: %w", err)
		}
		for _, kw := range keywords {
			counts[kw]++
		}
	}

	out := make([]domain.KeywordCount, 0, len(counts))
	for kw, n := range counts {
		out = append(out, domain.KeywordCount{Keyword: kw, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Keyword < out[j].Keyword
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Truncate removes every stored event. Used by the scrape command's --clear.
func (r *EventRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM scraped_events`); err != nil {
		return fmt.Errorf("truncate scraped_events: %w", err)
	}
	return nil
}

func startOfWeek(today time.Time) time.Time {
	// Monday-based week.
	offset := (int(today.Weekday()) + 6) % 7
	return today.AddDate(0, 0, -offset)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
