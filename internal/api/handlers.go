package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/islandbeat/eventradar/internal/domain"
	"github.com/islandbeat/eventradar/internal/logger"
)

// EventStore is the slice of the record store the API reads from.
type EventStore interface {
	List(ctx context.Context, filter domain.EventFilter) ([]domain.StoredEvent, int, error)
	Stats(ctx context.Context, now time.Time) (*domain.EventStats, error)
	TopLocations(ctx context.Context, limit int) ([]domain.LocationCount, error)
	TopKeywords(ctx context.Context, limit int) ([]domain.KeywordCount, error)
}

// Scraper runs the scraping pipeline on demand.
type Scraper interface {
	Scrape(ctx context.Context, channels []string, limit int) []domain.ExtractedEvent
	Save(ctx context.Context, events []domain.ExtractedEvent) domain.SaveStats
}

// Pinger checks database liveness for the readiness probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const (
	topRankingSize   = 10
	readyPingTimeout = 2 * time.Second
)

// Handler handles HTTP requests for the event API.
type Handler struct {
	store   EventStore
	scraper Scraper
	db      Pinger
	service string
	version string
	log     logger.Logger
	now     func() time.Time
}

// NewHandler creates an API handler. The now function defaults to time.Now
// and exists so tests can pin the clock urgency is derived from.
func NewHandler(store EventStore, scraper Scraper, db Pinger, service, version string, log logger.Logger, now func() time.Time) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{
		store:   store,
		scraper: scraper,
		db:      db,
		service: service,
		version: version,
		log:     log,
		now:     now,
	}
}

// ListEvents handles GET /api/v1/events.
func (h *Handler) ListEvents(c *gin.Context) {
	filter, urgency, err := parseEventFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, total, err := h.store.List(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("failed to list events", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load events"})
		return
	}

	now := h.now()
	out := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		resp := toEventResponse(ev, now)
		// Urgency is relative to now, so it cannot be a SQL predicate; it
		// narrows the returned page instead, which can leave the page short
		// while Total still counts all query matches. See EventsListResponse.
		if urgency != "" && resp.Urgency != string(urgency) {
			continue
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, EventsListResponse{
		Events:  out,
		Total:   total,
		Page:    filter.Page,
		PerPage: filter.PerPage,
	})
}

// GetStats handles GET /api/v1/events/stats.
func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()
	now := h.now()

	stats, err := h.store.Stats(ctx, now)
	if err != nil {
		h.log.Error("failed to aggregate event stats", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	locations, err := h.store.TopLocations(ctx, topRankingSize)
	if err != nil {
		h.log.Error("failed to rank locations", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	keywords, err := h.store.TopKeywords(ctx, topRankingSize)
	if err != nil {
		h.log.Error("failed to rank keywords", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, StatsResponse{
		Stats:            stats,
		PopularLocations: locations,
		TrendingKeywords: keywords,
		GeneratedAt:      now,
	})
}

// TriggerScrape handles POST /api/v1/scrape.
func (h *Handler) TriggerScrape(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid scrape request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("scrape triggered over HTTP",
		logger.Strings("channels", req.Channels),
		logger.Int("limit", req.Limit),
		logger.Bool("dry_run", req.DryRun))

	events := h.scraper.Scrape(c.Request.Context(), req.Channels, req.Limit)

	resp := ScrapeResponse{Events: events, DryRun: req.DryRun}
	if !req.DryRun {
		stats := h.scraper.Save(c.Request.Context(), events)
		resp.Stats = &stats
	}

	c.JSON(http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.service,
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready. Ready means the record store answers.
func (h *Handler) ReadyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyPingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.log.Warn("readiness check failed", logger.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"checks": gin.H{"database": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{"database": "ok"},
	})
}

// parseEventFilter builds an EventFilter from list query parameters. The
// urgency filter is returned separately since it applies after the query.
func parseEventFilter(c *gin.Context) (domain.EventFilter, domain.Urgency, error) {
	var filter domain.EventFilter

	if t := c.Query("type"); t != "" {
		if !domain.ValidEventType(t) {
			return filter, "", newQueryError("type", t)
		}
		filter.EventType = domain.EventType(t)
	}
	filter.Channel = c.Query("channel")
	filter.Location = c.Query("location")

	if from := c.Query("date_from"); from != "" {
		d, err := time.Parse(dateLayout, from)
		if err != nil {
			return filter, "", newQueryError("date_from", from)
		}
		filter.DateFrom = &d
	}
	if to := c.Query("date_to"); to != "" {
		d, err := time.Parse(dateLayout, to)
		if err != nil {
			return filter, "", newQueryError("date_to", to)
		}
		filter.DateTo = &d
	}

	if kw := c.Query("keywords"); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				filter.Keywords = append(filter.Keywords, k)
			}
		}
	}

	var urgency domain.Urgency
	if u := c.Query("urgency"); u != "" {
		if !domain.ValidUrgency(u) {
			return filter, "", newQueryError("urgency", u)
		}
		urgency = domain.Urgency(u)
	}

	switch sortBy := c.Query("sort_by"); sortBy {
	case "", domain.SortByEventDate, domain.SortByDatePosted, domain.SortByCreatedAt:
		filter.SortBy = sortBy
	default:
		return filter, "", newQueryError("sort_by", sortBy)
	}
	switch dir := c.Query("sort_direction"); dir {
	case "", domain.SortAsc, domain.SortDesc:
		filter.SortDirection = dir
	default:
		return filter, "", newQueryError("sort_direction", dir)
	}

	var err error
	if filter.Page, err = intQuery(c, "page"); err != nil {
		return filter, "", err
	}
	if filter.PerPage, err = intQuery(c, "per_page"); err != nil {
		return filter, "", err
	}

	filter.Normalize()
	return filter, urgency, nil
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, newQueryError(name, raw)
	}
	return n, nil
}

type queryError struct {
	param, value string
}

func newQueryError(param, value string) error {
	return queryError{param: param, value: value}
}

func (e queryError) Error() string {
	return "invalid value " + strconv.Quote(e.value) + " for query parameter " + e.param
}
