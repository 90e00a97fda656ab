package cmd

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/islandbeat/eventradar/internal/config"
	"github.com/islandbeat/eventradar/internal/logger"
	"github.com/islandbeat/eventradar/internal/scraper"
	"github.com/islandbeat/eventradar/internal/source"
	"github.com/islandbeat/eventradar/internal/store"
)

// deps bundles the wired application pieces a command needs.
type deps struct {
	cfg     *config.Config
	log     logger.Logger
	db      *sqlx.DB
	repo    *store.EventRepository
	service *scraper.Service
}

// buildDeps loads configuration and wires the full pipeline: database,
// repository, message source, transformer, and scraper service.
func buildDeps(ctx context.Context) (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	repo := store.NewEventRepository(db)

	transformer := scraper.NewTransformer(scraper.TransformerOptions{
		Vocabulary:   cfg.Scraper.Keywords,
		WordBoundary: cfg.Scraper.WordBoundary,
		DateYears:    cfg.Scraper.DateTable(),
	})

	service, err := scraper.NewService(
		source.NewFixture(nil),
		repo,
		transformer,
		cfg.Scraper.Channels,
		cfg.Scraper.MessageLimit,
		log,
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("build scraper: %w", err)
	}

	return &deps{cfg: cfg, log: log, db: db, repo: repo, service: service}, nil
}

// close releases the dependencies in reverse construction order.
func (d *deps) close() {
	_ = d.log.Sync()
	_ = d.db.Close()
}
