package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/islandbeat/eventradar/internal/api"
	"github.com/islandbeat/eventradar/internal/logger"
)

const shutdownTimeout = 10 * time.Second

var httpdCmd = &cobra.Command{
	Use:   "httpd",
	Short: "Serve the event query API over HTTP",
	Long: `Httpd starts the HTTP server exposing stored events, statistics, a
scrape trigger, and health endpoints.`,
	RunE: runHTTPD,
}

func init() {
	rootCmd.AddCommand(httpdCmd)
}

func runHTTPD(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	handler := api.NewHandler(
		d.repo, d.service, d.db.DB,
		d.cfg.Service.Name, d.cfg.Service.Version,
		d.log, nil,
	)
	server := api.NewServer(d.cfg.Server, handler, d.cfg.Service.Debug, d.log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		d.log.Error("shutdown failed", logger.Error(err))
		return err
	}
	return <-errCh
}
