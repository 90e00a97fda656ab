package cmd

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/islandbeat/eventradar/internal/logger"
)

// defaultCronSpec runs a scrape at the top of every hour.
const defaultCronSpec = "0 * * * *"

var scheduleFlags struct {
	cronSpec string
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run scrapes on a cron schedule",
	Long: `Schedule runs the scrape pipeline repeatedly on a cron schedule until
interrupted. Each run fetches, extracts, and saves events exactly like a
single scrape invocation.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleFlags.cronSpec, "cron", defaultCronSpec,
		"cron expression for scrape runs")

	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	c := cron.New()
	_, err = c.AddFunc(scheduleFlags.cronSpec, func() {
		runCtx := context.WithoutCancel(ctx)
		events := d.service.Scrape(runCtx, nil, 0)
		stats := d.service.Save(runCtx, events)
		d.log.Info("scheduled scrape finished",
			logger.Int("total_processed", stats.TotalProcessed),
			logger.Int("saved", stats.Saved),
			logger.Int("skipped", stats.Skipped),
			logger.Int("errors", stats.Errors))
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", scheduleFlags.cronSpec, err)
	}

	d.log.Info("scheduler starting", logger.String("cron", scheduleFlags.cronSpec))
	c.Start()

	<-ctx.Done()

	// Let an in-flight run finish before exiting.
	stopCtx := c.Stop()
	<-stopCtx.Done()

	d.log.Info("scheduler stopped")
	return nil
}
