package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var scrapeFlags struct {
	channels []string
	limit    int
	dryRun   bool
	clear    bool
	stats    bool
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape channels for events and store them",
	Long: `Scrape fetches recent messages from the configured channels, extracts
structured event records from the relevant ones, and saves them with
duplicate detection. With --dry-run the extracted events are printed
instead of saved.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringSliceVar(&scrapeFlags.channels, "channel", nil,
		"channel to scrape (repeatable; default: configured channels)")
	scrapeCmd.Flags().IntVar(&scrapeFlags.limit, "limit", 0,
		"max messages per channel (default: configured limit)")
	scrapeCmd.Flags().BoolVar(&scrapeFlags.dryRun, "dry-run", false,
		"extract events without saving them")
	scrapeCmd.Flags().BoolVar(&scrapeFlags.clear, "clear", false,
		"delete all stored events before scraping")
	scrapeCmd.Flags().BoolVar(&scrapeFlags.stats, "stats", false,
		"print store statistics after the run")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	d, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	if scrapeFlags.clear {
		if err := d.repo.Truncate(ctx); err != nil {
			return fmt.Errorf("clear stored events: %w", err)
		}
		fmt.Println("cleared stored events")
	}

	events := d.service.Scrape(ctx, scrapeFlags.channels, scrapeFlags.limit)

	if scrapeFlags.dryRun {
		fmt.Printf("dry run: %d events extracted\n", len(events))
		return printJSON(events)
	}

	stats := d.service.Save(ctx, events)
	fmt.Printf("processed %d, saved %d, skipped %d, errors %d\n",
		stats.TotalProcessed, stats.Saved, stats.Skipped, stats.Errors)

	if scrapeFlags.stats {
		storeStats, err := d.repo.Stats(ctx, time.Now())
		if err != nil {
			return fmt.Errorf("load store stats: %w", err)
		}
		return printJSON(storeStats)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
