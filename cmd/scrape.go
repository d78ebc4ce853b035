package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/clock/system"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/export"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/pipeline"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/scraper"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/store"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Run one scraping pipeline cycle and exit",
	Long: `scrape aggregates every configured scholarship source, publishes the
batch to the storage backend, and writes the local backup files. The exit
code classifies the run for the scheduler.`,
	RunE: runScrape,
}

func runScrape(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	st, err := store.NewProvider(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init storage provider: %w", err)
	}
	defer st.Close()

	clk := system.Clock{}
	fetcher := scraper.NewFetcher(scraper.FetcherConfig{
		UserAgent: cfg.Scraper.UserAgent,
		Timeout:   cfg.ScrapeTimeout(),
	}, clk, logger)
	aggregator := scraper.NewAggregator(fetcher.BindAll(scraper.DefaultSources()), scraper.AggregatorConfig{
		RequestsPerSec: cfg.Scraper.RequestsPerSec,
		CategoryPause:  cfg.CategoryPause(),
	}, logger)

	exporter, err := export.New(cfg.Export.Dir, logger)
	if err != nil {
		return fmt.Errorf("init exporter: %w", err)
	}

	count, err := pipeline.New(aggregator, st, exporter, logger).Run(ctx)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoRecords) {
			logger.Error("run produced no records")
		}
		return err
	}

	logger.Info("pipeline run succeeded", zap.Int("records", count))
	fmt.Fprintf(cmd.OutOrStdout(), "Processed %d records\n", count)
	return nil
}
