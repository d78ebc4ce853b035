package scraper

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/metrics"
)

// AggregatorConfig controls pacing between fetches and categories.
type AggregatorConfig struct {
	// RequestsPerSec throttles individual source fetches. <= 0 disables.
	RequestsPerSec float64
	// CategoryPause is the mandatory wait between category runs. May be zero.
	CategoryPause time.Duration
}

// Aggregator runs the configured fetchers per category in a fixed order and
// concatenates their output.
type Aggregator struct {
	fetchers map[beasiswa.Category][]beasiswa.SourceFetcher
	limiter  *rate.Limiter
	pause    time.Duration
	logger   *zap.Logger
}

// NewAggregator groups fetchers by category, preserving registration order
// within each category.
func NewAggregator(fetchers []beasiswa.SourceFetcher, cfg AggregatorConfig, logger *zap.Logger) *Aggregator {
	grouped := make(map[beasiswa.Category][]beasiswa.SourceFetcher)
	for _, f := range fetchers {
		grouped[f.Category()] = append(grouped[f.Category()], f)
	}
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	return &Aggregator{
		fetchers: grouped,
		limiter:  rate.NewLimiter(limit, 1),
		pause:    cfg.CategoryPause,
		logger:   logger,
	}
}

// RunCategory runs every fetcher registered for the category in order. A
// failing fetcher contributes zero records; the rest of the category still
// runs.
func (a *Aggregator) RunCategory(ctx context.Context, category beasiswa.Category) []beasiswa.Scholarship {
	var records []beasiswa.Scholarship
	for _, fetcher := range a.fetchers[category] {
		if err := a.limiter.Wait(ctx); err != nil {
			return records
		}
		records = append(records, a.runFetcher(ctx, fetcher)...)
	}
	a.logger.Info("category scraped",
		zap.String("category", string(category)),
		zap.Int("records", len(records)))
	metrics.AddRecordsScraped(string(category), len(records))
	return records
}

// RunAll runs the four categories in their fixed order with the configured
// pause in between and returns the full concatenation.
func (a *Aggregator) RunAll(ctx context.Context) []beasiswa.Scholarship {
	var all []beasiswa.Scholarship
	categories := beasiswa.Categories()
	for i, category := range categories {
		all = append(all, a.RunCategory(ctx, category)...)
		if i < len(categories)-1 && a.pause > 0 {
			select {
			case <-time.After(a.pause):
			case <-ctx.Done():
				return all
			}
		}
	}
	a.logger.Info("aggregation finished", zap.Int("total", len(all)))
	return all
}

// runFetcher isolates one fetcher so its failure cannot abort the category.
func (a *Aggregator) runFetcher(ctx context.Context, fetcher beasiswa.SourceFetcher) (records []beasiswa.Scholarship) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("fetcher panicked",
				zap.String("category", string(fetcher.Category())),
				zap.Any("panic", r))
			records = nil
		}
	}()
	return fetcher.Fetch(ctx)
}
