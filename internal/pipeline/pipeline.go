// Package pipeline runs one full scrape, publish, and backup cycle.
package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/metrics"
)

// ErrNoRecords classifies a run in which every fetcher in every category came
// back empty. This is the only condition that fails a run; a publish failure
// does not.
var ErrNoRecords = errors.New("no scholarship records aggregated")

// Aggregator produces the full record batch for one run.
type Aggregator interface {
	RunAll(ctx context.Context) []beasiswa.Scholarship
}

// Exporter writes local backups and reports how many formats succeeded.
type Exporter interface {
	WriteAll(records []beasiswa.Scholarship) int
}

// Pipeline wires the aggregator, the storage backend, and the backup writers.
type Pipeline struct {
	aggregator Aggregator
	store      beasiswa.Store
	exporter   Exporter
	logger     *zap.Logger
}

// New constructs a Pipeline.
func New(aggregator Aggregator, store beasiswa.Store, exporter Exporter, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		aggregator: aggregator,
		store:      store,
		exporter:   exporter,
		logger:     logger,
	}
}

// Run aggregates all categories, publishes the batch, and writes the local
// backups. It returns the record count, or ErrNoRecords when nothing was
// aggregated. The backup export always runs, whatever the publish outcome.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	records := p.aggregator.RunAll(ctx)
	if len(records) == 0 {
		return 0, ErrNoRecords
	}

	published := p.publish(ctx, records)
	written := p.exporter.WriteAll(records)

	p.logger.Info("pipeline run finished",
		zap.Int("records", len(records)),
		zap.Bool("published", published),
		zap.Int("backup_formats", written))
	return len(records), nil
}

// publish pushes the batch using replace-all-then-insert. The up-front clear
// is best-effort: the save itself carries the clear-first flag, which gives
// the replace a second chance at the remote side.
func (p *Pipeline) publish(ctx context.Context, records []beasiswa.Scholarship) bool {
	if err := p.store.ClearScholarships(ctx); err != nil {
		p.logger.Warn("clear before save failed, relying on clearFirst flag", zap.Error(err))
	}
	if err := p.store.SaveScholarships(ctx, records); err != nil {
		p.logger.Error("publish failed", zap.Error(err))
		metrics.IncPublishFailure()
		return false
	}
	return true
}
