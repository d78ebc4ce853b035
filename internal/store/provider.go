// Package store selects and constructs the configured storage provider.
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/config"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/store/api"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/store/postgres"
)

// NewProvider instantiates the storage backend named by the configuration.
func NewProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) (beasiswa.Store, error) {
	switch cfg.Storage.Provider {
	case "api":
		logger.Info("using remote API storage provider", zap.String("base_url", cfg.API.BaseURL))
		return api.NewClient(cfg.API.BaseURL, cfg.APITimeout(), logger), nil
	case "postgres":
		logger.Info("using postgres storage provider")
		s, err := postgres.NewStore(ctx, postgres.Config{
			DSN:      cfg.Storage.Postgres.DSN,
			MaxConns: cfg.Storage.Postgres.MaxConns,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
		return s, nil
	case "noop":
		logger.Info("using no-op storage provider; scraped data will be discarded")
		return &NoOp{}, nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Storage.Provider)
	}
}

// NoOp discards everything. Useful for dry runs.
type NoOp struct{}

// ClearScholarships does nothing.
func (*NoOp) ClearScholarships(context.Context) error { return nil }

// SaveScholarships does nothing.
func (*NoOp) SaveScholarships(context.Context, []beasiswa.Scholarship) error { return nil }

// ListScholarships returns an empty payload in the remote API's shape.
func (*NoOp) ListScholarships(context.Context, string) ([]byte, error) {
	return []byte(`{"data":[]}`), nil
}

// CountScholarships reports zero.
func (*NoOp) CountScholarships(context.Context) (int, error) { return 0, nil }

// ClearLogs does nothing.
func (*NoOp) ClearLogs(context.Context) error { return nil }

// SaveLogs does nothing.
func (*NoOp) SaveLogs(context.Context, []beasiswa.LogEntry) error { return nil }

// Close does nothing.
func (*NoOp) Close() {}
