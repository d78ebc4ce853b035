package beasiswa

import (
	"context"
	"time"
)

// SourceFetcher produces zero or more records for one scholarship source.
// Implementations never return an error for fetch failures; they degrade to
// fallback records or an empty slice instead.
type SourceFetcher interface {
	Fetch(ctx context.Context) []Scholarship
	Category() Category
}

// Store persists scholarship batches and run logs.
type Store interface {
	// ClearScholarships deletes all stored records. Idempotent.
	ClearScholarships(ctx context.Context) error
	// SaveScholarships replaces the stored set with the given batch
	// (replace-all-then-insert).
	SaveScholarships(ctx context.Context, list []Scholarship) error
	// ListScholarships returns the raw JSON payload for the given category
	// filter ("" for all), suitable for proxying to HTTP callers.
	ListScholarships(ctx context.Context, category string) ([]byte, error)
	// CountScholarships reports how many records are currently stored.
	CountScholarships(ctx context.Context) (int, error)
	ClearLogs(ctx context.Context) error
	SaveLogs(ctx context.Context, entries []LogEntry) error
	Close()
}

// Notifier sends a fire-and-forget completion message. Implementations must
// never return an error for delivery failures; missing credentials are a no-op.
type Notifier interface {
	NotifyRunFinished(ctx context.Context, summary RunSummary)
}

// Runner executes one pipeline run as an isolated unit of work and returns its
// combined output. A non-nil error classifies the run as failed.
type Runner interface {
	Run(ctx context.Context) (output []byte, err error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
