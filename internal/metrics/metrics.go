// Package metrics exposes Prometheus collectors for the scheduler service.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal            *prometheus.CounterVec
	recordsScrapedTotal  *prometheus.CounterVec
	runDurationSeconds   prometheus.Histogram
	publishFailuresTotal prometheus.Counter

	once sync.Once
)

// Init initializes the Prometheus collectors. It is safe to call multiple
// times; helpers call it themselves so callers never observe nil collectors.
func Init() {
	once.Do(func() {
		runsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beasiswa_runs_total",
				Help: "Pipeline runs by final status.",
			},
			[]string{"status"},
		)
		recordsScrapedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beasiswa_records_scraped_total",
				Help: "Scholarship records aggregated, by category.",
			},
			[]string{"category"},
		)
		runDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "beasiswa_run_duration_seconds",
				Help:    "Wall-clock duration of pipeline runs.",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		)
		publishFailuresTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "beasiswa_publish_failures_total",
				Help: "Failed attempts to publish a batch to remote storage.",
			},
		)
	})
}

// IncRun counts one finished run with the given status ("success"/"failure").
func IncRun(status string) {
	Init()
	runsTotal.WithLabelValues(status).Inc()
}

// AddRecordsScraped counts aggregated records for a category.
func AddRecordsScraped(category string, n int) {
	Init()
	recordsScrapedTotal.WithLabelValues(category).Add(float64(n))
}

// ObserveRunDuration records the wall-clock duration of one run.
func ObserveRunDuration(d time.Duration) {
	Init()
	runDurationSeconds.Observe(d.Seconds())
}

// IncPublishFailure counts one failed publish to remote storage.
func IncPublishFailure() {
	Init()
	publishFailuresTotal.Inc()
}
