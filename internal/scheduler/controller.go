// Package scheduler implements the run controller: the scheduler state
// machine, single-flight pipeline execution, and the daily fire loop.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/beasiswa"
	"github.com/scrapingbeasiswa/beasiswa-scheduler/internal/metrics"
)

// ErrAlreadyUpdating rejects an execute request while a run is in flight.
var ErrAlreadyUpdating = errors.New("scraping already in progress")

// Config controls run scheduling.
type Config struct {
	// FireHour is the UTC hour of the daily run.
	FireHour int
	// MaxAttempts bounds the retry loop inside one run.
	MaxAttempts int
	// TickInterval is how often the fire loop checks for a due run.
	TickInterval time.Duration
}

// Controller owns the scheduler state. All mutation happens here; other
// components only receive snapshots.
//
// enabled backs both isRunning and isEnabled in the external payloads: the
// two keys have always carried the same value and consumers read both.
type Controller struct {
	mu         sync.Mutex
	enabled    bool
	updating   bool
	lastUpdate *time.Time
	nextUpdate *time.Time
	logs       []beasiswa.LogEntry

	store    beasiswa.Store
	notifier beasiswa.Notifier
	runner   beasiswa.Runner
	clock    beasiswa.Clock
	cfg      Config
	logger   *zap.Logger

	running sync.WaitGroup
}

// New constructs a Controller.
func New(
	store beasiswa.Store,
	notifier beasiswa.Notifier,
	runner beasiswa.Runner,
	clock beasiswa.Clock,
	cfg Config,
	logger *zap.Logger,
) *Controller {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 30 * time.Second
	}
	return &Controller{
		store:    store,
		notifier: notifier,
		runner:   runner,
		clock:    clock,
		cfg:      cfg,
		logger:   logger,
	}
}

// NextRun computes the next daily fire time: today at fireHour UTC, or
// tomorrow when the current hour has already reached it.
func NextRun(now time.Time, fireHour int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), fireHour, 0, 0, 0, time.UTC)
	if now.Hour() >= fireHour {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start arms the scheduler and computes the next fire time. Calling it while
// already armed is a no-op; the second return reports whether anything changed.
func (c *Controller) Start() (beasiswa.Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled {
		return c.statusLocked(), false
	}
	c.enabled = true
	next := NextRun(c.clock.Now(), c.cfg.FireHour)
	c.nextUpdate = &next
	c.logger.Info("scheduler started", zap.Time("next_update", next))
	return c.statusLocked(), true
}

// Stop disarms the scheduler. An in-flight run is not interrupted.
func (c *Controller) Stop() beasiswa.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = false
	c.nextUpdate = nil
	c.logger.Info("scheduler stopped")
	return c.statusLocked()
}

// Reset force-clears all bookkeeping, including a stuck updating flag. It
// does not terminate a pipeline subprocess that is actually running.
func (c *Controller) Reset() beasiswa.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updating = false
	c.enabled = false
	c.lastUpdate = nil
	c.nextUpdate = nil
	c.logger.Warn("scheduler state reset")
	return c.statusLocked()
}

// Status returns a read-only snapshot of the run state.
func (c *Controller) Status() beasiswa.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

func (c *Controller) statusLocked() beasiswa.Status {
	return beasiswa.Status{
		IsRunning:  c.enabled,
		IsEnabled:  c.enabled,
		LastUpdate: c.lastUpdate,
		NextUpdate: c.nextUpdate,
		IsUpdating: c.updating,
	}
}

// LogMessages returns the current run's log messages in append order.
func (c *Controller) LogMessages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	messages := make([]string, 0, len(c.logs))
	for _, entry := range c.logs {
		messages = append(messages, entry.Message)
	}
	return messages
}

// TryExecute starts one pipeline run in the background. It flips the
// single-flight flag before returning, so among any number of overlapping
// calls exactly one proceeds and the rest get ErrAlreadyUpdating with no
// state change.
func (c *Controller) TryExecute() error {
	c.mu.Lock()
	if c.updating {
		c.mu.Unlock()
		return ErrAlreadyUpdating
	}
	c.updating = true
	c.logs = nil
	c.mu.Unlock()

	c.running.Add(1)
	go func() {
		defer c.running.Done()
		c.run()
	}()
	return nil
}

// Run drives the daily fire loop until the context finishes. A due tick
// triggers the same single-flight path as a manual execute, so the loop can
// never start a second concurrent run.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.due() {
				if err := c.TryExecute(); err != nil && !errors.Is(err, ErrAlreadyUpdating) {
					c.logger.Error("scheduled execution failed to start", zap.Error(err))
				}
			}
		}
	}
}

func (c *Controller) due() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled && c.nextUpdate != nil && !c.clock.Now().Before(*c.nextUpdate)
}

// run supervises one pipeline run end to end. Whatever happens inside the
// runner, the updating flag is released and exactly one notification goes out.
func (c *Controller) run() {
	// The run outlives the HTTP request that triggered it and is not
	// cancellable mid-flight.
	ctx := context.Background()
	start := c.clock.Now()

	if err := c.store.ClearLogs(ctx); err != nil {
		c.logger.Warn("failed to clear previous logs", zap.Error(err))
	}
	first := c.appendLog(beasiswa.LogLevelInfo, "[START] Memulai proses scraping...")
	if err := c.store.SaveLogs(ctx, []beasiswa.LogEntry{first}); err != nil {
		c.logger.Warn("failed to save initial log", zap.Error(err))
	}

	output, runErr := c.attempt(ctx)
	attempts := runErr.attempts
	if len(output) > 0 {
		c.logger.Info("scraper output", zap.ByteString("output", output))
	}

	finished := c.clock.Now()
	duration := finished.Sub(start)
	summary := beasiswa.RunSummary{
		FinishedAt:   finished,
		TotalRecords: "N/A",
		Duration:     duration,
		Attempts:     attempts,
	}

	if runErr.err == nil {
		c.appendLog(beasiswa.LogLevelSuccess, "[SUCCESS] Scraping selesai dengan sukses")
		summary.Succeeded = true
		if count, err := c.store.CountScholarships(ctx); err == nil {
			summary.TotalRecords = strconv.Itoa(count)
		} else {
			c.logger.Warn("failed to get beasiswa count", zap.Error(err))
		}
		metrics.IncRun("success")
		c.logger.Info("scraping completed", zap.Duration("duration", duration))
	} else {
		message := fmt.Sprintf("[ERROR] Scraping gagal: %v", runErr.err)
		c.appendLog(beasiswa.LogLevelError, message)
		summary.ErrorMessage = runErr.err.Error()
		metrics.IncRun("failure")
		c.logger.Error("scraping failed",
			zap.Int("attempts", attempts),
			zap.Error(runErr.err))
	}
	metrics.ObserveRunDuration(duration)

	c.mu.Lock()
	c.updating = false
	c.lastUpdate = &finished
	next := NextRun(finished, c.cfg.FireHour)
	c.nextUpdate = &next
	entries := make([]beasiswa.LogEntry, len(c.logs))
	copy(entries, c.logs)
	c.mu.Unlock()

	if err := c.store.SaveLogs(ctx, entries); err != nil {
		c.logger.Warn("failed to save run logs", zap.Error(err))
	}
	c.notifier.NotifyRunFinished(ctx, summary)
}

func (c *Controller) appendLog(level beasiswa.LogLevel, message string) beasiswa.LogEntry {
	entry := beasiswa.LogEntry{
		Timestamp: c.clock.Now(),
		Message:   message,
		Level:     level,
	}
	c.mu.Lock()
	c.logs = append(c.logs, entry)
	c.mu.Unlock()
	return entry
}

type attemptResult struct {
	err      error
	attempts int
}

// attempt runs the pipeline up to MaxAttempts times, stopping at the first
// success. A panic inside the runner counts as a failed attempt.
func (c *Controller) attempt(ctx context.Context) ([]byte, attemptResult) {
	var (
		output []byte
		err    error
	)
	attempts := 0
	for attempts < c.cfg.MaxAttempts {
		attempts++
		output, err = c.runOnce(ctx)
		if err == nil {
			break
		}
		c.logger.Warn("pipeline attempt failed",
			zap.Int("attempt", attempts),
			zap.Error(err))
	}
	return output, attemptResult{err: err, attempts: attempts}
}

func (c *Controller) runOnce(ctx context.Context) (output []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panicked: %v", r)
		}
	}()
	return c.runner.Run(ctx)
}
