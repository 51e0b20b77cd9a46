package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	todayDomain "github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/felixgeelhaar/dayquest/pkg/observability"
)

// WorkerStats is reported on the worker's health endpoint.
type WorkerStats struct {
	Running       bool      `json:"running"`
	Ticks         int64     `json:"ticks"`
	LastTickAt    time.Time `json:"last_tick_at"`
	ReadyDate     string    `json:"ready_date"`
	RemindersSent int64     `json:"reminders_sent"`
	LastError     string    `json:"last_error,omitempty"`
	LastErrorAt   time.Time `json:"last_error_at"`
}

// Worker keeps the current day materialized and dispatches due reminders.
type Worker struct {
	c      *Container
	logger *slog.Logger

	mu        sync.Mutex
	since     time.Time
	readyDate todayDomain.DateKey
	stats     WorkerStats
}

// NewWorker creates a worker whose first dispatch window starts at start.
func NewWorker(c *Container, start time.Time) *Worker {
	return &Worker{
		c:      c,
		logger: observability.LogOperation(c.Logger, "worker"),
		since:  start,
	}
}

// Tick refreshes the day when the calendar date changed since the last tick
// and publishes reminders that fell due since then.
func (w *Worker) Tick(ctx context.Context, now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx = observability.NewRequestContext(ctx, "")
	w.stats.Ticks++
	w.stats.LastTickAt = now

	date := todayDomain.DateKeyOf(now.In(w.c.Location))
	if date != w.readyDate {
		result, err := w.c.Refresher.EnsureTodayReady(ctx, date, now)
		if err != nil {
			w.fail(ctx, now, "refresh failed", err)
		} else {
			w.readyDate = date
			w.stats.ReadyDate = date.String()
			w.logger.InfoContext(ctx, "day ready", "date", date, "generated", result.Generated)
		}
	}

	sent, err := w.c.ReminderDispatcher.DispatchDue(ctx, w.since, now)
	if err != nil {
		w.fail(ctx, now, "reminder dispatch failed", err)
		return
	}
	w.stats.RemindersSent += int64(sent)
	w.c.Metrics.Counter("reminders_dispatched", int64(sent))
	w.since = now
}

func (w *Worker) fail(ctx context.Context, now time.Time, msg string, err error) {
	w.logger.ErrorContext(ctx, msg, "error", err)
	w.stats.LastError = err.Error()
	w.stats.LastErrorAt = now
	w.c.Metrics.Counter("worker_errors", 1)
}

// Run ticks immediately and then every interval until ctx is canceled.
func (w *Worker) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	w.setRunning(true)
	defer w.setRunning(false)

	w.Tick(ctx, w.c.Now())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Tick(ctx, w.c.Now())
		}
	}
}

func (w *Worker) setRunning(running bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.Running = running
}

// Stats returns a copy of the current counters.
func (w *Worker) Stats() WorkerStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}
