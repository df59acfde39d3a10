// Copyright (c) 2026 ComicHub. All rights reserved.

package release

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Scheduler fires the release checker once per day at a configured local time.
//
// It replaces the implicit global cron registration of earlier iterations with
// an explicit object constructed once at process start, with its clock and
// checker injected, so the firing logic is testable with a fixed "now".
//
// # Overlap
//
// A run is expected to finish long before the next day's firing. Runs are
// executed inline in the scheduler goroutine, so two runs never overlap
// within one process.
type Scheduler struct {
	checker *Checker
	now     func() time.Time
	hour    int
	minute  int
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewScheduler constructs a daily Scheduler firing at hour:minute local time.
//
// A nil clock defaults to [time.Now].
func NewScheduler(checker *Checker, clock func() time.Time, hour, minute int, logger *slog.Logger) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	return &Scheduler{
		checker: checker,
		now:     clock,
		hour:    hour,
		minute:  minute,
		logger:  logger.With(slog.String("component", "release-scheduler")),
	}
}

// Start launches the scheduler loop in its own goroutine.
func (scheduler *Scheduler) Start(ctx context.Context) error {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if scheduler.running {
		return fmt.Errorf("release: scheduler already running")
	}
	scheduler.running = true
	scheduler.stopCh = make(chan struct{})
	scheduler.doneCh = make(chan struct{})

	scheduler.logger.Info("release_scheduler_started",
		slog.Int("hour", scheduler.hour),
		slog.Int("minute", scheduler.minute),
	)

	go scheduler.loop(ctx)
	return nil
}

// Stop signals the loop to exit and waits for it to finish.
func (scheduler *Scheduler) Stop() error {
	scheduler.mu.Lock()
	if !scheduler.running {
		scheduler.mu.Unlock()
		return nil
	}
	scheduler.running = false
	close(scheduler.stopCh)
	doneCh := scheduler.doneCh
	scheduler.mu.Unlock()

	<-doneCh
	scheduler.logger.Info("release_scheduler_stopped")
	return nil
}

// loop sleeps until the next firing time, runs the checker, and repeats.
func (scheduler *Scheduler) loop(ctx context.Context) {
	defer close(scheduler.doneCh)

	for {
		next := nextFireTime(scheduler.now(), scheduler.hour, scheduler.minute)
		timer := time.NewTimer(next.Sub(scheduler.now()))

		select {
		case <-timer.C:
			if err := scheduler.checker.Run(ctx); err != nil {
				// A failed run is retried at the next scheduled firing;
				// there is no caller to report to.
				scheduler.logger.Error("release_run_failed", slog.Any("error", err))
			}
		case <-scheduler.stopCh:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}

// nextFireTime returns the next occurrence of hour:minute strictly after now.
func nextFireTime(now time.Time, hour, minute int) time.Time {
	fire := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !fire.After(now) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}
