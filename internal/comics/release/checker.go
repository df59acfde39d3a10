// Copyright (c) 2026 ComicHub. All rights reserved.

package release

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Checker performs one release pass over all comics.
//
// It is deliberately stateless between runs: every pass recomputes the
// frontier from storage, so a partially applied cascade from a failed run is
// repaired by the next one.
type Checker struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger
}

// NewChecker constructs a Checker.
//
// The clock is injected so tests can pin "today" to a fixed date. A nil clock
// defaults to [time.Now].
func NewChecker(store Store, clock func() time.Time, logger *slog.Logger) *Checker {
	if clock == nil {
		clock = time.Now
	}
	return &Checker{
		store:  store,
		now:    clock,
		logger: logger.With(slog.String("component", "release-checker")),
	}
}

// Run executes one full release pass.
//
// It returns an error only when the frontier query itself fails; per-comic
// cascade errors are logged and skipped so one broken comic cannot block the
// rest of the day's releases.
func (checker *Checker) Run(ctx context.Context) error {
	today := checker.now()
	weekday := Weekday(today)
	week := WeekOfMonth(today)

	checker.logger.Info("release_check_started",
		slog.String("date", today.Format("2006-01-02")),
		slog.Int("weekday", weekday),
		slog.Int("week_of_month", week),
	)

	frontiers, err := checker.store.FrontierPages(ctx)
	if err != nil {
		return fmt.Errorf("release: frontier query failed: %w", err)
	}

	released := 0
	failed := 0
	for _, frontier := range frontiers {
		published, err := checker.releaseOne(ctx, frontier, weekday, week)
		if err != nil {
			failed++
			checker.logger.Error("release_cascade_failed",
				slog.Int64("comic_id", frontier.ComicID),
				slog.Int("page_number", frontier.PageNumber),
				slog.Any("error", err),
			)
			continue
		}
		if published {
			released++
		}
	}

	checker.logger.Info("release_check_completed",
		slog.Int("candidates", len(frontiers)),
		slog.Int("released", released),
		slog.Int("failed", failed),
	)
	return nil
}

// releaseOne publishes a single frontier page and cascades the publish flag
// upward. It reports whether the page was due (and therefore published).
//
// The cascade order is fixed: page, then chapter, then volume, then comic.
// Later steps depend on earlier results, so the steps of one comic are always
// sequential even if callers process different comics concurrently.
func (checker *Checker) releaseOne(ctx context.Context, frontier Frontier, weekday, week int) (bool, error) {
	due, err := checker.store.ReleaseDueToday(ctx, frontier.ComicID, weekday, week)
	if err != nil {
		return false, fmt.Errorf("schedule lookup: %w", err)
	}
	if !due {
		// Not a release day for this comic; leave it untouched.
		return false, nil
	}

	if err := checker.store.PublishPage(ctx, frontier.ComicID, frontier.ChapterID, frontier.PageNumber); err != nil {
		return false, fmt.Errorf("publish page: %w", err)
	}

	if frontier.ChapterID != nil {
		outcome, err := checker.store.PublishChapter(ctx, *frontier.ChapterID)
		if err != nil {
			return false, fmt.Errorf("publish chapter %d: %w", *frontier.ChapterID, err)
		}

		// Only a chapter that was just published can pull its volume along;
		// an already-published chapter means the volume was handled before.
		if outcome.Published && outcome.VolumeID != nil {
			if err := checker.store.PublishVolume(ctx, *outcome.VolumeID); err != nil {
				return false, fmt.Errorf("publish volume %d: %w", *outcome.VolumeID, err)
			}
		}
	}

	// The comic is always attempted, independent of the chapter branch.
	if err := checker.store.PublishComic(ctx, frontier.ComicID); err != nil {
		return false, fmt.Errorf("publish comic: %w", err)
	}

	return true, nil
}
