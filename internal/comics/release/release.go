// Copyright (c) 2026 ComicHub. All rights reserved.

/*
Package release implements the scheduled publication workflow.

Once per day the checker scans every comic with outstanding unpublished
content, matches it against the comic's release calendar, and publishes the
next due page. Publishing a page cascades upward: the page's chapter, that
chapter's volume, and the comic itself are each published if (and only if)
they are still unpublished.

# Frontier

For every (comic, chapter) group the "frontier" is the lowest-numbered
unpublished page — the unique next candidate for release. Published pages are
contiguous from page 1 within a group, so repeated runs on the same day are
no-ops: yesterday's frontier is already published and drops out of the query.

# Calendar conventions

  - UpdateDay is the ISO weekday: Monday=1 … Sunday=7 (see [Weekday]).
  - UpdateWeek is the week-of-month counted from the 1st:
    days 1-7 are week 1, days 8-14 week 2, and so on (see [WeekOfMonth]).
    It is only consulted when the schedule row's type is not weekly.

# Failure containment

Each frontier row is processed independently. A storage error while cascading
one comic is logged and the run continues with the next row; only a failure of
the frontier query itself aborts a run, and the next scheduled invocation
retries from scratch. Every mutation is an optimistic conditional update
(WHERE published = FALSE) so manual publishes through the content API and the
checker commute safely.
*/
package release

import (
	"context"
	"time"
)

// UpdateTypeWeekly marks a schedule row that matches every week.
// Any other update type restricts the row to its UpdateWeek of the month.
const UpdateTypeWeekly = "weekly"

// Frontier identifies the next unpublished page of one (comic, chapter) group.
//
// ChapterID is nil for comics organized as bare pages with no chapter layer.
type Frontier struct {
	ComicID    int64
	ChapterID  *int64
	PageNumber int
}

// ChapterPublishOutcome is the tagged result of a conditional chapter publish.
//
// Published is false when the chapter was already published and the update was
// a no-op; in that case VolumeID is nil and the volume must not be touched.
type ChapterPublishOutcome struct {
	Published bool
	VolumeID  *int64
}

// Store defines the persistence operations the release checker needs.
//
// Every Publish* method is conditional: it only flips rows whose published
// flag is currently false, making the whole cascade idempotent.
type Store interface {
	// FrontierPages returns, for each (comicID, chapterID) group with at
	// least one unpublished page, the minimum unpublished page number.
	FrontierPages(ctx context.Context) ([]Frontier, error)

	// ReleaseDueToday reports whether the comic has a schedule row for the
	// given weekday that is either weekly or pinned to the given week of
	// the month.
	ReleaseDueToday(ctx context.Context, comicID int64, weekday, weekOfMonth int) (bool, error)

	// PublishPage publishes the exact page identified by (comicID,
	// chapterID, pageNumber). A nil chapterID matches chapterless pages.
	PublishPage(ctx context.Context, comicID int64, chapterID *int64, pageNumber int) error

	// PublishChapter publishes the chapter if it is currently unpublished
	// and returns its parent volume ID on success.
	PublishChapter(ctx context.Context, chapterID int64) (ChapterPublishOutcome, error)

	// PublishVolume publishes the volume if it is currently unpublished.
	PublishVolume(ctx context.Context, volumeID int64) error

	// PublishComic publishes the comic if it is currently unpublished.
	PublishComic(ctx context.Context, comicID int64) error
}

// # Calendar Helpers

// Weekday returns the ISO weekday of t: Monday=1 … Sunday=7.
func Weekday(t time.Time) int {
	day := int(t.Weekday())
	if day == 0 {
		return 7
	}
	return day
}

// WeekOfMonth returns the 1-based week of the month of t, counted from the
// 1st: days 1-7 are week 1, days 8-14 week 2, up to week 5.
func WeekOfMonth(t time.Time) int {
	return (t.Day()-1)/7 + 1
}
