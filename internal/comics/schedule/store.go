// Copyright (c) 2026 ComicHub. All rights reserved.

package schedule

import "context"

// # Schedule Data Access

// Repository defines the data access contract for release calendars.
type Repository interface {

	/*
		ListByComic returns all calendar entries for a comic, ordered by
		weekday.

		Parameters:
		  - ctx: context.Context
		  - comicID: int64

		Returns:
		  - []*Entry: Calendar rows, empty when no schedule is set
		  - error: Retrieval failures
	*/
	ListByComic(ctx context.Context, comicID int64) ([]*Entry, error)

	/*
		ReplaceWeekly swaps a comic's whole calendar for one weekly entry per
		given weekday. Runs in a transaction so a failed write never leaves
		the comic half-scheduled.

		Parameters:
		  - ctx: context.Context
		  - comicID: int64
		  - updateDays: []int (ISO weekdays)

		Returns:
		  - error: Persistence failures
	*/
	ReplaceWeekly(ctx context.Context, comicID int64, updateDays []int) error

	/*
		Upsert inserts or updates a single calendar entry keyed on
		(comicID, updateDay).

		Parameters:
		  - ctx: context.Context
		  - entry: *Entry

		Returns:
		  - error: Persistence failures
	*/
	Upsert(ctx context.Context, entry *Entry) error
}
