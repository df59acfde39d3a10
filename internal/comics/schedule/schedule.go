// Copyright (c) 2026 ComicHub. All rights reserved.

/*
Package schedule manages per-comic release calendars.

A comic's schedule is a set of weekday entries. The release job reads these
rows once per day and publishes the next backlog page of every comic whose
calendar matches the current date. This package only maintains the rows; it
never publishes anything itself.
*/
package schedule

import (
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/comics/release"
)

// # Schedule Enums

// UpdateType distinguishes weekly entries from monthly week-pinned ones.
type UpdateType string

const (
	// UpdateWeekly fires every week on the entry's weekday.
	UpdateWeekly UpdateType = release.UpdateTypeWeekly
	// UpdateMonthly fires only when the week of the month matches UpdateWeek.
	UpdateMonthly UpdateType = "monthly"
)

// # Core Entities

// Entry is one release-calendar row for a comic.
//
// UpdateDay is an ISO weekday, Monday=1 through Sunday=7. UpdateWeek is the
// week of the month (1-5, counted from the 1st) and is nil for weekly entries.
type Entry struct {
	ComicID    int64      `json:"comic_id"`
	UpdateDay  int        `json:"update_day"`
	UpdateType UpdateType `json:"update_type"`
	UpdateWeek *int       `json:"update_week,omitempty"`
}

// # Field Identifiers

const (
	FieldUpdateDay  = "update_day"
	FieldUpdateDays = "update_days"
	FieldUpdateType = "update_type"
	FieldUpdateWeek = "update_week"
)
