// Copyright (c) 2026 ComicHub. All rights reserved.

package schema

// ComicsScheduleTable represents the 'comics.schedule' table
type ComicsScheduleTable struct {
	Table      string
	ComicID    string
	UpdateDay  string
	UpdateType string
	UpdateWeek string
}

// ComicsSchedule is the schema definition for comics.schedule.
//
// One row per (comic, weekday) the comic releases on. UpdateWeek is only
// consulted when UpdateType is not 'weekly'.
var ComicsSchedule = ComicsScheduleTable{
	Table:      "comics.schedule",
	ComicID:    "comicid",
	UpdateDay:  "updateday",
	UpdateType: "updatetype",
	UpdateWeek: "updateweek",
}
