// Copyright (c) 2026 ComicHub. All rights reserved.

package schema

// ComicsChapterTable represents the 'comics.chapter' table
type ComicsChapterTable struct {
	Table         string
	ID            string
	ComicID       string
	VolumeID      string
	Name          string
	ChapterNumber string
	Published     string
}

// ComicsChapter is the schema definition for comics.chapter
var ComicsChapter = ComicsChapterTable{
	Table:         "comics.chapter",
	ID:            "chapterid",
	ComicID:       "comicid",
	VolumeID:      "volumeid",
	Name:          "name",
	ChapterNumber: "chapternumber",
	Published:     "published",
}
