// Copyright (c) 2026 ComicHub. All rights reserved.

package schema

// ComicsPageTable represents the 'comics.page' table
type ComicsPageTable struct {
	Table      string
	ID         string
	ComicID    string
	ChapterID  string
	PageNumber string
	AltText    string
	FileKey    string
	Published  string
}

// ComicsPage is the schema definition for comics.page.
//
// ChapterID is nullable: comics organized as bare "pages" attach pages
// directly to the comic with no chapter grouping.
var ComicsPage = ComicsPageTable{
	Table:      "comics.page",
	ID:         "pageid",
	ComicID:    "comicid",
	ChapterID:  "chapterid",
	PageNumber: "pagenumber",
	AltText:    "alttext",
	FileKey:    "filekey",
	Published:  "published",
}
