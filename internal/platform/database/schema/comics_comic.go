// Copyright (c) 2026 ComicHub. All rights reserved.

package schema

// ComicsComicTable represents the 'comics.comic' table
type ComicsComicTable struct {
	Table        string
	ID           string
	AccountID    string
	Title        string
	ComicURL     string
	ThumbnailURL string
	Tagline      string
	Description  string
	Organization string
	Published    string
	CreatedAt    string
}

// ComicsComic is the schema definition for comics.comic
var ComicsComic = ComicsComicTable{
	Table:        "comics.comic",
	ID:           "comicid",
	AccountID:    "accountid",
	Title:        "title",
	ComicURL:     "comicurl",
	ThumbnailURL: "thumbnailurl",
	Tagline:      "tagline",
	Description:  "description",
	Organization: "organization",
	Published:    "published",
	CreatedAt:    "createdat",
}
