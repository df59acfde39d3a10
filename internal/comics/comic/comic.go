// Copyright (c) 2026 ComicHub. All rights reserved.

/*
Package comic manages the webcomic catalogue: comics and their volume,
chapter, and page hierarchy.

# Core Responsibility

  - Catalogue: Defines the [Comic] entity and its presentation metadata.
  - Hierarchy: Manages [Volume], [Chapter], and [Page] sub-resources.
  - Structure: Supports three organization modes that shape the hierarchy a
    comic exposes to readers.

Publication state lives on every level of the hierarchy. Readers only see
published rows; owners and moderators see everything. The scheduled-release
job flips these flags over time, so this package never publishes pages
implicitly on insert.
*/
package comic

import "time"

// # Comic Enums

// Organization describes which hierarchy levels a comic uses.
type Organization string

const (
	// OrganizationVolumes nests chapters inside volumes.
	OrganizationVolumes Organization = "volumes"
	// OrganizationChapters groups pages directly under chapters.
	OrganizationChapters Organization = "chapters"
	// OrganizationPages is a flat strip of pages with no grouping.
	OrganizationPages Organization = "pages"
)

// # Core Entities

// Comic represents a single webcomic series owned by an account.
type Comic struct {
	ID           int64        `json:"comic_id"`
	AccountID    int64        `json:"account_id"`
	Title        string       `json:"title"`
	ComicURL     string       `json:"comic_url"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Tagline      string       `json:"tagline"`
	Description  string       `json:"description"`
	Organization Organization `json:"organization"`
	Published    bool         `json:"published"`
	CreatedAt    time.Time    `json:"created_at"`

	// Hydrated on detail views only.
	Volumes  []*Volume  `json:"volumes,omitempty"`
	Chapters []*Chapter `json:"chapters,omitempty"` // volumeless chapters
	Pages    []*Page    `json:"pages,omitempty"`    // chapterless pages
}

// Volume groups chapters within a comic using the volumes organization.
type Volume struct {
	ID           int64      `json:"volume_id"`
	ComicID      int64      `json:"comic_id"`
	Name         *string    `json:"name,omitempty"`
	VolumeNumber int        `json:"volume_number"`
	Published    bool       `json:"published"`
	Chapters     []*Chapter `json:"chapters,omitempty"`
}

// Chapter groups pages within a comic. VolumeID is nil for comics that do
// not use volumes.
type Chapter struct {
	ID            int64   `json:"chapter_id"`
	ComicID       int64   `json:"comic_id"`
	VolumeID      *int64  `json:"volume_id,omitempty"`
	Name          *string `json:"name,omitempty"`
	ChapterNumber int     `json:"chapter_number"`
	Published     bool    `json:"published"`
	Pages         []*Page `json:"pages,omitempty"`
}

// Page is a single comic image. ChapterID is nil for comics organized as a
// flat strip of pages.
type Page struct {
	ID         int64   `json:"page_id"`
	ComicID    int64   `json:"comic_id"`
	ChapterID  *int64  `json:"chapter_id,omitempty"`
	PageNumber int     `json:"page_number"`
	AltText    *string `json:"alt_text,omitempty"`
	FileKey    string  `json:"file_key"`
	Published  bool    `json:"published"`
}

// # Field Identifiers

const (
	FieldTitle        = "title"
	FieldComicURL     = "comic_url"
	FieldTagline      = "tagline"
	FieldDescription  = "description"
	FieldOrganization = "organization"
	FieldThumbnail    = "file_key"
	FieldPageNumber   = "page_number"
	FieldVolumeNumber = "volume_number"
	FieldChapterNum   = "chapter_number"
)
