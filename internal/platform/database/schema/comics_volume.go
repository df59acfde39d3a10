// Copyright (c) 2026 ComicHub. All rights reserved.

package schema

// ComicsVolumeTable represents the 'comics.volume' table
type ComicsVolumeTable struct {
	Table        string
	ID           string
	ComicID      string
	Name         string
	VolumeNumber string
	Published    string
}

// ComicsVolume is the schema definition for comics.volume
var ComicsVolume = ComicsVolumeTable{
	Table:        "comics.volume",
	ID:           "volumeid",
	ComicID:      "comicid",
	Name:         "name",
	VolumeNumber: "volumenumber",
	Published:    "published",
}
