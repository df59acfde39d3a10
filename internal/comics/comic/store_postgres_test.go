// Copyright (c) 2026 ComicHub. All rights reserved.

package comic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Chapterless pages of every comic share a NULL chapterid, so the gap-closing
// update must also filter on the comic or it renumbers neighbours' pages.
func TestShiftPagesQuery_ChapterlessScopedToComic(t *testing.T) {
	query := shiftPagesQuery(true)

	assert.Contains(t, query, "comicid = $1")
	assert.Contains(t, query, "chapterid IS NULL")
	assert.Contains(t, query, "pagenumber > $2")
}

func TestShiftPagesQuery_ChapteredScopedToChapter(t *testing.T) {
	query := shiftPagesQuery(false)

	assert.Contains(t, query, "chapterid = $1")
	assert.Contains(t, query, "pagenumber > $2")
	assert.NotContains(t, query, "IS NULL")
}
