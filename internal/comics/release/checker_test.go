// Copyright (c) 2026 ComicHub. All rights reserved.

package release

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock is a Tuesday in the first week of the month.
func fixedClock() time.Time {
	return time.Date(2026, time.September, 1, 0, 1, 0, 0, time.UTC)
}

type publishedPage struct {
	comicID    int64
	chapterID  *int64
	pageNumber int
}

type fakeStore struct {
	frontiers   []Frontier
	frontierErr error

	due    map[int64]bool
	dueErr map[int64]error

	chapterOutcomes map[int64]ChapterPublishOutcome
	chapterErr      error

	pages    []publishedPage
	chapters []int64
	volumes  []int64
	comics   []int64

	gotWeekday int
	gotWeek    int
}

func (f *fakeStore) FrontierPages(ctx context.Context) ([]Frontier, error) {
	if f.frontierErr != nil {
		return nil, f.frontierErr
	}
	return f.frontiers, nil
}

func (f *fakeStore) ReleaseDueToday(ctx context.Context, comicID int64, weekday, weekOfMonth int) (bool, error) {
	f.gotWeekday = weekday
	f.gotWeek = weekOfMonth
	if err := f.dueErr[comicID]; err != nil {
		return false, err
	}
	return f.due[comicID], nil
}

func (f *fakeStore) PublishPage(ctx context.Context, comicID int64, chapterID *int64, pageNumber int) error {
	f.pages = append(f.pages, publishedPage{comicID: comicID, chapterID: chapterID, pageNumber: pageNumber})
	return nil
}

func (f *fakeStore) PublishChapter(ctx context.Context, chapterID int64) (ChapterPublishOutcome, error) {
	if f.chapterErr != nil {
		return ChapterPublishOutcome{}, f.chapterErr
	}
	f.chapters = append(f.chapters, chapterID)
	outcome, ok := f.chapterOutcomes[chapterID]
	if !ok {
		return ChapterPublishOutcome{Published: true}, nil
	}
	return outcome, nil
}

func (f *fakeStore) PublishVolume(ctx context.Context, volumeID int64) error {
	f.volumes = append(f.volumes, volumeID)
	return nil
}

func (f *fakeStore) PublishComic(ctx context.Context, comicID int64) error {
	f.comics = append(f.comics, comicID)
	return nil
}

func ptr(v int64) *int64 { return &v }

func newTestChecker(store Store) *Checker {
	return NewChecker(store, fixedClock, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCheckerRun_FrontierFailureAborts(t *testing.T) {
	store := &fakeStore{frontierErr: errors.New("connection refused")}

	err := newTestChecker(store).Run(context.Background())

	require.Error(t, err)
	assert.Empty(t, store.pages)
	assert.Empty(t, store.comics)
}

func TestCheckerRun_SkipsComicsNotDueToday(t *testing.T) {
	store := &fakeStore{
		frontiers: []Frontier{{ComicID: 1, ChapterID: ptr(10), PageNumber: 3}},
		due:       map[int64]bool{1: false},
	}

	err := newTestChecker(store).Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, store.pages)
	assert.Empty(t, store.chapters)
	assert.Empty(t, store.volumes)
	assert.Empty(t, store.comics)
}

func TestCheckerRun_PassesCalendarCoordinates(t *testing.T) {
	store := &fakeStore{
		frontiers: []Frontier{{ComicID: 1, PageNumber: 1}},
		due:       map[int64]bool{1: false},
	}

	err := newTestChecker(store).Run(context.Background())

	require.NoError(t, err)
	// 2026-09-01 is a Tuesday in the first week of September.
	assert.Equal(t, 2, store.gotWeekday)
	assert.Equal(t, 1, store.gotWeek)
}

func TestCheckerRun_CascadesThroughChapterAndVolume(t *testing.T) {
	store := &fakeStore{
		frontiers: []Frontier{{ComicID: 1, ChapterID: ptr(10), PageNumber: 3}},
		due:       map[int64]bool{1: true},
		chapterOutcomes: map[int64]ChapterPublishOutcome{
			10: {Published: true, VolumeID: ptr(100)},
		},
	}

	err := newTestChecker(store).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, store.pages, 1)
	assert.Equal(t, publishedPage{comicID: 1, chapterID: ptr(10), pageNumber: 3}, store.pages[0])
	assert.Equal(t, []int64{10}, store.chapters)
	assert.Equal(t, []int64{100}, store.volumes)
	assert.Equal(t, []int64{1}, store.comics)
}

func TestCheckerRun_ChapterlessPageSkipsAncestorChain(t *testing.T) {
	store := &fakeStore{
		frontiers: []Frontier{{ComicID: 2, ChapterID: nil, PageNumber: 1}},
		due:       map[int64]bool{2: true},
	}

	err := newTestChecker(store).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, store.pages, 1)
	assert.Nil(t, store.pages[0].chapterID)
	assert.Empty(t, store.chapters)
	assert.Empty(t, store.volumes)
	assert.Equal(t, []int64{2}, store.comics)
}

func TestCheckerRun_AlreadyPublishedChapterLeavesVolumeAlone(t *testing.T) {
	store := &fakeStore{
		frontiers: []Frontier{{ComicID: 1, ChapterID: ptr(10), PageNumber: 7}},
		due:       map[int64]bool{1: true},
		chapterOutcomes: map[int64]ChapterPublishOutcome{
			10: {Published: false},
		},
	}

	err := newTestChecker(store).Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, store.pages, 1)
	assert.Empty(t, store.volumes)
	assert.Equal(t, []int64{1}, store.comics)
}

func TestCheckerRun_ChapterWithoutVolume(t *testing.T) {
	store := &fakeStore{
		frontiers: []Frontier{{ComicID: 1, ChapterID: ptr(11), PageNumber: 2}},
		due:       map[int64]bool{1: true},
		chapterOutcomes: map[int64]ChapterPublishOutcome{
			11: {Published: true, VolumeID: nil},
		},
	}

	err := newTestChecker(store).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int64{11}, store.chapters)
	assert.Empty(t, store.volumes)
	assert.Equal(t, []int64{1}, store.comics)
}

func TestCheckerRun_ReleasesOnePagePerChapterGroup(t *testing.T) {
	store := &fakeStore{
		frontiers: []Frontier{
			{ComicID: 1, ChapterID: ptr(10), PageNumber: 4},
			{ComicID: 1, ChapterID: ptr(11), PageNumber: 1},
			{ComicID: 3, ChapterID: ptr(30), PageNumber: 9},
		},
		due: map[int64]bool{1: true, 3: true},
		chapterOutcomes: map[int64]ChapterPublishOutcome{
			10: {Published: false},
			11: {Published: true, VolumeID: ptr(100)},
			30: {Published: true, VolumeID: ptr(300)},
		},
	}

	err := newTestChecker(store).Run(context.Background())

	require.NoError(t, err)
	assert.Len(t, store.pages, 3)
	assert.Equal(t, []int64{10, 11, 30}, store.chapters)
	assert.Equal(t, []int64{100, 300}, store.volumes)
	// The comic publish is attempted once per group; the extra attempts are
	// no-ops at the store level.
	assert.Equal(t, []int64{1, 1, 3}, store.comics)
}

func TestCheckerRun_MixedChapteredAndChapterlessComics(t *testing.T) {
	// Comic 1 has a chapter with pages 2 and 3 unpublished; comic 2 is
	// chapterless with all three pages unpublished. Both release today.
	store := &fakeStore{
		frontiers: []Frontier{
			{ComicID: 1, ChapterID: ptr(10), PageNumber: 2},
			{ComicID: 2, ChapterID: nil, PageNumber: 1},
		},
		due: map[int64]bool{1: true, 2: true},
		chapterOutcomes: map[int64]ChapterPublishOutcome{
			10: {Published: true, VolumeID: ptr(100)},
		},
	}

	err := newTestChecker(store).Run(context.Background())

	require.NoError(t, err)
	// Exactly one page per comic: 1/ch10/p2 and 2/-/p1.
	require.Len(t, store.pages, 2)
	assert.Equal(t, publishedPage{comicID: 1, chapterID: ptr(10), pageNumber: 2}, store.pages[0])
	assert.Equal(t, publishedPage{comicID: 2, chapterID: nil, pageNumber: 1}, store.pages[1])
	assert.Equal(t, []int64{10}, store.chapters)
	assert.Equal(t, []int64{100}, store.volumes)
	assert.Equal(t, []int64{1, 2}, store.comics)
}

func TestCheckerRun_PerComicFailureDoesNotAbortRun(t *testing.T) {
	store := &fakeStore{
		frontiers: []Frontier{
			{ComicID: 1, ChapterID: ptr(10), PageNumber: 1},
			{ComicID: 2, ChapterID: ptr(20), PageNumber: 5},
		},
		due:    map[int64]bool{2: true},
		dueErr: map[int64]error{1: errors.New("schedule lookup failed")},
		chapterOutcomes: map[int64]ChapterPublishOutcome{
			20: {Published: true, VolumeID: ptr(200)},
		},
	}

	err := newTestChecker(store).Run(context.Background())

	require.NoError(t, err)
	require.Len(t, store.pages, 1)
	assert.Equal(t, int64(2), store.pages[0].comicID)
	assert.Equal(t, []int64{2}, store.comics)
}

func TestCheckerRun_SecondRunWithEmptyFrontierIsNoop(t *testing.T) {
	store := &fakeStore{
		frontiers: []Frontier{{ComicID: 1, ChapterID: ptr(10), PageNumber: 1}},
		due:       map[int64]bool{1: true},
		chapterOutcomes: map[int64]ChapterPublishOutcome{
			10: {Published: true, VolumeID: ptr(100)},
		},
	}
	checker := newTestChecker(store)

	require.NoError(t, checker.Run(context.Background()))
	require.Len(t, store.pages, 1)

	// Once the frontier is drained a rerun on the same day publishes nothing.
	store.frontiers = nil
	require.NoError(t, checker.Run(context.Background()))
	assert.Len(t, store.pages, 1)
	assert.Equal(t, []int64{10}, store.chapters)
}
