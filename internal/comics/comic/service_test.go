// Copyright (c) 2026 ComicHub. All rights reserved.

package comic

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/apperr"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/pkg/pagination"
)

// fakeRepository is an in-memory stand-in for the postgres store.
type fakeRepository struct {
	Repository // panic on anything a test does not stub

	comics       map[int64]*Comic
	catalogue    []*Comic
	urlTaken     bool
	created      *Comic
	metadataCall bool
	movedPage    bool
	deletedPage  bool
	pageOwners   map[int64]int64
	gotLimit     int
	gotOffset    int
}

func (f *fakeRepository) ListPublished(ctx context.Context, limit, offset int) ([]*Comic, error) {
	f.gotLimit, f.gotOffset = limit, offset
	return f.catalogue, nil
}

func (f *fakeRepository) CountPublished(ctx context.Context) (int, error) {
	return len(f.catalogue) + 40, nil
}

func (f *fakeRepository) Create(ctx context.Context, comic *Comic) error {
	comic.ID = 1
	f.created = comic
	return nil
}

func (f *fakeRepository) URLTaken(ctx context.Context, comicURL string) (bool, error) {
	return f.urlTaken, nil
}

func (f *fakeRepository) FindByURL(ctx context.Context, comicURL string, includeUnpublished bool) (*Comic, error) {
	for _, comic := range f.comics {
		if comic.ComicURL == comicURL {
			if !includeUnpublished && !comic.Published {
				return nil, apperr.NotFound("Comic")
			}
			view := *comic
			view.Pages = nil
			if includeUnpublished {
				view.Pages = comic.Pages
			} else {
				for _, page := range comic.Pages {
					if page.Published {
						view.Pages = append(view.Pages, page)
					}
				}
			}
			return &view, nil
		}
	}
	return nil, apperr.NotFound("Comic")
}

func (f *fakeRepository) OwnerOfComic(ctx context.Context, comicID int64) (int64, error) {
	comic, ok := f.comics[comicID]
	if !ok {
		return 0, apperr.NotFound("Comic")
	}
	return comic.AccountID, nil
}

func (f *fakeRepository) OwnerOfPage(ctx context.Context, pageID int64) (int64, error) {
	owner, ok := f.pageOwners[pageID]
	if !ok {
		return 0, apperr.NotFound("Page")
	}
	return owner, nil
}

func (f *fakeRepository) UpdateMetadata(ctx context.Context, comicID int64, title, description, tagline string, published bool) error {
	f.metadataCall = true
	return nil
}

func (f *fakeRepository) MovePage(ctx context.Context, pageID, chapterID int64) error {
	f.movedPage = true
	return nil
}

func (f *fakeRepository) DeletePage(ctx context.Context, pageID int64) error {
	f.deletedPage = true
	return nil
}

func ownerClaims(accountID int64) *sec.AuthClaims {
	return &sec.AuthClaims{AccountID: accountID, Username: "artist", Role: string(sec.RoleUser)}
}

func moderatorClaims() *sec.AuthClaims {
	return &sec.AuthClaims{AccountID: 999, Username: "mod", Role: string(sec.RoleModerator)}
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateComic_Validation(t *testing.T) {
	tests := []struct {
		name  string
		comic Comic
	}{
		{"missing title", Comic{ComicURL: "strip", Tagline: "t", Description: "d", ThumbnailURL: "k", Organization: OrganizationPages}},
		{"url slugs to nothing", Comic{Title: "Strip", ComicURL: "!!!", Tagline: "t", Description: "d", ThumbnailURL: "k", Organization: OrganizationPages}},
		{"unknown organization", Comic{Title: "Strip", ComicURL: "strip", Tagline: "t", Description: "d", ThumbnailURL: "k", Organization: "scrolls"}},
		{"missing thumbnail", Comic{Title: "Strip", ComicURL: "strip", Tagline: "t", Description: "d", Organization: OrganizationPages}},
	}

	repo := &fakeRepository{}
	service := newTestService(repo)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comic := tt.comic
			err := service.CreateComic(context.Background(), &comic)
			require.Error(t, err)
			assert.Nil(t, repo.created)
		})
	}
}

func TestCreateComic_Valid(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	comic := &Comic{
		AccountID:    7,
		Title:        "Night Shift",
		ComicURL:     "Night Shift",
		Tagline:      "A comic about late hours",
		Description:  "Weekly workplace comedy.",
		ThumbnailURL: "thumbs/night-shift.png",
		Organization: OrganizationVolumes,
	}

	require.NoError(t, service.CreateComic(context.Background(), comic))
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(1), comic.ID)
	assert.Equal(t, "night-shift", comic.ComicURL)
}

func TestListPublished_Pagination(t *testing.T) {
	repo := &fakeRepository{catalogue: []*Comic{{ID: 1}, {ID: 2}}}
	service := newTestService(repo)

	comics, meta, err := service.ListPublished(context.Background(), pagination.Params{Page: 3, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, comics, 2)
	assert.Equal(t, 10, repo.gotLimit)
	assert.Equal(t, 20, repo.gotOffset)
	assert.Equal(t, 3, meta.Page)
	assert.Equal(t, 42, meta.Total)
	assert.Equal(t, 5, meta.TotalPages)
}

func TestGetByURL_ReaderSeesPublishedOnly(t *testing.T) {
	published := &Page{ID: 1, PageNumber: 1, Published: true}
	unpublished := &Page{ID: 2, PageNumber: 2}
	repo := &fakeRepository{
		comics: map[int64]*Comic{
			1: {ID: 1, AccountID: 7, ComicURL: "night-shift", Published: true, Pages: []*Page{published, unpublished}},
		},
	}
	service := newTestService(repo)

	// Anonymous reader.
	comic, err := service.GetByURL(context.Background(), "night-shift", nil)
	require.NoError(t, err)
	assert.Len(t, comic.Pages, 1)

	// Owner sees the backlog.
	comic, err = service.GetByURL(context.Background(), "night-shift", ownerClaims(7))
	require.NoError(t, err)
	assert.Len(t, comic.Pages, 2)

	// Moderators get the owner view too.
	comic, err = service.GetByURL(context.Background(), "night-shift", moderatorClaims())
	require.NoError(t, err)
	assert.Len(t, comic.Pages, 2)
}

func TestUpdateMetadata_Ownership(t *testing.T) {
	repo := &fakeRepository{
		comics: map[int64]*Comic{1: {ID: 1, AccountID: 7}},
	}
	service := newTestService(repo)

	err := service.UpdateMetadata(context.Background(), ownerClaims(8), 1, "Title", "Desc", "Tag", true)
	require.Error(t, err)
	assert.False(t, repo.metadataCall)

	err = service.UpdateMetadata(context.Background(), ownerClaims(7), 1, "Title", "Desc", "Tag", true)
	require.NoError(t, err)
	assert.True(t, repo.metadataCall)
}

func TestMovePage_ModeratorAllowed(t *testing.T) {
	repo := &fakeRepository{pageOwners: map[int64]int64{5: 7}}
	service := newTestService(repo)

	err := service.MovePage(context.Background(), moderatorClaims(), 5, 10)
	require.NoError(t, err)
	assert.True(t, repo.movedPage)
}

func TestDeletePage_StrangerForbidden(t *testing.T) {
	repo := &fakeRepository{pageOwners: map[int64]int64{5: 7}}
	service := newTestService(repo)

	err := service.DeletePage(context.Background(), ownerClaims(8), 5)
	require.Error(t, err)
	assert.False(t, repo.deletedPage)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 403, appErr.HTTPStatus)
}

func TestURLAvailable(t *testing.T) {
	service := newTestService(&fakeRepository{urlTaken: true})

	available, err := service.URLAvailable(context.Background(), "night-shift")
	require.NoError(t, err)
	assert.False(t, available)

	service = newTestService(&fakeRepository{urlTaken: false})
	available, err = service.URLAvailable(context.Background(), "night-shift")
	require.NoError(t, err)
	assert.True(t, available)
}
