// Copyright (c) 2026 ComicHub. All rights reserved.

package comic

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/ctxutil"
)

func newTestRouter(repo Repository) http.Handler {
	return NewHandler(newTestService(repo)).Routes()
}

func catalogueRepo() *fakeRepository {
	return &fakeRepository{
		comics: map[int64]*Comic{
			1: {ID: 1, AccountID: 7, Title: "Night Shift", ComicURL: "night-shift", Published: true},
		},
	}
}

// The comic read endpoints share their path segment with the ID-keyed
// authoring endpoints, so both halves of the router must resolve without
// one swallowing the other.
func TestRoutes_AnonymousComicRead(t *testing.T) {
	router := newTestRouter(catalogueRepo())

	request := httptest.NewRequest(http.MethodGet, "/night-shift", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"night-shift"`)
}

func TestRoutes_AuthenticatedComicRead(t *testing.T) {
	router := newTestRouter(catalogueRepo())

	request := httptest.NewRequest(http.MethodGet, "/night-shift", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), ownerClaims(7)))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"night-shift"`)
}

func TestRoutes_PublicListingAndAvailability(t *testing.T) {
	router := newTestRouter(catalogueRepo())

	for _, path := range []string{"/", "/availability/some-comic"} {
		request := httptest.NewRequest(http.MethodGet, path, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code, path)
	}
}

func TestRoutes_AuthoringRequiresAuth(t *testing.T) {
	router := newTestRouter(catalogueRepo())

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/"},
		{http.MethodGet, "/mine"},
		{http.MethodPut, "/1"},
		{http.MethodDelete, "/1"},
		{http.MethodPost, "/1/pages"},
	}

	for _, tt := range tests {
		request := httptest.NewRequest(tt.method, tt.path, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRoutes_OwnerUpdateStillRouted(t *testing.T) {
	repo := catalogueRepo()
	router := newTestRouter(repo)

	body := strings.NewReader(`{"title":"Night Shift","description":"d","tagline":"t","published":true}`)
	request := httptest.NewRequest(http.MethodPut, "/1", body)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), ownerClaims(7)))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, repo.metadataCall)
}
