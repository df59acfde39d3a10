// Copyright (c) 2026 ComicHub. All rights reserved.

package comic

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/middleware"
	requestutil "github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/request"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/respond"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the comic catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalogue [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with catalogue endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Catalogue
	router.Get("/", handler.listPublished)
	router.Get("/availability/{comicURL}", handler.urlAvailability)
	router.Get("/{comicURL}", handler.getComic)

	// ## Authoring (Auth Required)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth())

		authed.Get("/mine", handler.listOwned)
		authed.Post("/", handler.createComic)

		// Registered method-by-method rather than as a mounted subrouter:
		// a mount at "/{comicID}" would also capture GET and shadow the
		// public "/{comicURL}" read above.
		authed.Put("/{comicID}", handler.updateComic)
		authed.Put("/{comicID}/thumbnail", handler.updateThumbnail)
		authed.Delete("/{comicID}", handler.deleteComic)
		authed.Post("/{comicID}/volumes", handler.addVolume)
		authed.Post("/{comicID}/chapters", handler.addChapter)
		authed.Post("/{comicID}/pages", handler.addPage)

		authed.Put("/pages/{pageID}/move", handler.movePage)
		authed.Delete("/pages/{pageID}", handler.deletePage)
		authed.Put("/chapters/{chapterID}/move", handler.moveChapter)
		authed.Delete("/chapters/{chapterID}", handler.deleteChapter)
		authed.Delete("/volumes/{volumeID}", handler.deleteVolume)
	})

	return router
}

// # Catalogue Endpoints

/*
GET /api/v1/comics?page=1&limit=20.

Description: Lists published comics, newest first, with pagination metadata.

Response:
  - 200: []Comic + meta
*/
func (handler *Handler) listPublished(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	comics, meta, err := handler.service.ListPublished(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, comics, meta)
}

/*
GET /api/v1/comics/mine.

Description: Lists the authenticated account's comics, published or not.

Response:
  - 200: []Comic
  - 401: ErrUnauthorized
*/
func (handler *Handler) listOwned(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comics, err := handler.service.ListOwned(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comics)
}

/*
GET /api/v1/comics/{comicURL}.

Description: Retrieves a single comic with its hierarchy. Owners and
moderators see unpublished content; everyone else sees the published view.

Response:
  - 200: Comic
  - 404: ErrNotFound
*/
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	comicURL := requestutil.Param(request, "comicURL")

	comic, err := handler.service.GetByURL(request.Context(), comicURL, requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, comic)
}

/*
GET /api/v1/comics/availability/{comicURL}.

Description: Reports whether a comic URL is free to register.

Response:
  - 200: {"available": bool}
*/
func (handler *Handler) urlAvailability(writer http.ResponseWriter, request *http.Request) {
	comicURL := requestutil.Param(request, "comicURL")

	available, err := handler.service.URLAvailable(request.Context(), comicURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"available": available})
}

type createComicRequest struct {
	Title        string `json:"title"`
	ComicURL     string `json:"comic_url"`
	Tagline      string `json:"tagline"`
	Description  string `json:"description"`
	Organization string `json:"organization"`
	FileKey      string `json:"file_key"`
}

/*
POST /api/v1/comics.

Description: Creates a comic owned by the authenticated account. The
thumbnail file key references an already-uploaded image object.

Response:
  - 201: Comic
  - 400: Validation errors
  - 409: Duplicate comic URL
*/
func (handler *Handler) createComic(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createComicRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic := &Comic{
		AccountID:    accountID,
		Title:        payload.Title,
		ComicURL:     payload.ComicURL,
		ThumbnailURL: payload.FileKey,
		Tagline:      payload.Tagline,
		Description:  payload.Description,
		Organization: Organization(payload.Organization),
	}

	if err := handler.service.CreateComic(request.Context(), comic); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, comic)
}

type updateComicRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tagline     string `json:"tagline"`
	Published   bool   `json:"published"`
}

/*
PUT /api/v1/comics/{comicID}.

Description: Replaces a comic's metadata, including its publish flag.

Response:
  - 200: {"message": "updated"}
  - 403: Non-owner
*/
func (handler *Handler) updateComic(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.IntParam(request, "comicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateComicRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.UpdateMetadata(request.Context(), requestutil.Claims(request),
		comicID, payload.Title, payload.Description, payload.Tagline, payload.Published)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "updated"})
}

type updateThumbnailRequest struct {
	FileKey string `json:"file_key"`
}

// PUT /api/v1/comics/{comicID}/thumbnail.
func (handler *Handler) updateThumbnail(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.IntParam(request, "comicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload updateThumbnailRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.UpdateThumbnail(request.Context(), requestutil.Claims(request), comicID, payload.FileKey)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "updated"})
}

// DELETE /api/v1/comics/{comicID}.
func (handler *Handler) deleteComic(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.IntParam(request, "comicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComic(request.Context(), requestutil.Claims(request), comicID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Hierarchy Endpoints

type addVolumeRequest struct {
	Name         *string `json:"name"`
	VolumeNumber int     `json:"volume_number"`
}

/*
POST /api/v1/comics/{comicID}/volumes.

Response:
  - 201: Volume
  - 403: Non-owner
*/
func (handler *Handler) addVolume(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.IntParam(request, "comicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload addVolumeRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	volume := &Volume{
		ComicID:      comicID,
		Name:         payload.Name,
		VolumeNumber: payload.VolumeNumber,
	}
	if err := handler.service.AddVolume(request.Context(), requestutil.Claims(request), volume); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, volume)
}

type addChapterRequest struct {
	Name          *string `json:"name"`
	VolumeID      *int64  `json:"volume_id"`
	ChapterNumber int     `json:"chapter_number"`
}

/*
POST /api/v1/comics/{comicID}/chapters.

Response:
  - 201: Chapter
  - 403: Non-owner
*/
func (handler *Handler) addChapter(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.IntParam(request, "comicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload addChapterRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter := &Chapter{
		ComicID:       comicID,
		VolumeID:      payload.VolumeID,
		Name:          payload.Name,
		ChapterNumber: payload.ChapterNumber,
	}
	if err := handler.service.AddChapter(request.Context(), requestutil.Claims(request), chapter); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, chapter)
}

type addPageRequest struct {
	ChapterID  *int64  `json:"chapter_id"`
	PageNumber int     `json:"page_number"`
	AltText    *string `json:"alt_text"`
	FileKey    string  `json:"file_key"`
}

/*
POST /api/v1/comics/{comicID}/pages.

Description: Registers an uploaded page image. Pages always start
unpublished and surface through the scheduled release job.

Response:
  - 201: Page
  - 403: Non-owner
*/
func (handler *Handler) addPage(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.IntParam(request, "comicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload addPageRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	page := &Page{
		ComicID:    comicID,
		ChapterID:  payload.ChapterID,
		PageNumber: payload.PageNumber,
		AltText:    payload.AltText,
		FileKey:    payload.FileKey,
	}
	if err := handler.service.AddPage(request.Context(), requestutil.Claims(request), page); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, page)
}

type movePageRequest struct {
	ChapterID int64 `json:"chapter_id"`
}

// PUT /api/v1/comics/pages/{pageID}/move.
func (handler *Handler) movePage(writer http.ResponseWriter, request *http.Request) {
	pageID, err := requestutil.IntParam(request, "pageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload movePageRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.MovePage(request.Context(), requestutil.Claims(request), pageID, payload.ChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "moved"})
}

type moveChapterRequest struct {
	VolumeID int64 `json:"volume_id"`
}

// PUT /api/v1/comics/chapters/{chapterID}/move.
func (handler *Handler) moveChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.IntParam(request, "chapterID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload moveChapterRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.MoveChapter(request.Context(), requestutil.Claims(request), chapterID, payload.VolumeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "moved"})
}

// DELETE /api/v1/comics/pages/{pageID}.
func (handler *Handler) deletePage(writer http.ResponseWriter, request *http.Request) {
	pageID, err := requestutil.IntParam(request, "pageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePage(request.Context(), requestutil.Claims(request), pageID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// DELETE /api/v1/comics/chapters/{chapterID}.
func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.IntParam(request, "chapterID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteChapter(request.Context(), requestutil.Claims(request), chapterID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// DELETE /api/v1/comics/volumes/{volumeID}.
func (handler *Handler) deleteVolume(writer http.ResponseWriter, request *http.Request) {
	volumeID, err := requestutil.IntParam(request, "volumeID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteVolume(request.Context(), requestutil.Claims(request), volumeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
