// Copyright (c) 2026 ComicHub. All rights reserved.

package schedule

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/middleware"
	requestutil "github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/request"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for release calendars.
type Handler struct {
	service *Service
}

// NewHandler constructs a new schedule [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with schedule endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{comicID}", handler.getSchedule)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth())
		authed.Put("/{comicID}/weekly", handler.setWeeklySchedule)
		authed.Put("/{comicID}", handler.editSchedule)
	})

	return router
}

/*
GET /api/v1/schedules/{comicID}.

Description: Lists a comic's release-calendar entries, ordered by weekday.

Response:
  - 200: []Entry
*/
func (handler *Handler) getSchedule(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.IntParam(request, "comicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.GetSchedule(request.Context(), comicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

type weeklyScheduleRequest struct {
	UpdateDays []int `json:"update_days"`
}

/*
PUT /api/v1/schedules/{comicID}/weekly.

Description: Replaces the comic's whole calendar with weekly entries on the
given ISO weekdays.

Response:
  - 200: {"message": "ok"}
  - 403: Non-owner
*/
func (handler *Handler) setWeeklySchedule(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.IntParam(request, "comicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload weeklyScheduleRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.SetWeeklySchedule(request.Context(), requestutil.Claims(request), comicID, payload.UpdateDays)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "ok"})
}

type editScheduleRequest struct {
	UpdateDay  int    `json:"update_day"`
	UpdateType string `json:"update_type"`
	UpdateWeek *int   `json:"update_week"`
}

/*
PUT /api/v1/schedules/{comicID}.

Description: Inserts or updates one calendar entry keyed on the weekday.

Response:
  - 200: Entry
  - 403: Non-owner
*/
func (handler *Handler) editSchedule(writer http.ResponseWriter, request *http.Request) {
	comicID, err := requestutil.IntParam(request, "comicID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload editScheduleRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry := &Entry{
		ComicID:    comicID,
		UpdateDay:  payload.UpdateDay,
		UpdateType: UpdateType(payload.UpdateType),
		UpdateWeek: payload.UpdateWeek,
	}
	if err := handler.service.EditSchedule(request.Context(), requestutil.Claims(request), entry); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}
