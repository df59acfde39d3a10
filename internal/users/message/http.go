// Copyright (c) 2026 ComicHub. All rights reserved.

package message

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/middleware"
	requestutil "github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/request"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for the moderation inbox.
type Handler struct {
	service *Service
}

// NewHandler constructs a new message [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with inbox endpoints. Every endpoint
// requires authentication; Send additionally requires moderator role,
// enforced in the service.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth())

	router.Get("/", handler.listInbox)
	router.Post("/", handler.send)
	router.Put("/{messageID}/read", handler.markRead)

	return router
}

type sendRequest struct {
	ReceiverID int64  `json:"receiver_id"`
	Subject    string `json:"subject"`
	Content    string `json:"content"`
}

/*
POST /api/v1/messages.

Description: Sends a moderation notice. Moderator or admin role required.

Response:
  - 201: Message
  - 403: Insufficient role
*/
func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	var payload sendRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	message, err := handler.service.Send(request.Context(), claims,
		payload.ReceiverID, payload.Subject, payload.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, message)
}

/*
PUT /api/v1/messages/{messageID}/read.

Response:
  - 200: {"message": "read"}
  - 403: Not the receiver
*/
func (handler *Handler) markRead(writer http.ResponseWriter, request *http.Request) {
	messageID, err := requestutil.IntParam(request, "messageID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.MarkRead(request.Context(), requestutil.Claims(request), messageID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "read"})
}

/*
GET /api/v1/messages.

Description: Lists the authenticated account's inbox, newest first.

Response:
  - 200: []Message
*/
func (handler *Handler) listInbox(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	messages, err := handler.service.ListInbox(request.Context(), accountID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, messages)
}
