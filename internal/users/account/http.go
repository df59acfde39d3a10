// Copyright (c) 2026 ComicHub. All rights reserved.

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/middleware"
	requestutil "github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/request"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/respond"
	"github.com/CMPS-115-Webcomics/Webcomics-Backend/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for accounts and authentication.
type Handler struct {
	service *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Authentication
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/password-reset/request", handler.requestPasswordReset)
	router.Post("/password-reset/confirm", handler.confirmPasswordReset)
	router.Post("/verify-email", handler.verifyEmail)

	// ## Public Profiles & Availability
	router.Get("/profiles/{profileURL}", handler.getProfile)
	router.Get("/availability/username/{username}", handler.usernameAvailability)
	router.Get("/availability/email/{email}", handler.emailAvailability)
	router.Get("/availability/identifier/{identifier}", handler.identifierAvailability)
	router.Get("/banstate/{username}", handler.banState)

	// ## Account Self-Service (Auth Required)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth())
		authed.Put("/profile", handler.editProfile)
		authed.Put("/profile/enable", handler.enableProfile)
	})

	// ## Moderation
	router.Group(func(mods chi.Router) {
		mods.Use(middleware.RequireAuth(), middleware.RequireRole(sec.RoleModerator))
		mods.Post("/ban", handler.ban)
	})

	return router
}

// # Authentication Endpoints

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/accounts/register.

Description: Creates an account and mails a verification link. Responds
with a signed token so the user is logged in immediately.

Response:
  - 201: AuthResponse
  - 400: Validation errors
  - 409: Username or email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var payload registerRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	auth, err := handler.service.Register(request.Context(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, auth)
}

type loginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

/*
POST /api/v1/accounts/login.

Response:
  - 200: AuthResponse
  - 401: Wrong password
  - 403: Banned account
  - 404: No such account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	auth, err := handler.service.Login(request.Context(), payload.UsernameOrEmail, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, auth)
}

type passwordResetRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
}

// POST /api/v1/accounts/password-reset/request.
func (handler *Handler) requestPasswordReset(writer http.ResponseWriter, request *http.Request) {
	var payload passwordResetRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RequestPasswordReset(request.Context(), payload.UsernameOrEmail); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "Reset email sent"})
}

type passwordResetConfirm struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

/*
POST /api/v1/accounts/password-reset/confirm.

Description: Consumes a mailed reset token and sets the new password. The
token is single-use.

Response:
  - 200: AuthResponse (fresh credentials)
  - 401: Invalid or expired token
*/
func (handler *Handler) confirmPasswordReset(writer http.ResponseWriter, request *http.Request) {
	var payload passwordResetConfirm
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	auth, err := handler.service.ConfirmPasswordReset(request.Context(), payload.Token, payload.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, auth)
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

// POST /api/v1/accounts/verify-email.
func (handler *Handler) verifyEmail(writer http.ResponseWriter, request *http.Request) {
	var payload verifyEmailRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.VerifyEmail(request.Context(), payload.Token); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "done"})
}

// # Profile Endpoints

/*
GET /api/v1/accounts/profiles/{profileURL}.

Response:
  - 200: Profile (with owned comic summaries)
  - 404: No enabled profile under that URL
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	profileURL := requestutil.Param(request, "profileURL")

	profile, err := handler.service.GetProfile(request.Context(), profileURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

type enableProfileRequest struct {
	ProfileURL string  `json:"profile_url"`
	Biography  *string `json:"biography"`
}

// PUT /api/v1/accounts/profile/enable.
func (handler *Handler) enableProfile(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload enableProfileRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.EnableProfile(request.Context(), accountID, payload.ProfileURL, payload.Biography); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "updated"})
}

type editProfileRequest struct {
	Username  string  `json:"username"`
	Biography *string `json:"biography"`
}

// PUT /api/v1/accounts/profile.
func (handler *Handler) editProfile(writer http.ResponseWriter, request *http.Request) {
	accountID, err := requestutil.RequiredAccountID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload editProfileRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.EditProfile(request.Context(), accountID, payload.Username, payload.Biography); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "updated"})
}

// # Moderation & Availability Endpoints

type banRequest struct {
	AccountID int64 `json:"account_id"`
}

/*
POST /api/v1/accounts/ban.

Description: Flags an account as banned. Requires moderator or admin role.

Response:
  - 200: {"message": "banned"}
  - 403: Insufficient role
*/
func (handler *Handler) ban(writer http.ResponseWriter, request *http.Request) {
	var payload banRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Ban(request.Context(), payload.AccountID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]string{"message": "banned"})
}

// GET /api/v1/accounts/banstate/{username}.
func (handler *Handler) banState(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	banned, err := handler.service.BanState(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"banned": banned})
}

// GET /api/v1/accounts/availability/username/{username}.
func (handler *Handler) usernameAvailability(writer http.ResponseWriter, request *http.Request) {
	available, err := handler.service.UsernameAvailable(request.Context(), requestutil.Param(request, "username"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"available": available})
}

// GET /api/v1/accounts/availability/email/{email}.
func (handler *Handler) emailAvailability(writer http.ResponseWriter, request *http.Request) {
	available, err := handler.service.EmailAvailable(request.Context(), requestutil.Param(request, "email"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"available": available})
}

// GET /api/v1/accounts/availability/identifier/{identifier}.
func (handler *Handler) identifierAvailability(writer http.ResponseWriter, request *http.Request) {
	available, err := handler.service.UsernameOrEmailAvailable(request.Context(), requestutil.Param(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string]bool{"available": available})
}
