// Copyright (c) 2026 ComicHub. All rights reserved.

/*
Package apperr is the error vocabulary shared by every service and handler.

Service methods return an [*AppError] (or something wrapping one) for every
failure a client can act on; the respond package turns it into the JSON error
envelope. Anything that reaches the handler without an AppError in its chain
is treated as an internal fault and masked with a generic 500.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError pairs a client-facing message with the HTTP status and a stable
// machine-readable code.
//
// Cause is kept for server-side logs only. It never reaches the client, so
// wrapping driver errors (SQL text, connection strings) is safe.
type AppError struct {
	// Code is a stable identifier clients can switch on ("NOT_FOUND", ...).
	Code string `json:"code"`
	// Message is safe to show to end users verbatim.
	Message string `json:"error"`
	// HTTPStatus is the response status this error maps to.
	HTTPStatus int `json:"-"`
	// Cause is the wrapped server-side error, for logging only.
	Cause error `json:"-"`
	// Details lists per-field failures on VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError is one field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed.
	Field string `json:"field"`
	// Message describes the failure.
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

// Unwrap lets [errors.Is] and [errors.As] walk into the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// As extracts the [*AppError] from err's chain, or nil when there is none.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// # Constructors

// NotFound builds a 404 for a named resource.
//
//	apperr.NotFound("Comic") // message "Comic not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized builds a 401.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden builds a 403.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict builds a 409, used for unique-constraint collisions such as a
// taken username or comic URL.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError builds a 400 carrying per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// RateLimited builds a 429.
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Unprocessable builds a 422 for requests that parse but cannot be applied,
// such as moving a page into a chapter of a different comic.
func Unprocessable(msg string) *AppError {
	return &AppError{
		Code:       "UNPROCESSABLE",
		Message:    msg,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// Internal builds a 500 around an unexpected error. The cause stays out of
// the response body.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}
