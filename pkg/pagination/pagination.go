// Copyright (c) 2026 ComicHub. All rights reserved.

// Package pagination parses page/limit query parameters and builds the
// metadata block that list endpoints return alongside their data.
//
// All list endpoints share the same contract: `?page=N&limit=M`, 1-indexed,
// with out-of-range values clamped rather than rejected so a sloppy client
// still gets a sensible first page.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size when the client does not ask for one.
	DefaultLimit = 20
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
	// DefaultPage is the first page (pages are 1-indexed).
	DefaultPage = 1
)

// Params is a validated page request.
type Params struct {
	Page  int
	Limit int
}

// Offset converts Page/Limit into a SQL OFFSET.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the metadata block attached to paginated responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta derives response metadata from the request params and the total
// row count, rounding TotalPages up.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest reads "page" and "limit" from the query string, falling back
// to the defaults and clamping limit to [MaxLimit].
func FromRequest(r *http.Request) Params {
	page := queryInt(r, "page", DefaultPage)
	limit := queryInt(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
