// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Listings are offset/limit based. There is deliberately no total count in
// the response metadata: computing it would cost a second scan per request,
// and no current client pages by total. Callers walk forward by offset until
// a short page comes back.
package pagination

import (
	"net/http"
	"strconv"

	"github.com/taibuivan/jbook/internal/platform/apperr"
)

const (
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 200
)

// Params holds the parsed offset and limit from a request's query string.
type Params struct {
	Offset int
	Limit  int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	// Count is the number of items actually returned in this page.
	Count int `json:"count"`
}

// NewMeta constructs pagination metadata for a response page.
func NewMeta(params Params, count int) Meta {
	return Meta{
		Offset: params.Offset,
		Limit:  params.Limit,
		Count:  count,
	}
}

// FromRequest parses "offset" and "limit" query parameters from an HTTP request.
//
// # Strictness
//
// Unlike lenient parsers that clamp bad values, malformed or out-of-range
// parameters are rejected with a VALIDATION_ERROR: a client that sends
// offset=-1 has a bug, and silently serving page zero would mask it. Absent
// parameters fall back to offset 0 and the per-entity default limit.
func FromRequest(r *http.Request, defaultLimit int) (Params, error) {
	params := Params{Offset: 0, Limit: defaultLimit}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return Params{}, apperr.ValidationError("Invalid pagination parameters", apperr.FieldError{
				Field:   "offset",
				Message: "Must be an integer >= 0",
			})
		}
		params.Offset = offset
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			return Params{}, apperr.ValidationError("Invalid pagination parameters", apperr.FieldError{
				Field:   "limit",
				Message: "Must be an integer between 1 and " + strconv.Itoa(MaxLimit),
			})
		}
		params.Limit = limit
	}

	return params, nil
}
