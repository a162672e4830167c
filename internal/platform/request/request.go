// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction, common body
decoding patterns, and the strict comma-separated list syntax used by the
catalog filter parameters, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/ctxutil"
	"github.com/taibuivan/jbook/internal/platform/sec"
	"github.com/taibuivan/jbook/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam retrieves a named URL parameter and parses it as a positive integer.

Returns:
  - int: The parsed identifier
  - error: apperr.ValidationError naming the parameter on malformed input
*/
func IntParam(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, apperr.ValidationError("Invalid identifier", apperr.FieldError{
			Field:   name,
			Message: "must be a positive integer",
		})
	}

	return value, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.AuthClaims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredUserID returns the User ID of the currently logged-in user.

Returns:
  - string: User UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {

	// Get user claims
	claims, err := RequiredClaims(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}

/*
QueryIntList parses a comma-separated integer list query parameter.

The filter parameters are strict: an absent or empty parameter means "no
filter" (nil), but once the parameter is present every token must be a
well-formed integer. Silently dropping a malformed token would turn a client
typo into a wrong result set, so the whole parameter is rejected instead.

Returns:
  - []int: The parsed values, or nil when the parameter is absent
  - error: apperr.ValidationError naming the parameter on any malformed token
*/
func QueryIntList(request *http.Request, name string) ([]int, error) {

	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	tokens := strings.Split(raw, ",")
	values := make([]int, 0, len(tokens))

	for _, token := range tokens {
		v, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil {
			return nil, apperr.ValidationError("Invalid filter value", apperr.FieldError{
				Field:   name,
				Message: "Must be a comma-separated list of integers",
			})
		}
		values = append(values, v)
	}

	return values, nil
}

/*
QueryStringList parses a comma-separated string list query parameter.

Same strictness contract as [QueryIntList]: absent means nil, and empty
tokens (e.g. "a,,b" or a trailing comma) reject the whole parameter.
*/
func QueryStringList(request *http.Request, name string) ([]string, error) {

	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	tokens := strings.Split(raw, ",")
	values := make([]string, 0, len(tokens))

	for _, token := range tokens {
		clean := strings.TrimSpace(token)
		if clean == "" {
			return nil, apperr.ValidationError("Invalid filter value", apperr.FieldError{
				Field:   name,
				Message: "Must be a comma-separated list of non-empty values",
			})
		}
		values = append(values, clean)
	}

	return values, nil
}
