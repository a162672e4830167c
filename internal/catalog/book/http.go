// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book provides the HTTP interface for discovery and the social layer.

It exposes endpoints for browsing the catalogue and for authenticated readers
to comment on and rate books.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors. An optional
    bearer token upgrades the response with the caller's own ratings.
  - Authenticated (v1): Comment and rating endpoints requiring a valid session.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/jbook/internal/platform/constants"
	"github.com/taibuivan/jbook/internal/platform/middleware"
	"github.com/taibuivan/jbook/pkg/pagination"
	requestutil "github.com/taibuivan/jbook/internal/platform/request"
	"github.com/taibuivan/jbook/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for book discovery and the social layer.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the book domain's endpoints to the given router.
// The reference lookups (/tags, /authors, ...) live in a sibling package
// and are registered on the same prefix before the {bookID} wildcard.
func (handler *Handler) Register(router chi.Router) {

	// ## Public Discovery Endpoints
	router.Get("/", handler.listBooks)
	router.Get("/{bookID}", handler.getBook)
	router.Get("/{bookID}/comments", handler.listComments)

	// ## Social Layer (Authenticated)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/{bookID}/comments", handler.createComment)
		authed.Delete("/{bookID}/comments/{commentID}", handler.deleteComment)
		authed.Post("/{bookID}/rate", handler.rateBook)
		authed.Delete("/{bookID}/rate", handler.unrateBook)
	})
}

// callerUID extracts the caller's UID when a valid session is present.
// Anonymous requests yield nil, which disables the user_rate annotation.
func callerUID(request *http.Request) *string {
	claims := requestutil.Claims(request)
	if claims == nil {
		return nil
	}
	return &claims.UserID
}

// # Discovery Endpoints

/*
GET /api/v1/books.

Description: Retrieves a paginated list of books from the catalogue.
Values within one filter axis are OR-ed; distinct axes are AND-ed.

Request:
  - tags: []string (comma-separated tag names)
  - categories: []int (comma-separated category ids)
  - authors: []int (comma-separated author ids)
  - publishers: []int (comma-separated publisher ids)
  - sort_by: string (title, rate, pub_date, created_at; optional "-" prefix for descending)
  - limit: int
  - offset: int

Response:
  - 200: []Book: Paginated, rating-annotated list of books
  - 400: ErrValidation: Malformed filter, sort or pagination parameter
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams, err := pagination.FromRequest(request, constants.DefaultBookLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter, err := FilterFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.ListBooks(request.Context(), filter, callerUID(request), paginationParams.Limit, paginationParams.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams, len(books)))
}

/*
GET /api/v1/books/{bookID}.

Description: Retrieves detailed metadata for a single book, including its
associations and rating annotations.

Request:
  - bookID: int

Response:
  - 200: Book: Success
  - 400: ErrValidation: Invalid identifier format
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetBook(request.Context(), bookID, callerUID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}

// # Comment Endpoints

/*
GET /api/v1/books/{bookID}/comments.

Response:
  - 200: []Comment: Comments ordered newest first
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, err := handler.service.ListComments(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

// # Request Payloads

// createCommentRequest defines the inbound JSON schema for comment creation.
type createCommentRequest struct {
	Content string `json:"content"`
}

// rateRequest defines the inbound JSON schema for rating a book.
type rateRequest struct {
	Rate int `json:"rate"`
}

/*
POST /api/v1/books/{bookID}/comments.

Request:
  - content: string

Response:
  - 201: Comment: The persisted comment
  - 400: ErrValidation: Empty or oversized content
  - 401: ErrUnauthorized: Missing or invalid session
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createCommentRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), bookID, claims.UserID, claims.Username, payload.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
DELETE /api/v1/books/{bookID}/comments/{commentID}.

Description: Removes the caller's own comment. The book is checked first,
then the comment, then that the comment belongs to the book, and finally
that the caller owns it.

Response:
  - 204: No Content
  - 400: ErrValidation: Comment belongs to a different book
  - 403: ErrForbidden: Comment owned by another user
  - 404: ErrNotFound: Book or comment not found
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.IntParam(request, "commentID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), bookID, commentID, userUID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Rating Endpoints

/*
POST /api/v1/books/{bookID}/rate.

Request:
  - rate: int (1..5)

Response:
  - 201: Rate: The persisted rating
  - 400: ErrValidation: Rate outside the accepted range
  - 404: ErrNotFound: Book not found, or RATE_ALREADY_EXISTS when the
    caller has already rated this book
*/
func (handler *Handler) rateBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload rateRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rate, err := handler.service.RateBook(request.Context(), bookID, claims.UserID, claims.Username, payload.Rate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, rate)
}

/*
DELETE /api/v1/books/{bookID}/rate.

Response:
  - 204: No Content
  - 404: ErrNotFound: Book not found, or RATE_NOT_FOUND when the caller
    has no rating to withdraw
*/
func (handler *Handler) unrateBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.IntParam(request, "bookID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UnrateBook(request.Context(), bookID, userUID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
