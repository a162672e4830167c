// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package shelf provides the HTTP interface for reader-curated collections.

It exposes endpoints for browsing public shelves, managing the caller's own
shelves and placements, and the social layer of comments and ratings.

# Routing Strategy

  - Public (v1): Discovery endpoints; private shelves are filtered out or
    gated per request.
  - Authenticated (v1): Creation, placement and social endpoints requiring
    a valid session.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package shelf

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

// Handler implements the HTTP layer for shelf curation and discovery.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new shelf [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the shelf domain's endpoints to the given router.
// The static /mine and /tags segments must precede the {shelfUID} wildcard.
func (handler *Handler) Register(router chi.Router) {

	// ## Public Discovery Endpoints
	router.Get("/", handler.listShelves)
	router.Get("/{shelfUID}", handler.getShelf)
	router.Get("/{shelfUID}/comments", handler.listComments)

	// ## Curation & Social Layer (Authenticated)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Get("/mine", handler.listMine)
		authed.Post("/", handler.createShelf)

		authed.Post("/{shelfUID}/comments", handler.createComment)
		authed.Delete("/{shelfUID}/comments/{commentID}", handler.deleteComment)
		authed.Post("/{shelfUID}/rate", handler.rateShelf)
		authed.Delete("/{shelfUID}/rate", handler.unrateShelf)

		authed.Post("/{shelfUID}/books-in-shelf", handler.addBook)
		authed.Delete("/{shelfUID}/books-in-shelf/{placementID}", handler.removeBook)
		authed.Put("/{shelfUID}/books-in-shelf/{placementID}", handler.replaceBookTags)
	})
}

// callerUID extracts the caller's UID when a valid session is present.
func callerUID(request *http.Request) *string {
	claims := requestutil.Claims(request)
	if claims == nil {
		return nil
	}
	return &claims.UserID
}

// # Discovery Endpoints

/*
GET /api/v1/shelves.

Description: Retrieves a paginated list of public shelves. Private shelves
never appear regardless of the caller.

Request:
  - tags: []string (comma-separated tag names)
  - sort_by: string (name, rate, created_at; optional "-" prefix for descending)
  - limit: int
  - offset: int

Response:
  - 200: []Shelf: Paginated, rating-annotated list of public shelves
  - 400: ErrValidation: Malformed filter, sort or pagination parameter
*/
func (handler *Handler) listShelves(writer http.ResponseWriter, request *http.Request) {
	paginationParams, err := pagination.FromRequest(request, constants.DefaultShelfLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter, err := FilterFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	shelves, err := handler.service.ListPublic(request.Context(), filter, callerUID(request), paginationParams.Limit, paginationParams.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, shelves, pagination.NewMeta(paginationParams, len(shelves)))
}

/*
GET /api/v1/shelves/mine.

Description: Retrieves the caller's own shelves, both visibilities.

Response:
  - 200: []Shelf: The caller's shelves
  - 401: ErrUnauthorized: Missing or invalid session
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams, err := pagination.FromRequest(request, constants.DefaultShelfLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter, err := FilterFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	shelves, err := handler.service.ListMine(request.Context(), userUID, filter, paginationParams.Limit, paginationParams.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, shelves, pagination.NewMeta(paginationParams, len(shelves)))
}

/*
GET /api/v1/shelves/{shelfUID}.

Response:
  - 200: Shelf: Success
  - 403: ErrForbidden: Shelf is private and the caller is not the owner
  - 404: ErrNotFound: Shelf not found
*/
func (handler *Handler) getShelf(writer http.ResponseWriter, request *http.Request) {
	shelfUID := requestutil.ID(request, "shelfUID")

	shelf, err := handler.service.GetShelf(request.Context(), shelfUID, callerUID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, shelf)
}

// # Request Payloads

// createShelfRequest defines the inbound JSON schema for shelf creation.
type createShelfRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Type        Visibility `json:"type"`
	Tags        []string   `json:"tags"`
	BookIDs     []int      `json:"book_ids"`
}

// addBookRequest defines the inbound JSON schema for placing a book.
type addBookRequest struct {
	BookID int      `json:"book_id"`
	Tags   []string `json:"tags"`
}

// replaceTagsRequest defines the inbound JSON schema for tag replacement.
type replaceTagsRequest struct {
	Tags []string `json:"tags"`
}

// createCommentRequest defines the inbound JSON schema for comment creation.
type createCommentRequest struct {
	Content string `json:"content"`
}

// rateRequest defines the inbound JSON schema for rating a shelf.
type rateRequest struct {
	Rate int `json:"rate"`
}

// # Curation Endpoints

/*
POST /api/v1/shelves.

Request:
  - name: string
  - description: string (optional)
  - type: string (public, private; defaults to private)
  - tags: []string
  - book_ids: []int (unknown IDs are silently dropped)

Response:
  - 201: Shelf: The persisted aggregate with hydrated tags and placements
  - 400: ErrValidation: Missing name or unknown visibility
  - 401: ErrUnauthorized: Missing or invalid session
*/
func (handler *Handler) createShelf(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload createShelfRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	shelf, err := handler.service.CreateShelf(request.Context(), claims.UserID, claims.Username, CreateParams{
		Name:        payload.Name,
		Description: payload.Description,
		Type:        payload.Type,
		Tags:        payload.Tags,
		BookIDs:     payload.BookIDs,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, shelf)
}

/*
POST /api/v1/shelves/{shelfUID}/books-in-shelf.

Request:
  - book_id: int
  - tags: []string (optional placement tag set)

Response:
  - 201: BookInShelf: The persisted placement
  - 403: ErrForbidden: Caller does not own the shelf
  - 404: ErrNotFound: Shelf or book not found
*/
func (handler *Handler) addBook(writer http.ResponseWriter, request *http.Request) {
	shelfUID := requestutil.ID(request, "shelfUID")

	userUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload addBookRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	placement, err := handler.service.AddBook(request.Context(), shelfUID, userUID, payload.BookID, payload.Tags)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, placement)
}

/*
DELETE /api/v1/shelves/{shelfUID}/books-in-shelf/{placementID}.

Description: Removes a placement. The shelf is checked first, then the
placement, then that the placement belongs to the shelf, and finally that
the caller owns the shelf.

Response:
  - 204: No Content
  - 400: ErrValidation: Placement belongs to a different shelf
  - 403: ErrForbidden: Caller does not own the shelf
  - 404: ErrNotFound: Shelf or placement not found
*/
func (handler *Handler) removeBook(writer http.ResponseWriter, request *http.Request) {
	shelfUID := requestutil.ID(request, "shelfUID")

	placementID, err := requestutil.IntParam(request, "placementID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveBook(request.Context(), shelfUID, placementID, userUID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PUT /api/v1/shelves/{shelfUID}/books-in-shelf/{placementID}.

Description: Replaces the placement's tag set wholesale. An empty tag list
clears all tags.

Request:
  - tags: []string

Response:
  - 200: BookInShelf: The placement with its new tag set
  - 400: ErrValidation: Placement belongs to a different shelf
  - 403: ErrForbidden: Caller does not own the shelf
  - 404: ErrNotFound: Shelf or placement not found
*/
func (handler *Handler) replaceBookTags(writer http.ResponseWriter, request *http.Request) {
	shelfUID := requestutil.ID(request, "shelfUID")

	placementID, err := requestutil.IntParam(request, "placementID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload replaceTagsRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	placement, err := handler.service.ReplaceBookTags(request.Context(), shelfUID, placementID, userUID, payload.Tags)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, placement)
}

// # Comment Endpoints

/*
GET /api/v1/shelves/{shelfUID}/comments.

Response:
  - 200: []Comment: Comments ordered newest first
  - 403: ErrForbidden: Shelf is private and the caller is not the owner
  - 404: ErrNotFound: Shelf not found
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	shelfUID := requestutil.ID(request, "shelfUID")

	comments, err := handler.service.ListComments(request.Context(), shelfUID, callerUID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

/*
POST /api/v1/shelves/{shelfUID}/comments.

Request:
  - content: string

Response:
  - 201: Comment: The persisted comment
  - 400: ErrValidation: Empty or oversized content
  - 403: ErrForbidden: Shelf is private and the caller is not the owner
  - 404: ErrNotFound: Shelf not found
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	shelfUID := requestutil.ID(request, "shelfUID")

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

	comment, err := handler.service.CreateComment(request.Context(), shelfUID, claims.UserID, claims.Username, payload.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
DELETE /api/v1/shelves/{shelfUID}/comments/{commentID}.

Response:
  - 204: No Content
  - 400: ErrValidation: Comment belongs to a different shelf
  - 403: ErrForbidden: Comment owned by another user
  - 404: ErrNotFound: Shelf or comment not found
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	shelfUID := requestutil.ID(request, "shelfUID")

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

	if err := handler.service.DeleteComment(request.Context(), shelfUID, commentID, userUID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Rating Endpoints

/*
POST /api/v1/shelves/{shelfUID}/rate.

Request:
  - rate: int (1..5)

Response:
  - 201: Rate: The persisted rating
  - 400: ErrValidation: Rate outside the accepted range
  - 404: ErrNotFound: Shelf not found, or RATE_ALREADY_EXISTS when the
    caller has already rated this shelf
*/
func (handler *Handler) rateShelf(writer http.ResponseWriter, request *http.Request) {
	shelfUID := requestutil.ID(request, "shelfUID")

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

	rate, err := handler.service.RateShelf(request.Context(), shelfUID, claims.UserID, claims.Username, payload.Rate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, rate)
}

/*
DELETE /api/v1/shelves/{shelfUID}/rate.

Response:
  - 204: No Content
  - 404: ErrNotFound: Shelf not found, or RATE_NOT_FOUND when the caller
    has no rating to withdraw
*/
func (handler *Handler) unrateShelf(writer http.ResponseWriter, request *http.Request) {
	shelfUID := requestutil.ID(request, "shelfUID")

	userUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UnrateShelf(request.Context(), shelfUID, userUID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
