// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/jbook/internal/platform/middleware"
	requestutil "github.com/taibuivan/jbook/internal/platform/request"
	"github.com/taibuivan/jbook/internal/platform/respond"
	"github.com/taibuivan/jbook/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for the lookup vocabularies.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterBookRoutes attaches the book vocabulary endpoints. These share
// the /books prefix with the book handler; the static segments registered
// here take precedence over its {bookID} wildcard.
func (handler *Handler) RegisterBookRoutes(router chi.Router) {

	// ## Public Lookups
	router.Get("/tags", handler.listBookTags)
	router.Get("/authors", handler.listAuthors)
	router.Get("/categories", handler.listCategories)
	router.Get("/publishers", handler.listPublishers)

	// ## Vocabulary Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/authors", handler.createAuthor)
		admin.Post("/categories", handler.createCategory)
		admin.Post("/publishers", handler.createPublisher)
	})
}

// RegisterShelfRoutes attaches the shelf vocabulary endpoints under the
// /shelves prefix.
func (handler *Handler) RegisterShelfRoutes(router chi.Router) {
	router.Get("/tags", handler.listShelfTags)
}

// # Listing Endpoints

/*
GET /api/v1/books/tags.

Response:
  - 200: []string: Every book tag name, alphabetically
*/
func (handler *Handler) listBookTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListBookTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

/*
GET /api/v1/shelves/tags.

Response:
  - 200: []string: Every shelf tag name, alphabetically
*/
func (handler *Handler) listShelfTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListShelfTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

/*
GET /api/v1/books/authors.

Response:
  - 200: []Author: Every author, alphabetically
*/
func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	authors, err := handler.service.ListAuthors(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, authors)
}

/*
GET /api/v1/books/categories.

Response:
  - 200: []Category: Every category, most popular first
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, categories)
}

/*
GET /api/v1/books/publishers.

Response:
  - 200: []Publisher: Every publisher, alphabetically
*/
func (handler *Handler) listPublishers(writer http.ResponseWriter, request *http.Request) {
	publishers, err := handler.service.ListPublishers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, publishers)
}

// # Creation Endpoints

// createLookupRequest defines the shared inbound JSON schema for creating
// a vocabulary entry.
type createLookupRequest struct {
	Name string `json:"name"`
}

/*
POST /api/v1/books/authors.

Request:
  - name: string

Response:
  - 201: Author: The persisted entry with its generated slug
  - 400: ErrValidation: Missing or oversized name
  - 403: ErrForbidden: Caller is not an administrator
  - 409: ErrConflict: Name or slug already exists
*/
func (handler *Handler) createAuthor(writer http.ResponseWriter, request *http.Request) {
	var payload createLookupRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	author, err := handler.service.CreateAuthor(request.Context(), payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, author)
}

/*
POST /api/v1/books/categories.

Request:
  - name: string

Response:
  - 201: Category: The persisted entry
  - 400: ErrValidation: Missing or oversized name
  - 403: ErrForbidden: Caller is not an administrator
  - 409: ErrConflict: Name or slug already exists
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var payload createLookupRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
POST /api/v1/books/publishers.

Request:
  - name: string

Response:
  - 201: Publisher: The persisted entry
  - 400: ErrValidation: Missing or oversized name
  - 403: ErrForbidden: Caller is not an administrator
  - 409: ErrConflict: Name or slug already exists
*/
func (handler *Handler) createPublisher(writer http.ResponseWriter, request *http.Request) {
	var payload createLookupRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	publisher, err := handler.service.CreatePublisher(request.Context(), payload.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, publisher)
}
