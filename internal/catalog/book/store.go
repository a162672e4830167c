// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// # Book Data Access

// Repository defines the data access contract for the book domain.
type Repository interface {

	/*
		List returns a filtered, sorted, paginated slice of books.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Axes and resolved sort spec)
		  - callerUID: *string (UUID of the calling reader, nil when anonymous;
		    drives the user_rate annotation)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Book: Slice of rating-annotated book entities
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, callerUID *string, limit, offset int) ([]*Book, error)

	/*
		FindByID returns the rating-annotated book with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int
		  - callerUID: *string (nil when anonymous)

		Returns:
		  - *Book: The hydrated domain entity
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id int, callerUID *string) (*Book, error)

	/*
		Exists reports whether a book row with the given ID exists.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - bool: true when the book exists
		  - error: Database failures
	*/
	Exists(context context.Context, id int) (bool, error)

	/*
		FilterExisting returns the subset of the given IDs that exist.
		Unknown IDs are silently dropped; the result preserves no particular
		order.

		Parameters:
		  - context: context.Context
		  - ids: []int

		Returns:
		  - []int: IDs with a matching book row
		  - error: Database failures
	*/
	FilterExisting(context context.Context, ids []int) ([]int, error)

	// # Comments

	/*
		ListComments returns all comments on a book, newest first.

		Parameters:
		  - context: context.Context
		  - bookID: int

		Returns:
		  - []*Comment: Ordered by pub_date descending
		  - error: Database failures
	*/
	ListComments(context context.Context, bookID int) ([]*Comment, error)

	/*
		FindCommentByID returns a single comment regardless of its book.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - *Comment: The comment row
		  - error: apperr.NotFound if missing
	*/
	FindCommentByID(context context.Context, id int) (*Comment, error)

	/*
		CreateComment persists a new comment and fills in the generated
		ID and publication timestamp.

		Parameters:
		  - context: context.Context
		  - comment: *Comment (BookID, UserUID, Content set by the caller)

		Returns:
		  - error: Storage failures
	*/
	CreateComment(context context.Context, comment *Comment) error

	/*
		DeleteComment removes a comment by ID.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - error: Storage failures
	*/
	DeleteComment(context context.Context, id int) error

	// # Rates

	/*
		FindRate returns the caller's rating of a book, or nil when the
		caller has not rated it. Absence is not an error here; the service
		layer decides how to report it per operation.

		Parameters:
		  - context: context.Context
		  - bookID: int
		  - userUID: string

		Returns:
		  - *Rate: The rating row, or nil
		  - error: Database failures
	*/
	FindRate(context context.Context, bookID int, userUID string) (*Rate, error)

	/*
		CreateRate persists a new rating and fills in the generated ID and
		timestamp.

		Parameters:
		  - context: context.Context
		  - rate: *Rate (BookID, UserUID, Rate set by the caller)

		Returns:
		  - error: Storage failures
	*/
	CreateRate(context context.Context, rate *Rate) error

	/*
		DeleteRate removes a rating by ID.

		Parameters:
		  - context: context.Context
		  - id: int

		Returns:
		  - error: Storage failures
	*/
	DeleteRate(context context.Context, id int) error
}

// UserDirectory materializes user rows for externally-issued subjects.
//
// Write paths hold a foreign key to jbook.user, but a valid token may belong
// to a subject that has never touched this service before. EnsureUser makes
// the row exist before the dependent insert runs.
type UserDirectory interface {
	EnsureUser(context context.Context, uid, username string) error
}
