// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import "context"

// # Shelf Data Access

// Repository defines the data access contract for the shelf domain.
type Repository interface {

	/*
		List returns a filtered, sorted, paginated slice of public shelves.
		Private shelves never appear regardless of the caller.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Tag axis and resolved sort spec)
		  - callerUID: *string (nil when anonymous; drives the user_rate
		    annotation)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Shelf: Slice of rating-annotated shelf entities
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, callerUID *string, limit, offset int) ([]*Shelf, error)

	/*
		ListOwned returns every shelf of one owner, both visibilities.

		Parameters:
		  - context: context.Context
		  - ownerUID: string
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Shelf: The owner's shelves, rating-annotated for the owner
		  - error: Database retrieval failures
	*/
	ListOwned(context context.Context, ownerUID string, filter Filter, limit, offset int) ([]*Shelf, error)

	/*
		FindByUID returns the rating-annotated shelf with the given UID.
		Visibility is not enforced here; the service layer gates access.

		Parameters:
		  - context: context.Context
		  - uid: string
		  - callerUID: *string (nil when anonymous)

		Returns:
		  - *Shelf: The hydrated entity including tags and placements
		  - error: apperr.NotFound if missing
	*/
	FindByUID(context context.Context, uid string, callerUID *string) (*Shelf, error)

	/*
		Create persists a new shelf aggregate in a single transaction.

		Description: Tag names already present in the shelf tag catalogue
		are reused (exact, case-sensitive match); the rest are created. One
		placement row is written per entry of bookIDs, which the caller has
		already reduced to known books.

		Parameters:
		  - context: context.Context
		  - shelf: *Shelf (UID set by the caller; Tags holds the desired
		    tag names)
		  - bookIDs: []int

		Returns:
		  - error: Database execution errors
	*/
	Create(context context.Context, shelf *Shelf, bookIDs []int) error

	/*
		FindPlacementByID returns a single book placement.

		Returns:
		  - *BookInShelf: The placement with its tag set
		  - error: apperr.NotFound if missing
	*/
	FindPlacementByID(context context.Context, id int) (*BookInShelf, error)

	/*
		AddPlacement writes a new placement row, backfilling its ID.
	*/
	AddPlacement(context context.Context, placement *BookInShelf) error

	/*
		RemovePlacement deletes a placement and its tag links.
	*/
	RemovePlacement(context context.Context, id int) error

	/*
		ReplacePlacementTags swaps a placement's tag set atomically.

		Description: Wipe-and-insert in one transaction: existing links are
		removed, tag names are resolved against the placement tag catalogue
		(creating the missing ones), and fresh links are written.
	*/
	ReplacePlacementTags(context context.Context, placementID int, tags []string) error

	/*
		ListComments returns every comment attached to a shelf, newest
		first.
	*/
	ListComments(context context.Context, shelfUID string) ([]*Comment, error)

	/*
		FindCommentByID returns a single comment.

		Returns:
		  - *Comment: The comment entity
		  - error: apperr.NotFound if missing
	*/
	FindCommentByID(context context.Context, id int) (*Comment, error)

	/*
		CreateComment persists a new comment, backfilling ID and PubDate.
	*/
	CreateComment(context context.Context, comment *Comment) error

	/*
		DeleteComment removes a comment by its primary key.
	*/
	DeleteComment(context context.Context, id int) error

	/*
		FindRate returns a reader's rating for a shelf, or (nil, nil) when
		the reader has not rated it.
	*/
	FindRate(context context.Context, shelfUID, userUID string) (*Rate, error)

	/*
		CreateRate persists a new rating, backfilling its ID.
	*/
	CreateRate(context context.Context, rate *Rate) error

	/*
		DeleteRate removes a rating by its primary key.
	*/
	DeleteRate(context context.Context, id int) error
}

// BookCatalog is the narrow view of the book domain the shelf service
// needs for placement validation.
type BookCatalog interface {
	Exists(context context.Context, id int) (bool, error)
	FilterExisting(context context.Context, ids []int) ([]int, error)
}

// UserDirectory materialises local profiles for externally-issued subjects
// before rows referencing the user FK are written.
type UserDirectory interface {
	EnsureUser(context context.Context, uid, username string) error
}
