// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package shelf defines the reader-curated collection domain of JBook.

A shelf is a named, taggable collection of books owned by a single reader.
Shelves carry a visibility setting: public shelves appear in the shared
catalogue, private shelves are visible to their owner only. Each book on a
shelf is a distinct placement that can carry its own tag set, so the same
book may appear on one shelf more than once.

Core Responsibility:

  - Curation: Shelf lifecycle and book placement management.
  - Discovery: Tag-filtered, sorted, paginated public listings.
  - Social: Comments and single-vote ratings with ownership guards.
*/
package shelf

import (
	"time"

	"github.com/taibuivan/jbook/internal/platform/sortspec"
)

// # Visibility

// Visibility controls who may see a shelf.
type Visibility string

const (
	// VisibilityPublic shelves appear in the shared catalogue.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate shelves are visible to their owner only.
	VisibilityPrivate Visibility = "private"
)

// # Core Entities

// Shelf is the aggregate root of a reader-curated collection.
type Shelf struct {
	UID         string     `json:"uid"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Type        Visibility `json:"type"`
	AvatarID    *int       `json:"avatar_id"`
	UserUID     string     `json:"user_uid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Associations hydrated by the repository layer.
	Tags  []string      `json:"tags"`
	Books []BookInShelf `json:"books"`

	// Rate is the average of all reader ratings, nil when unrated.
	Rate *float64 `json:"rate"`
	// UserRate is the calling reader's own rating, nil when anonymous
	// or unrated.
	UserRate *int `json:"user_rate"`
}

// BookInShelf is a single placement of a book on a shelf. Placements are
// identified by their own ID rather than the (shelf, book) pair.
type BookInShelf struct {
	ID       int      `json:"id"`
	BookID   int      `json:"book_id"`
	ShelfUID string   `json:"shelf_uid"`
	Tags     []string `json:"tags"`
}

// Comment is a reader remark attached to a shelf.
type Comment struct {
	ID       int       `json:"id"`
	ShelfUID string    `json:"shelf_uid"`
	UserUID  string    `json:"user_uid"`
	Content  string    `json:"content"`
	PubDate  time.Time `json:"pub_date"`
}

// Rate is a reader's single vote on a shelf. Shelf ratings carry no
// timestamp; the data model never recorded one.
type Rate struct {
	ID       int    `json:"id"`
	ShelfUID string `json:"shelf_uid"`
	UserUID  string `json:"user_uid"`
	Rate     int    `json:"rate"`
}

// # Filtering

// Filter captures the parsed listing criteria. A nil Tags slice means the
// axis is not filtered; an empty non-nil slice never reaches the repository.
type Filter struct {
	Tags []string
	Sort sortspec.Spec
}

// SortKeys is the allow-list for the shelf listing sort_by parameter.
var SortKeys = []string{"name", "rate", "created_at"}

// # Field Identifiers

// Field name constants shared by validation error details.
const (
	FieldName    = "name"
	FieldType    = "type"
	FieldContent = "content"
	FieldRate    = "rate"
	FieldBookID  = "book_id"

	// RateMin and RateMax bound accepted rating values.
	RateMin = 1
	RateMax = 5

	// MaxNameLen bounds shelf names.
	MaxNameLen = 200
	// MaxCommentLen bounds comment content length.
	MaxCommentLen = 4000
)
