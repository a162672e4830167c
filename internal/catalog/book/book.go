// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book defines the core domain entities for the JBook catalogue.

It manages the lifecycle of published books including metadata, reference
associations (authors, categories, publishers, tags), and the social layer
of reader comments and ratings.

Core Responsibility:

  - Catalogue: Defines the book aggregate and its reference associations.
  - Discovery: Filtered, sorted, paginated listings over four filter axes.
  - Social: Comments and single-vote ratings with ownership guards.

This package acts as the source of truth for all book-related data models.
*/
package book

import (
	"time"

	"github.com/taibuivan/jbook/internal/platform/sortspec"
)

// # Core Entities

// Book is the central aggregate of the JBook catalogue.
type Book struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Annotation  *string   `json:"annotation,omitempty"`
	PubDate     time.Time `json:"pub_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// # Hydrated Associations
	Publisher  *Publisher `json:"publisher,omitempty"`
	Authors    []Author   `json:"authors"`
	Categories []Category `json:"categories"`
	Tags       []string   `json:"tags"`
	Images     []Image    `json:"images"`

	// # Rating Annotations
	// Rate is the average of all reader ratings; nil when the book has none.
	// UserRate is the calling reader's own rating; nil when anonymous or unrated.
	Rate     *float64 `json:"rate"`
	UserRate *int     `json:"user_rate"`
}

// Author is the author association as it appears in book payloads.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Category is the category association as it appears in book payloads.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Publisher is the publisher association as it appears in book payloads.
type Publisher struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Image represents a cover or illustration attached to a [Book].
type Image struct {
	ID      int    `json:"id"`
	Src     string `json:"src"`
	AltText string `json:"alt_text"`
	IsMain  bool   `json:"is_main"`
}

// # Social Entities

// Comment is a reader comment attached to a [Book].
type Comment struct {
	ID      int       `json:"id"`
	BookID  int       `json:"book_id"`
	UserUID string    `json:"user_uid"`
	Content string    `json:"content"`
	PubDate time.Time `json:"pub_date"`
}

// Rate is a single reader's rating of a [Book]. A reader holds at most one
// rating per book; the application enforces this, not the schema.
type Rate struct {
	ID      int       `json:"id"`
	BookID  int       `json:"book_id"`
	UserUID string    `json:"user_uid"`
	Rate    int       `json:"rate"`
	RatedAt time.Time `json:"rated_at"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered book list query.
//
// A nil axis slice means the axis is not filtered at all; an empty non-nil
// slice would match nothing, so parsers never produce one. Values within an
// axis are ORed, the axes themselves are ANDed.
type Filter struct {
	Tags       []string      `json:"tags,omitempty"`
	Categories []int         `json:"categories,omitempty"`
	Authors    []int         `json:"authors,omitempty"`
	Publishers []int         `json:"publishers,omitempty"`
	Sort       sortspec.Spec `json:"-"`
}

// SortKeys is the allow-list of sort_by keys accepted by book listings.
var SortKeys = []string{"title", "rate", "pub_date", "created_at"}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID      = "id"
	FieldTitle   = "title"
	FieldContent = "content"
	FieldRate    = "rate"
	FieldBookID  = "book_id"

	// RateMin and RateMax bound accepted rating values.
	RateMin = 1
	RateMax = 5

	// MaxCommentLen bounds comment content length.
	MaxCommentLen = 4000
)
