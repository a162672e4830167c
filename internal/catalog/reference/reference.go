// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the shared lookup vocabularies of the catalogue:
authors, categories, publishers and the two tag namespaces.

Listings are public and unpaginated; the vocabularies are small and clients
cache them. Creation is restricted to administrators and generates
SEO-friendly slugs from the given names.
*/
package reference

// Author is a book author lookup entry.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Category is a book category lookup entry. Popularity orders the public
// listing so the most used categories surface first.
type Category struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Popularity int    `json:"popularity"`
}

// Publisher is a book publisher lookup entry.
type Publisher struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Field name constants shared by validation error details.
const (
	FieldName = "name"

	// MaxNameLen bounds lookup entry names.
	MaxNameLen = 200
)
