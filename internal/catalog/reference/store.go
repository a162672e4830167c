// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// # Reference Data Access

// Repository defines the data access contract for the lookup vocabularies.
type Repository interface {

	/*
		ListBookTags returns every book tag name, alphabetically.
	*/
	ListBookTags(context context.Context) ([]string, error)

	/*
		ListShelfTags returns every shelf tag name, alphabetically.
	*/
	ListShelfTags(context context.Context) ([]string, error)

	/*
		ListAuthors returns every author, alphabetically by name.
	*/
	ListAuthors(context context.Context) ([]*Author, error)

	/*
		ListCategories returns every category, most popular first.
	*/
	ListCategories(context context.Context) ([]*Category, error)

	/*
		ListPublishers returns every publisher, alphabetically by name.
	*/
	ListPublishers(context context.Context) ([]*Publisher, error)

	/*
		CreateAuthor persists a new author, backfilling its ID.

		Returns:
		  - error: apperr.Conflict on a duplicate name or slug
	*/
	CreateAuthor(context context.Context, author *Author) error

	/*
		CreateCategory persists a new category, backfilling its ID.
	*/
	CreateCategory(context context.Context, category *Category) error

	/*
		CreatePublisher persists a new publisher, backfilling its ID.
	*/
	CreatePublisher(context context.Context, publisher *Publisher) error
}
