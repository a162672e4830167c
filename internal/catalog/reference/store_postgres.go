// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/jbook/internal/platform/database/schema"
	"github.com/taibuivan/jbook/internal/platform/dberr"
)

// # PostgreSQL Repository

// referenceRepository implements the [Repository] interface using pgx.
type referenceRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed reference store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &referenceRepository{pool: pool}
}

// listNames collects a single text column, used by both tag namespaces.
func (repository *referenceRepository) listNames(context context.Context, query, action string) ([]string, error) {
	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// # Tag Namespaces

func (repository *referenceRepository) ListBookTags(context context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		schema.BookTag.Name, schema.BookTag.Table, schema.BookTag.Name)
	return repository.listNames(context, query, "reference.list_book_tags")
}

func (repository *referenceRepository) ListShelfTags(context context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		schema.ShelfTag.Name, schema.ShelfTag.Table, schema.ShelfTag.Name)
	return repository.listNames(context, query, "reference.list_shelf_tags")
}

// # Lookup Listings

func (repository *referenceRepository) ListAuthors(context context.Context) ([]*Author, error) {

	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s ORDER BY %s",
		schema.BookAuthor.ID, schema.BookAuthor.Name, schema.BookAuthor.Slug,
		schema.BookAuthor.Table, schema.BookAuthor.Name)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "reference.list_authors")
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		entity := &Author{}
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Slug); err != nil {
			return nil, dberr.Wrap(err, "reference.list_authors")
		}
		authors = append(authors, entity)
	}

	return authors, rows.Err()
}

func (repository *referenceRepository) ListCategories(context context.Context) ([]*Category, error) {

	// Most used categories first, name as the tie-break
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s ORDER BY %s DESC, %s",
		schema.BookCategory.ID, schema.BookCategory.Name, schema.BookCategory.Slug, schema.BookCategory.Popularity,
		schema.BookCategory.Table, schema.BookCategory.Popularity, schema.BookCategory.Name)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "reference.list_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		entity := &Category{}
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Slug, &entity.Popularity); err != nil {
			return nil, dberr.Wrap(err, "reference.list_categories")
		}
		categories = append(categories, entity)
	}

	return categories, rows.Err()
}

func (repository *referenceRepository) ListPublishers(context context.Context) ([]*Publisher, error) {

	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s ORDER BY %s",
		schema.BookPublisher.ID, schema.BookPublisher.Name, schema.BookPublisher.Slug,
		schema.BookPublisher.Table, schema.BookPublisher.Name)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "reference.list_publishers")
	}
	defer rows.Close()

	var publishers []*Publisher
	for rows.Next() {
		entity := &Publisher{}
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.Slug); err != nil {
			return nil, dberr.Wrap(err, "reference.list_publishers")
		}
		publishers = append(publishers, entity)
	}

	return publishers, rows.Err()
}

// # Lookup Creation

func (repository *referenceRepository) CreateAuthor(context context.Context, author *Author) error {

	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s",
		schema.BookAuthor.Table, schema.BookAuthor.Name, schema.BookAuthor.Slug, schema.BookAuthor.ID)

	err := repository.pool.QueryRow(context, query, author.Name, author.Slug).Scan(&author.ID)
	return dberr.Wrap(err, "reference.create_author")
}

func (repository *referenceRepository) CreateCategory(context context.Context, category *Category) error {

	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s, %s",
		schema.BookCategory.Table, schema.BookCategory.Name, schema.BookCategory.Slug,
		schema.BookCategory.ID, schema.BookCategory.Popularity)

	err := repository.pool.QueryRow(context, query, category.Name, category.Slug).
		Scan(&category.ID, &category.Popularity)
	return dberr.Wrap(err, "reference.create_category")
}

func (repository *referenceRepository) CreatePublisher(context context.Context, publisher *Publisher) error {

	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) RETURNING %s",
		schema.BookPublisher.Table, schema.BookPublisher.Name, schema.BookPublisher.Slug, schema.BookPublisher.ID)

	err := repository.pool.QueryRow(context, query, publisher.Name, publisher.Slug).Scan(&publisher.ID)
	return dberr.Wrap(err, "reference.create_publisher")
}
