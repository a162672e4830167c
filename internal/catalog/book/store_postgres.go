// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book provides the PostgreSQL implementation for the catalogue's data access.

It utilizes advanced Postgres features to deliver a high-performance discovery experience:
  - JSON Aggregation: Retrieves complex nested data (authors, categories, tags,
    publisher, images) in a single round-trip.
  - Derived Rating Joins: LEFT JOINs against aggregated and caller-scoped rating
    sub-selects annotate every row without N+1 queries.
  - Set Operations: Uses ANY($n) within EXISTS predicates for axis filtering.

The repository follows an "Aggregate" pattern where sub-resources are managed
through the main repository instance to maintain domain integrity.
*/
package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/database/schema"
	"github.com/taibuivan/jbook/internal/platform/sortspec"
)

// # PostgreSQL Repositories

// bookRepository implements the [Repository] interface using pgx.
type bookRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed book store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &bookRepository{pool: pool}
}

// # Query Fragments

// selectColumns renders the shared SELECT list for book hydration queries.
// $1 is always reserved for the caller UID feeding the user_rate annotation.
func selectColumns() string {
	return fmt.Sprintf(`
		SELECT
			b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
			avg_rate.rate, user_rate.user_rate,
			(
				SELECT json_build_object('id', p.%s, 'name', p.%s, 'slug', p.%s)
				FROM %s p
				WHERE p.%s = b.%s
			) AS publisher,
			COALESCE((
				SELECT json_agg(json_build_object('id', a.%s, 'name', a.%s, 'slug', a.%s))
				FROM %s a
				JOIN %s ba ON a.%s = ba.%s
				WHERE ba.%s = b.%s
			), '[]') AS authors,
			COALESCE((
				SELECT json_agg(json_build_object('id', c.%s, 'name', c.%s, 'slug', c.%s))
				FROM %s c
				JOIN %s bc ON c.%s = bc.%s
				WHERE bc.%s = b.%s
			), '[]') AS categories,
			COALESCE((
				SELECT json_agg(bt.%s)
				FROM %s bt
				WHERE bt.%s = b.%s
			), '[]') AS tags,
			COALESCE((
				SELECT json_agg(json_build_object('id', i.%s, 'src', i.%s, 'alt_text', i.%s, 'is_main', i.%s))
				FROM %s i
				WHERE i.%s = b.%s
			), '[]') AS images
		FROM %s b
		LEFT JOIN (
			SELECT %s, AVG(%s)::float8 AS rate
			FROM %s
			GROUP BY %s
		) avg_rate ON avg_rate.%s = b.%s
		LEFT JOIN (
			SELECT %s, %s AS user_rate
			FROM %s
			WHERE %s = $1
		) user_rate ON user_rate.%s = b.%s
	`,
		schema.Book.ID, schema.Book.Title, schema.Book.Description, schema.Book.Annotation,
		schema.Book.PubDate, schema.Book.CreatedAt, schema.Book.UpdatedAt,
		schema.BookPublisher.ID, schema.BookPublisher.Name, schema.BookPublisher.Slug,
		schema.BookPublisher.Table,
		schema.BookPublisher.ID, schema.Book.PublisherID,
		schema.BookAuthor.ID, schema.BookAuthor.Name, schema.BookAuthor.Slug,
		schema.BookAuthor.Table,
		schema.BookBookAuthor.Table, schema.BookAuthor.ID, schema.BookBookAuthor.BookAuthorID,
		schema.BookBookAuthor.BookID, schema.Book.ID,
		schema.BookCategory.ID, schema.BookCategory.Name, schema.BookCategory.Slug,
		schema.BookCategory.Table,
		schema.BookBookCategory.Table, schema.BookCategory.ID, schema.BookBookCategory.CategoryID,
		schema.BookBookCategory.BookID, schema.Book.ID,
		schema.BookBookTag.BookTag,
		schema.BookBookTag.Table,
		schema.BookBookTag.BookID, schema.Book.ID,
		schema.BookImage.ID, schema.BookImage.Src, schema.BookImage.AltText, schema.BookImage.IsMain,
		schema.BookImage.Table,
		schema.BookImage.BookID, schema.Book.ID,
		schema.Book.Table,
		schema.BookRate.BookID, schema.BookRate.Rate,
		schema.BookRate.Table,
		schema.BookRate.BookID,
		schema.BookRate.BookID, schema.Book.ID,
		schema.BookRate.BookID, schema.BookRate.Rate,
		schema.BookRate.Table,
		schema.BookRate.UserUID,
		schema.BookRate.BookID, schema.Book.ID,
	)
}

// sortColumn maps a resolved sort key to its qualified SQL expression.
// Keys are already validated against [SortKeys] by the resolver.
func sortColumn(spec sortspec.Spec) string {
	switch spec.Column {
	case "rate":
		return "avg_rate.rate"
	case "title":
		return "b." + schema.Book.Title
	case "pub_date":
		return "b." + schema.Book.PubDate
	default:
		return "b." + schema.Book.CreatedAt
	}
}

// scanBook reads one hydrated book row, shared between List and FindByID.
func scanBook(row pgx.Row) (*Book, error) {
	entity := &Book{}
	var publisherJSON, authorsJSON, categoriesJSON, tagsJSON, imagesJSON []byte

	err := row.Scan(
		&entity.ID,
		&entity.Title,
		&entity.Description,
		&entity.Annotation,
		&entity.PubDate,
		&entity.CreatedAt,
		&entity.UpdatedAt,
		&entity.Rate,
		&entity.UserRate,
		&publisherJSON,
		&authorsJSON,
		&categoriesJSON,
		&tagsJSON,
		&imagesJSON,
	)
	if err != nil {
		return nil, err
	}

	// Publisher is a single object or SQL NULL.
	if publisherJSON != nil {
		if err := json.Unmarshal(publisherJSON, &entity.Publisher); err != nil {
			return nil, fmt.Errorf("postgres: failed to unmarshal publisher: %w", err)
		}
	}
	if err := json.Unmarshal(authorsJSON, &entity.Authors); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal authors: %w", err)
	}
	if err := json.Unmarshal(categoriesJSON, &entity.Categories); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal categories: %w", err)
	}
	if err := json.Unmarshal(tagsJSON, &entity.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal tags: %w", err)
	}
	if err := json.Unmarshal(imagesJSON, &entity.Images); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal images: %w", err)
	}

	return entity, nil
}

// # Book Repository Implementation

/*
List returns a filtered, sorted, paginated slice of books.

Description: Axis predicates are appended dynamically: values within an axis
are matched with ANY (OR semantics), the axes themselves accumulate as AND
conjuncts. Junction-backed axes (tags, categories, authors) use EXISTS
sub-queries; the publisher axis matches the column directly. Two LEFT JOINs
annotate every row with the average rating and the caller's own rating
without disturbing the filtered row set.

Parameters:
  - context: context.Context
  - filter: Filter (Axes and resolved sort spec)
  - callerUID: *string (nil for anonymous callers; the user_rate join then
    matches nothing and the annotation stays NULL)
  - limit: int
  - offset: int

Returns:
  - []*Book: Slice of hydrated, rating-annotated book entities
  - error: Database execution errors
*/
func (repository *bookRepository) List(context context.Context, filter Filter, callerUID *string, limit, offset int) ([]*Book, error) {

	query, args := buildListQuery(filter, callerUID, limit, offset)

	// Query Execution
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list books: %w", err)
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		entity, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan book: %w", err)
		}
		books = append(books, entity)
	}

	return books, rows.Err()
}

// buildListQuery renders the filtered listing SQL and its positional args.
// Axes AND together; values within an axis OR via `= ANY`. $1 always carries
// the caller UID for the user_rate annotation join.
func buildListQuery(filter Filter, callerUID *string, limit, offset int) (string, []any) {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectColumns())
	queryBuilder.WriteString(" WHERE 1=1")

	args := []any{callerUID}
	argID := 2

	// Tag axis (names via the book/tag junction)
	if len(filter.Tags) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s ft WHERE ft.%s = b.%s AND ft.%s = ANY($%d))",
			schema.BookBookTag.Table, schema.BookBookTag.BookID, schema.Book.ID,
			schema.BookBookTag.BookTag, argID,
		))
		args = append(args, filter.Tags)
		argID++
	}

	// Category axis (ids via the book/category junction)
	if len(filter.Categories) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s fc WHERE fc.%s = b.%s AND fc.%s = ANY($%d))",
			schema.BookBookCategory.Table, schema.BookBookCategory.BookID, schema.Book.ID,
			schema.BookBookCategory.CategoryID, argID,
		))
		args = append(args, filter.Categories)
		argID++
	}

	// Author axis (ids via the book/author junction)
	if len(filter.Authors) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s fa WHERE fa.%s = b.%s AND fa.%s = ANY($%d))",
			schema.BookBookAuthor.Table, schema.BookBookAuthor.BookID, schema.Book.ID,
			schema.BookBookAuthor.BookAuthorID, argID,
		))
		args = append(args, filter.Authors)
		argID++
	}

	// Publisher axis (direct column, no junction)
	if len(filter.Publishers) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND b.%s = ANY($%d)", schema.Book.PublisherID, argID))
		args = append(args, filter.Publishers)
		argID++
	}

	// Apply the resolved sort; ties are left to the planner
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", sortColumn(filter.Sort), filter.Sort.Direction))

	// Pagination injection
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	return queryBuilder.String(), args
}

/*
FindByID retrieves a single rating-annotated book by its primary key.

Parameters:
  - context: context.Context
  - id: int
  - callerUID: *string (nil when anonymous)

Returns:
  - *Book: The fully hydrated entity including associations
  - error: apperr.NotFound if the book does not exist
*/
func (repository *bookRepository) FindByID(context context.Context, id int, callerUID *string) (*Book, error) {

	query := selectColumns() + fmt.Sprintf(" WHERE b.%s = $2", schema.Book.ID)

	entity, err := scanBook(repository.pool.QueryRow(context, query, callerUID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book")
		}
		return nil, fmt.Errorf("postgres: failed to find book by id: %w", err)
	}

	return entity, nil
}

/*
Exists reports whether a book row with the given ID exists.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - bool: true when present
  - error: Database failures
*/
func (repository *bookRepository) Exists(context context.Context, id int) (bool, error) {

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)", schema.Book.Table, schema.Book.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: failed to check book existence: %w", err)
	}

	return exists, nil
}

/*
FilterExisting returns the subset of the given IDs that have a book row.

Description: Used by the shelf aggregate creation flow, which silently drops
unknown book IDs rather than failing the whole request.

Parameters:
  - context: context.Context
  - ids: []int

Returns:
  - []int: IDs with a matching row
  - error: Database failures
*/
func (repository *bookRepository) FilterExisting(context context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ANY($1)", schema.Book.ID, schema.Book.Table, schema.Book.ID)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to filter existing books: %w", err)
	}
	defer rows.Close()

	var existing []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan book id: %w", err)
		}
		existing = append(existing, id)
	}

	return existing, rows.Err()
}
