// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package shelf provides the PostgreSQL implementation for shelf data access.

It utilizes advanced Postgres features to deliver the curated-collection experience:
  - JSON Aggregation: Retrieves tags and book placements (with their own
    nested tag sets) in a single round-trip.
  - Derived Rating Joins: LEFT JOINs against aggregated and caller-scoped
    rating sub-selects annotate every row without N+1 queries.
  - ACID Transactions: Shelf aggregate creation and placement tag
    replacement run as atomic wipe-and-insert sequences.

The repository follows an "Aggregate" pattern where sub-resources are managed
through the main repository instance to maintain domain integrity.
*/
package shelf

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

// shelfRepository implements the [Repository] interface using pgx.
type shelfRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed shelf store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &shelfRepository{pool: pool}
}

// # Query Fragments

// selectColumns renders the shared SELECT list for shelf hydration queries.
// $1 is always reserved for the caller UID feeding the user_rate annotation.
func selectColumns() string {
	return fmt.Sprintf(`
		SELECT
			s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s, s.%s,
			avg_rate.rate, user_rate.user_rate,
			COALESCE((
				SELECT json_agg(st.%s)
				FROM %s st
				WHERE st.%s = s.%s
			), '[]') AS tags,
			COALESCE((
				SELECT json_agg(json_build_object(
					'id', bis.%s,
					'book_id', bis.%s,
					'shelf_uid', bis.%s,
					'tags', COALESCE((
						SELECT json_agg(bt.%s)
						FROM %s bt
						JOIN %s l ON bt.%s = l.%s
						WHERE l.%s = bis.%s
					), '[]')
				))
				FROM %s bis
				WHERE bis.%s = s.%s
			), '[]') AS books
		FROM %s s
		LEFT JOIN (
			SELECT %s, AVG(%s)::float8 AS rate
			FROM %s
			GROUP BY %s
		) avg_rate ON avg_rate.%s = s.%s
		LEFT JOIN (
			SELECT %s, %s AS user_rate
			FROM %s
			WHERE %s = $1
		) user_rate ON user_rate.%s = s.%s
	`,
		schema.Shelf.UID, schema.Shelf.Name, schema.Shelf.Description, schema.Shelf.Type,
		schema.Shelf.AvatarID, schema.Shelf.UserUID, schema.Shelf.CreatedAt, schema.Shelf.UpdatedAt,
		schema.ShelfShelfTag.ShelfTag,
		schema.ShelfShelfTag.Table,
		schema.ShelfShelfTag.ShelfUID, schema.Shelf.UID,
		schema.BookInShelf.ID,
		schema.BookInShelf.BookID,
		schema.BookInShelf.ShelfUID,
		schema.BookInShelfTag.Name,
		schema.BookInShelfTag.Table,
		schema.BookInShelfTagLink.Table, schema.BookInShelfTag.ID, schema.BookInShelfTagLink.BookInShelfTagID,
		schema.BookInShelfTagLink.BookInShelf, schema.BookInShelf.ID,
		schema.BookInShelf.Table,
		schema.BookInShelf.ShelfUID, schema.Shelf.UID,
		schema.Shelf.Table,
		schema.ShelfRate.ShelfUID, schema.ShelfRate.Rate,
		schema.ShelfRate.Table,
		schema.ShelfRate.ShelfUID,
		schema.ShelfRate.ShelfUID, schema.Shelf.UID,
		schema.ShelfRate.ShelfUID, schema.ShelfRate.Rate,
		schema.ShelfRate.Table,
		schema.ShelfRate.UserUID,
		schema.ShelfRate.ShelfUID, schema.Shelf.UID,
	)
}

// sortColumn maps a resolved sort key to its qualified SQL expression.
// Keys are already validated against [SortKeys] by the resolver.
func sortColumn(spec sortspec.Spec) string {
	switch spec.Column {
	case "rate":
		return "avg_rate.rate"
	case "name":
		return "s." + schema.Shelf.Name
	default:
		return "s." + schema.Shelf.CreatedAt
	}
}

// scanShelf reads one hydrated shelf row, shared between the listing and
// single-retrieval paths.
func scanShelf(row pgx.Row) (*Shelf, error) {
	entity := &Shelf{}
	var tagsJSON, booksJSON []byte

	err := row.Scan(
		&entity.UID,
		&entity.Name,
		&entity.Description,
		&entity.Type,
		&entity.AvatarID,
		&entity.UserUID,
		&entity.CreatedAt,
		&entity.UpdatedAt,
		&entity.Rate,
		&entity.UserRate,
		&tagsJSON,
		&booksJSON,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &entity.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal shelf tags: %w", err)
	}
	if err := json.Unmarshal(booksJSON, &entity.Books); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal shelf books: %w", err)
	}

	return entity, nil
}

// listShelves runs a hydration query and collects the result set.
func (repository *shelfRepository) listShelves(context context.Context, query string, args []any) ([]*Shelf, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list shelves: %w", err)
	}
	defer rows.Close()

	var shelves []*Shelf
	for rows.Next() {
		entity, err := scanShelf(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan shelf: %w", err)
		}
		shelves = append(shelves, entity)
	}

	return shelves, rows.Err()
}

// # Shelf Repository Implementation

/*
List returns a filtered, sorted, paginated slice of public shelves.

Description: The public listing hard-wires type = 'public'; private shelves
never appear here regardless of who asks. The tag axis matches any of the
given names via an EXISTS sub-query over the shelf/tag junction.

Parameters:
  - context: context.Context
  - filter: Filter
  - callerUID: *string (nil for anonymous callers)
  - limit: int
  - offset: int

Returns:
  - []*Shelf: Slice of hydrated, rating-annotated shelf entities
  - error: Database execution errors
*/
func (repository *shelfRepository) List(context context.Context, filter Filter, callerUID *string, limit, offset int) ([]*Shelf, error) {
	query, args := buildPublicListQuery(filter, callerUID, limit, offset)
	return repository.listShelves(context, query, args)
}

// buildPublicListQuery renders the public listing SQL: the type = 'public'
// predicate is embedded unconditionally, the tag axis ORs its names via
// `= ANY`, and $1 carries the caller UID for the user_rate annotation join.
func buildPublicListQuery(filter Filter, callerUID *string, limit, offset int) (string, []any) {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectColumns())
	queryBuilder.WriteString(fmt.Sprintf(" WHERE s.%s = $2", schema.Shelf.Type))

	args := []any{callerUID, VisibilityPublic}
	appendListTail(&queryBuilder, &args, filter, limit, offset)

	return queryBuilder.String(), args
}

// appendListTail writes the shared listing suffix: the optional tag-axis
// EXISTS conjunct, the resolved sort, and pagination placeholders.
func appendListTail(queryBuilder *strings.Builder, args *[]any, filter Filter, limit, offset int) {
	argID := len(*args) + 1

	// Tag axis (names via the shelf/tag junction)
	if len(filter.Tags) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM %s ft WHERE ft.%s = s.%s AND ft.%s = ANY($%d))",
			schema.ShelfShelfTag.Table, schema.ShelfShelfTag.ShelfUID, schema.Shelf.UID,
			schema.ShelfShelfTag.ShelfTag, argID,
		))
		*args = append(*args, filter.Tags)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", sortColumn(filter.Sort), filter.Sort.Direction))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	*args = append(*args, limit, offset)
}

/*
ListOwned returns every shelf of one owner, both visibilities.

Description: The owner is also the annotation caller, so their own ratings
come back on their shelves.

Parameters:
  - context: context.Context
  - ownerUID: string
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Shelf: The owner's shelves
  - error: Database execution errors
*/
func (repository *shelfRepository) ListOwned(context context.Context, ownerUID string, filter Filter, limit, offset int) ([]*Shelf, error) {
	query, args := buildOwnedListQuery(ownerUID, filter, limit, offset)
	return repository.listShelves(context, query, args)
}

// buildOwnedListQuery renders the owner-scoped listing SQL: both
// visibilities, owner as the annotation caller.
func buildOwnedListQuery(ownerUID string, filter Filter, limit, offset int) (string, []any) {

	var queryBuilder strings.Builder
	queryBuilder.WriteString(selectColumns())
	queryBuilder.WriteString(fmt.Sprintf(" WHERE s.%s = $2", schema.Shelf.UserUID))

	args := []any{ownerUID, ownerUID}
	appendListTail(&queryBuilder, &args, filter, limit, offset)

	return queryBuilder.String(), args
}

/*
FindByUID retrieves a single rating-annotated shelf by its UID.

Parameters:
  - context: context.Context
  - uid: string
  - callerUID: *string (nil when anonymous)

Returns:
  - *Shelf: The fully hydrated entity including tags and placements
  - error: apperr.NotFound if the shelf does not exist
*/
func (repository *shelfRepository) FindByUID(context context.Context, uid string, callerUID *string) (*Shelf, error) {

	query := selectColumns() + fmt.Sprintf(" WHERE s.%s = $2", schema.Shelf.UID)

	entity, err := scanShelf(repository.pool.QueryRow(context, query, callerUID, uid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Shelf")
		}
		return nil, fmt.Errorf("postgres: failed to find shelf by uid: %w", err)
	}

	return entity, nil
}

/*
Create persists a new shelf aggregate in a single transaction.

Description: Writes the shelf row, then synchronizes the tag catalogue
(existing names are reused via ON CONFLICT DO NOTHING, missing ones are
created) and the shelf/tag junction in one pgx.Batch, and finally writes
one placement row per surviving book ID. createdat/updatedat come back
from the database so the entity reflects the stored row.

Parameters:
  - context: context.Context
  - shelf: *Shelf (UID pre-generated; Tags holds the desired tag names)
  - bookIDs: []int (already reduced to known books by the caller)

Returns:
  - error: Database execution errors; the transaction is rolled back on any
    failure
*/
func (repository *shelfRepository) Create(context context.Context, shelf *Shelf, bookIDs []int) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// Root shelf row
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.Shelf.Table,
		schema.Shelf.UID, schema.Shelf.Name, schema.Shelf.Description, schema.Shelf.Type, schema.Shelf.UserUID,
		schema.Shelf.CreatedAt, schema.Shelf.UpdatedAt,
	)

	err = transaction.QueryRow(context, query,
		shelf.UID,
		shelf.Name,
		shelf.Description,
		shelf.Type,
		shelf.UserUID,
	).Scan(&shelf.CreatedAt, &shelf.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres: failed to create shelf: %w", err)
	}

	// Tag catalogue sync + junction links
	if len(shelf.Tags) > 0 {
		ensureTag := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES ($1) ON CONFLICT (%s) DO NOTHING",
			schema.ShelfTag.Table, schema.ShelfTag.Name, schema.ShelfTag.Name,
		)
		linkTag := fmt.Sprintf(
			"INSERT INTO %s (%s, %s) VALUES ($1, $2)",
			schema.ShelfShelfTag.Table, schema.ShelfShelfTag.ShelfUID, schema.ShelfShelfTag.ShelfTag,
		)

		batch := &pgx.Batch{}
		for _, tag := range shelf.Tags {
			batch.Queue(ensureTag, tag)
			batch.Queue(linkTag, shelf.UID, tag)
		}
		if err := transaction.SendBatch(context, batch).Close(); err != nil {
			return fmt.Errorf("postgres: failed to batch insert shelf tags: %w", err)
		}
	}

	// Book placements
	if len(bookIDs) > 0 {
		placement := fmt.Sprintf(
			"INSERT INTO %s (%s, %s) VALUES ($1, $2)",
			schema.BookInShelf.Table, schema.BookInShelf.ShelfUID, schema.BookInShelf.BookID,
		)

		batch := &pgx.Batch{}
		for _, bookID := range bookIDs {
			batch.Queue(placement, shelf.UID, bookID)
		}
		if err := transaction.SendBatch(context, batch).Close(); err != nil {
			return fmt.Errorf("postgres: failed to batch insert shelf placements: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}

	return nil
}

// # Placement Implementation

/*
FindPlacementByID retrieves a single book placement with its tag set.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *BookInShelf: The placement entity
  - error: apperr.NotFound if the placement does not exist
*/
func (repository *shelfRepository) FindPlacementByID(context context.Context, id int) (*BookInShelf, error) {

	query := fmt.Sprintf(`
		SELECT
			bis.%s, bis.%s, bis.%s,
			COALESCE((
				SELECT json_agg(bt.%s)
				FROM %s bt
				JOIN %s l ON bt.%s = l.%s
				WHERE l.%s = bis.%s
			), '[]') AS tags
		FROM %s bis
		WHERE bis.%s = $1
	`,
		schema.BookInShelf.ID, schema.BookInShelf.BookID, schema.BookInShelf.ShelfUID,
		schema.BookInShelfTag.Name,
		schema.BookInShelfTag.Table,
		schema.BookInShelfTagLink.Table, schema.BookInShelfTag.ID, schema.BookInShelfTagLink.BookInShelfTagID,
		schema.BookInShelfTagLink.BookInShelf, schema.BookInShelf.ID,
		schema.BookInShelf.Table,
		schema.BookInShelf.ID,
	)

	entity := &BookInShelf{}
	var tagsJSON []byte

	err := repository.pool.QueryRow(context, query, id).
		Scan(&entity.ID, &entity.BookID, &entity.ShelfUID, &tagsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Book in shelf")
		}
		return nil, fmt.Errorf("postgres: failed to find placement by id: %w", err)
	}

	if err := json.Unmarshal(tagsJSON, &entity.Tags); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal placement tags: %w", err)
	}

	return entity, nil
}

/*
AddPlacement writes a new placement row and backfills its generated ID.

Parameters:
  - context: context.Context
  - placement: *BookInShelf (ID is populated on success)

Returns:
  - error: Database execution errors
*/
func (repository *shelfRepository) AddPlacement(context context.Context, placement *BookInShelf) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s
	`,
		schema.BookInShelf.Table,
		schema.BookInShelf.ShelfUID, schema.BookInShelf.BookID,
		schema.BookInShelf.ID,
	)

	err := repository.pool.QueryRow(context, query, placement.ShelfUID, placement.BookID).Scan(&placement.ID)
	if err != nil {
		return fmt.Errorf("postgres: failed to add placement: %w", err)
	}

	return nil
}

/*
RemovePlacement deletes a placement together with its tag links.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: apperr.NotFound if no placement row was deleted
*/
func (repository *shelfRepository) RemovePlacement(context context.Context, id int) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// Tag links first, then the row itself
	clearLinks := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.BookInShelfTagLink.Table, schema.BookInShelfTagLink.BookInShelf)
	if _, err := transaction.Exec(context, clearLinks, id); err != nil {
		return fmt.Errorf("postgres: failed to clear placement tag links: %w", err)
	}

	deleteRow := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.BookInShelf.Table, schema.BookInShelf.ID)
	tag, err := transaction.Exec(context, deleteRow, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to remove placement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book in shelf")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit remove transaction: %w", err)
	}

	return nil
}

/*
ReplacePlacementTags swaps a placement's tag set atomically.

Description: Implements a "Clear and Insert" strategy inside one
transaction. Existing links are wiped, then each desired name is ensured in
the placement tag catalogue (ON CONFLICT DO NOTHING) and linked by a
name-resolving INSERT ... SELECT, all queued through a single pgx.Batch.

Parameters:
  - context: context.Context
  - placementID: int
  - tags: []string (the complete desired tag set; empty clears all tags)

Returns:
  - error: Database execution errors; the transaction is rolled back on any
    failure
*/
func (repository *shelfRepository) ReplacePlacementTags(context context.Context, placementID int, tags []string) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	clearLinks := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.BookInShelfTagLink.Table, schema.BookInShelfTagLink.BookInShelf)
	if _, err := transaction.Exec(context, clearLinks, placementID); err != nil {
		return fmt.Errorf("postgres: failed to clear placement tag links: %w", err)
	}

	if len(tags) > 0 {
		ensureTag := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES ($1) ON CONFLICT (%s) DO NOTHING",
			schema.BookInShelfTag.Table, schema.BookInShelfTag.Name, schema.BookInShelfTag.Name,
		)
		linkTag := fmt.Sprintf(
			"INSERT INTO %s (%s, %s) SELECT $1, %s FROM %s WHERE %s = $2",
			schema.BookInShelfTagLink.Table, schema.BookInShelfTagLink.BookInShelf, schema.BookInShelfTagLink.BookInShelfTagID,
			schema.BookInShelfTag.ID, schema.BookInShelfTag.Table, schema.BookInShelfTag.Name,
		)

		batch := &pgx.Batch{}
		for _, tag := range tags {
			batch.Queue(ensureTag, tag)
			batch.Queue(linkTag, placementID, tag)
		}
		if err := transaction.SendBatch(context, batch).Close(); err != nil {
			return fmt.Errorf("postgres: failed to batch replace placement tags: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit tag replacement: %w", err)
	}

	return nil
}
