// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/database/schema"
)

// # Comment Implementation

/*
ListComments returns every comment attached to a shelf, newest first.

Parameters:
  - context: context.Context
  - shelfUID: string

Returns:
  - []*Comment: Comments ordered by publication time descending
  - error: Database retrieval failures
*/
func (repository *shelfRepository) ListComments(context context.Context, shelfUID string) ([]*Comment, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
	`,
		schema.ShelfComment.ID, schema.ShelfComment.ShelfUID, schema.ShelfComment.UserUID,
		schema.ShelfComment.Content, schema.ShelfComment.PubDate,
		schema.ShelfComment.Table,
		schema.ShelfComment.ShelfUID,
		schema.ShelfComment.PubDate,
	)

	rows, err := repository.pool.Query(context, query, shelfUID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list shelf comments: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		entity := &Comment{}
		err := rows.Scan(&entity.ID, &entity.ShelfUID, &entity.UserUID, &entity.Content, &entity.PubDate)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan shelf comment: %w", err)
		}
		comments = append(comments, entity)
	}

	return comments, rows.Err()
}

/*
FindCommentByID retrieves a single comment by its primary key.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - *Comment: The comment entity
  - error: apperr.NotFound if the comment does not exist
*/
func (repository *shelfRepository) FindCommentByID(context context.Context, id int) (*Comment, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.ShelfComment.ID, schema.ShelfComment.ShelfUID, schema.ShelfComment.UserUID,
		schema.ShelfComment.Content, schema.ShelfComment.PubDate,
		schema.ShelfComment.Table,
		schema.ShelfComment.ID,
	)

	entity := &Comment{}
	err := repository.pool.QueryRow(context, query, id).
		Scan(&entity.ID, &entity.ShelfUID, &entity.UserUID, &entity.Content, &entity.PubDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres: failed to find shelf comment by id: %w", err)
	}

	return entity, nil
}

/*
CreateComment persists a new comment and backfills its generated fields.

Parameters:
  - context: context.Context
  - comment: *Comment (ID and PubDate are populated on success)

Returns:
  - error: Database execution errors
*/
func (repository *shelfRepository) CreateComment(context context.Context, comment *Comment) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		schema.ShelfComment.Table,
		schema.ShelfComment.ShelfUID, schema.ShelfComment.UserUID, schema.ShelfComment.Content,
		schema.ShelfComment.ID, schema.ShelfComment.PubDate,
	)

	err := repository.pool.QueryRow(context, query, comment.ShelfUID, comment.UserUID, comment.Content).
		Scan(&comment.ID, &comment.PubDate)
	if err != nil {
		return fmt.Errorf("postgres: failed to create shelf comment: %w", err)
	}

	return nil
}

/*
DeleteComment removes a comment by its primary key.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: apperr.NotFound if no row was deleted
*/
func (repository *shelfRepository) DeleteComment(context context.Context, id int) error {

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.ShelfComment.Table, schema.ShelfComment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete shelf comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

// # Rating Implementation

/*
FindRate retrieves a reader's rating for a specific shelf.

Description: Absence is a normal outcome of the single-vote flow, so a
missing row yields (nil, nil) rather than a sentinel error.

Parameters:
  - context: context.Context
  - shelfUID: string
  - userUID: string

Returns:
  - *Rate: The rating, or nil when the reader has not rated the shelf
  - error: Database retrieval failures
*/
func (repository *shelfRepository) FindRate(context context.Context, shelfUID, userUID string) (*Rate, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.ShelfRate.ID, schema.ShelfRate.ShelfUID, schema.ShelfRate.UserUID, schema.ShelfRate.Rate,
		schema.ShelfRate.Table,
		schema.ShelfRate.ShelfUID, schema.ShelfRate.UserUID,
	)

	entity := &Rate{}
	err := repository.pool.QueryRow(context, query, shelfUID, userUID).
		Scan(&entity.ID, &entity.ShelfUID, &entity.UserUID, &entity.Rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: failed to find shelf rate: %w", err)
	}

	return entity, nil
}

/*
CreateRate persists a new rating and backfills its generated ID.

Parameters:
  - context: context.Context
  - rate: *Rate (ID is populated on success)

Returns:
  - error: Database execution errors
*/
func (repository *shelfRepository) CreateRate(context context.Context, rate *Rate) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`,
		schema.ShelfRate.Table,
		schema.ShelfRate.ShelfUID, schema.ShelfRate.UserUID, schema.ShelfRate.Rate,
		schema.ShelfRate.ID,
	)

	err := repository.pool.QueryRow(context, query, rate.ShelfUID, rate.UserUID, rate.Rate).Scan(&rate.ID)
	if err != nil {
		return fmt.Errorf("postgres: failed to create shelf rate: %w", err)
	}

	return nil
}

/*
DeleteRate removes a rating by its primary key.

Parameters:
  - context: context.Context
  - id: int

Returns:
  - error: apperr.NotFound if no row was deleted
*/
func (repository *shelfRepository) DeleteRate(context context.Context, id int) error {

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.ShelfRate.Table, schema.ShelfRate.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete shelf rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Rate")
	}

	return nil
}
