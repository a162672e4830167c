// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

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
ListComments returns every comment attached to a book, newest first.

Parameters:
  - context: context.Context
  - bookID: int

Returns:
  - []*Comment: Comments ordered by publication time descending
  - error: Database retrieval failures
*/
func (repository *bookRepository) ListComments(context context.Context, bookID int) ([]*Comment, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
	`,
		schema.BookComment.ID, schema.BookComment.BookID, schema.BookComment.UserUID,
		schema.BookComment.Content, schema.BookComment.PubDate,
		schema.BookComment.Table,
		schema.BookComment.BookID,
		schema.BookComment.PubDate,
	)

	rows, err := repository.pool.Query(context, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list book comments: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		entity := &Comment{}
		err := rows.Scan(&entity.ID, &entity.BookID, &entity.UserUID, &entity.Content, &entity.PubDate)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan book comment: %w", err)
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
func (repository *bookRepository) FindCommentByID(context context.Context, id int) (*Comment, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.BookComment.ID, schema.BookComment.BookID, schema.BookComment.UserUID,
		schema.BookComment.Content, schema.BookComment.PubDate,
		schema.BookComment.Table,
		schema.BookComment.ID,
	)

	entity := &Comment{}
	err := repository.pool.QueryRow(context, query, id).
		Scan(&entity.ID, &entity.BookID, &entity.UserUID, &entity.Content, &entity.PubDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment")
		}
		return nil, fmt.Errorf("postgres: failed to find book comment by id: %w", err)
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
func (repository *bookRepository) CreateComment(context context.Context, comment *Comment) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		schema.BookComment.Table,
		schema.BookComment.BookID, schema.BookComment.UserUID, schema.BookComment.Content,
		schema.BookComment.ID, schema.BookComment.PubDate,
	)

	err := repository.pool.QueryRow(context, query, comment.BookID, comment.UserUID, comment.Content).
		Scan(&comment.ID, &comment.PubDate)
	if err != nil {
		return fmt.Errorf("postgres: failed to create book comment: %w", err)
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
func (repository *bookRepository) DeleteComment(context context.Context, id int) error {

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.BookComment.Table, schema.BookComment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete book comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

// # Rating Implementation

/*
FindRate retrieves a reader's rating for a specific book.

Description: Absence is a normal outcome of the single-vote flow, so a
missing row yields (nil, nil) rather than a sentinel error.

Parameters:
  - context: context.Context
  - bookID: int
  - userUID: string

Returns:
  - *Rate: The rating, or nil when the reader has not rated the book
  - error: Database retrieval failures
*/
func (repository *bookRepository) FindRate(context context.Context, bookID int, userUID string) (*Rate, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.BookRate.ID, schema.BookRate.BookID, schema.BookRate.UserUID,
		schema.BookRate.Rate, schema.BookRate.RatedAt,
		schema.BookRate.Table,
		schema.BookRate.BookID, schema.BookRate.UserUID,
	)

	entity := &Rate{}
	err := repository.pool.QueryRow(context, query, bookID, userUID).
		Scan(&entity.ID, &entity.BookID, &entity.UserUID, &entity.Rate, &entity.RatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres: failed to find book rate: %w", err)
	}

	return entity, nil
}

/*
CreateRate persists a new rating and backfills its generated fields.

Parameters:
  - context: context.Context
  - rate: *Rate (ID and RatedAt are populated on success)

Returns:
  - error: Database execution errors
*/
func (repository *bookRepository) CreateRate(context context.Context, rate *Rate) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s
	`,
		schema.BookRate.Table,
		schema.BookRate.BookID, schema.BookRate.UserUID, schema.BookRate.Rate,
		schema.BookRate.ID, schema.BookRate.RatedAt,
	)

	err := repository.pool.QueryRow(context, query, rate.BookID, rate.UserUID, rate.Rate).
		Scan(&rate.ID, &rate.RatedAt)
	if err != nil {
		return fmt.Errorf("postgres: failed to create book rate: %w", err)
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
func (repository *bookRepository) DeleteRate(context context.Context, id int) error {

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", schema.BookRate.Table, schema.BookRate.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete book rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Rate")
	}

	return nil
}
