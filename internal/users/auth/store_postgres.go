// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/database/schema"
	"github.com/taibuivan/jbook/internal/platform/dberr"
)

// # PostgreSQL Repository

// userRepository implements the [UserRepository] interface using pgx.
type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a PostgreSQL backed user store.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

// findBy runs a single-row user lookup on the given column.
func (repository *userRepository) findBy(context context.Context, column string, value any) (*User, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.User.UID, schema.User.Username, schema.User.Email, schema.User.PasswordHash,
		schema.User.FirstName, schema.User.Surname, schema.User.CreatedAt,
		schema.User.Table,
		column,
	)

	entity := &User{}
	err := repository.pool.QueryRow(context, query, value).Scan(
		&entity.UID,
		&entity.Username,
		&entity.Email,
		&entity.PasswordHash,
		&entity.FirstName,
		&entity.Surname,
		&entity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres: failed to find user by %s: %w", column, err)
	}

	return entity, nil
}

func (repository *userRepository) FindByUID(context context.Context, uid string) (*User, error) {
	return repository.findBy(context, schema.User.UID, uid)
}

func (repository *userRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.User.Email, email)
}

func (repository *userRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, schema.User.Username, username)
}

/*
Create persists a brand-new user account.

Parameters:
  - context: context.Context
  - user: *User (CreatedAt is populated on success)

Returns:
  - error: apperr.Conflict on a duplicate username or email, via the
    SQLSTATE classifier
*/
func (repository *userRepository) Create(context context.Context, user *User) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s
	`,
		schema.User.Table,
		schema.User.UID, schema.User.Username, schema.User.Email, schema.User.PasswordHash,
		schema.User.FirstName, schema.User.Surname,
		schema.User.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		user.UID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.Surname,
	).Scan(&user.CreatedAt)

	return dberr.Wrap(err, "auth.create_user")
}

/*
EnsureUser materialises a minimal profile for an externally-issued subject.

Description: A bare INSERT ... ON CONFLICT DO NOTHING: an existing row
(same UID, or a username already taken) is left untouched. The profile
carries no credential; such subjects authenticate against their issuer,
never against JBook.

Parameters:
  - context: context.Context
  - uid: string
  - username: string

Returns:
  - error: Persistence failures
*/
func (repository *userRepository) EnsureUser(context context.Context, uid, username string) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, '', '')
		ON CONFLICT DO NOTHING
	`,
		schema.User.Table,
		schema.User.UID, schema.User.Username, schema.User.Email, schema.User.PasswordHash,
	)

	if _, err := repository.pool.Exec(context, query, uid, username); err != nil {
		return fmt.Errorf("postgres: failed to ensure user: %w", err)
	}

	return nil
}
