// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByUID returns the account with the given UID.

		Parameters:
		  - context: context.Context
		  - uid: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUID(context context.Context, uid string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new user account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on a duplicate username or email
	*/
	Create(context context.Context, user *User) error

	/*
		EnsureUser materialises a minimal profile for an externally-issued
		subject, so write paths can hold a user foreign key. Idempotent:
		an existing row is left untouched.

		Parameters:
		  - context: context.Context
		  - uid: string
		  - username: string

		Returns:
		  - error: Persistence failures
	*/
	EnsureUser(context context.Context, uid, username string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token
// sessions. Implementations key the session by the hash of the refresh
// token; a session that cannot be found is expired or revoked.
type SessionRepository interface {

	/*
		Create stores a new session under the given token hash until the
		session's ExpiresAt.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, tokenHash string, session *Session) error

	/*
		FindByTokenHash returns the live session for the given token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.Unauthorized when absent, expired or revoked
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke removes the session stored under the given token hash.
		Revoking an unknown hash is a no-op.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, tokenHash string) error
}
