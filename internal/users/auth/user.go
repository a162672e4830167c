// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity layer of JBook.

It defines the core domain entities (User, Session) and the logic for
registration, credential verification and refresh-token session rotation.
Accounts can also be materialised lazily for subjects whose tokens were
issued elsewhere: the catalogue only needs a user row to hang foreign keys
on, not a local credential.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
external dependencies and encapsulate all business rules related to user
identity.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the JBook platform.
type User struct {
	UID          string    `json:"uid"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	FirstName    *string   `json:"first_name"`
	Surname      *string   `json:"surname"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents an active refresh-token session. Sessions are
// volatile: they live in Redis keyed by token hash and expire with the
// refresh token, so revocation is deletion.
type Session struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"user_uid"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the
// authentication domain.
const (
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldLogin       = "login"
	FieldAccessToken = "access_token"
	FieldTokenType   = "token_type"
	FieldExpiresIn   = "expires_in"
	FieldUser        = "user"
)
