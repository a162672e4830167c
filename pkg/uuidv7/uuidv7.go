// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// Shelves, users, and sessions are keyed by UUID. Version 7 values are
// time-sortable, which keeps PostgreSQL B-tree indexes compact and avoids the
// fragmentation caused by random UUIDv4 primary keys.
package uuidv7

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
//
// It panics only if the OS random source is unavailable; entropy failure is
// an unrecoverable system-level error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}
