// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sortspec resolves user-supplied sort keys into canonical
// (column, direction) pairs.
//
// # Architecture
//
// Each list endpoint declares an allow-list of sortable keys; [Resolve] is a
// pure function over that allow-list, so there is no per-entity resolver
// object to construct or share. Repositories map the resolved key onto an
// actual SQL expression, which keeps raw request input out of ORDER BY
// clauses entirely.
package sortspec

import (
	"strings"

	"github.com/taibuivan/jbook/internal/platform/apperr"
)

// Direction is the sort order of a resolved spec.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Spec is a validated sort instruction.
type Spec struct {
	// Column is the prefix-stripped sort key, guaranteed to be a member of
	// the allow-list it was resolved against.
	Column string
	// Direction is ASC, or DESC when the raw key carried a '-' prefix.
	Direction Direction
}

// Default returns the spec used when a request carries no sort_by parameter.
func Default(column string) Spec {
	return Spec{Column: column, Direction: Desc}
}

// Resolve validates a raw sort key against an allow-list.
//
// A leading '-' requests descending order and is stripped before validation,
// so "-title" and "title" are accepted or rejected together. Keys outside the
// allow-list fail with a VALIDATION_ERROR regardless of prefix.
func Resolve(raw string, allowed []string) (Spec, error) {
	direction := Asc
	key := raw

	if strings.HasPrefix(key, "-") {
		direction = Desc
		key = key[1:]
	}

	for _, candidate := range allowed {
		if key == candidate {
			return Spec{Column: key, Direction: direction}, nil
		}
	}

	return Spec{}, apperr.ValidationError("sort_by is not one of the allowed values", apperr.FieldError{
		Field:   "sort_by",
		Message: "Must be one of: " + strings.Join(allowed, ", "),
	})
}
