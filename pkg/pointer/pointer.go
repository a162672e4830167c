// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer provides small generic helpers for working with pointers.
//
// Rating annotations and optional text fields are nullable throughout the
// catalog, so handlers and tests frequently need to lift literals into
// pointers and safely dereference possibly-nil values.
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback safely dereferences a pointer.
// If the pointer is nil, it returns the provided fallback value instead.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
