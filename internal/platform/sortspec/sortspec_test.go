// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sortspec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/sortspec"
)

var bookSortKeys = []string{"title", "rate", "pub_date", "created_at"}

/*
TestResolve_AllowedKeys verifies every allow-listed key resolves both plain
(ASC) and '-'-prefixed (DESC).
*/
func TestResolve_AllowedKeys(t *testing.T) {
	for _, key := range bookSortKeys {
		t.Run(key, func(t *testing.T) {
			spec, err := sortspec.Resolve(key, bookSortKeys)
			require.NoError(t, err)
			assert.Equal(t, key, spec.Column)
			assert.Equal(t, sortspec.Asc, spec.Direction)

			spec, err = sortspec.Resolve("-"+key, bookSortKeys)
			require.NoError(t, err)
			assert.Equal(t, key, spec.Column)
			assert.Equal(t, sortspec.Desc, spec.Direction)
		})
	}
}

/*
TestResolve_RejectedKeys verifies keys outside the allow-list fail regardless
of the descending prefix, and that the failure is a client-safe 400.
*/
func TestResolve_RejectedKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown_key", "popularity"},
		{"unknown_key_desc", "-popularity"},
		{"column_injection", "created_at; DROP TABLE jbook.book"},
		{"empty", ""},
		{"bare_prefix", "-"},
		{"double_prefix", "--title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sortspec.Resolve(tt.raw, bookSortKeys)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			assert.Equal(t, 400, ae.HTTPStatus)
		})
	}
}

/*
TestResolve_AllowListIsolation verifies the shelf allow-list does not leak
book keys and vice versa.
*/
func TestResolve_AllowListIsolation(t *testing.T) {
	shelfSortKeys := []string{"name", "rate", "created_at"}

	_, err := sortspec.Resolve("pub_date", shelfSortKeys)
	assert.Error(t, err)

	_, err = sortspec.Resolve("name", bookSortKeys)
	assert.Error(t, err)

	_, err = sortspec.Resolve("name", shelfSortKeys)
	assert.NoError(t, err)
}

func TestDefault(t *testing.T) {
	spec := sortspec.Default("created_at")
	assert.Equal(t, "created_at", spec.Column)
	assert.Equal(t, sortspec.Desc, spec.Direction)
}
