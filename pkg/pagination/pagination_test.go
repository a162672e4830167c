// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jbook/internal/platform/apperr"
)

func TestFromRequest_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/books", nil)

	params, err := FromRequest(r, 50)

	require.NoError(t, err)
	assert.Equal(t, 0, params.Offset)
	assert.Equal(t, 50, params.Limit)
}

func TestFromRequest_ExplicitValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/books?offset=120&limit=5", nil)

	params, err := FromRequest(r, 50)

	require.NoError(t, err)
	assert.Equal(t, 120, params.Offset)
	assert.Equal(t, 5, params.Limit)
}

func TestFromRequest_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"negative offset", "offset=-1", "offset"},
		{"non-numeric offset", "offset=abc", "offset"},
		{"float offset", "offset=1.5", "offset"},
		{"zero limit", "limit=0", "limit"},
		{"negative limit", "limit=-10", "limit"},
		{"non-numeric limit", "limit=ten", "limit"},
		{"limit above max", "limit=9999", "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/books?"+tt.query, nil)

			_, err := FromRequest(r, 50)

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Offset: 10, Limit: 20}, 7)

	assert.Equal(t, 10, meta.Offset)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 7, meta.Count)
}
