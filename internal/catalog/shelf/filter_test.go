// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/sortspec"
)

func TestFilterFromRequest(t *testing.T) {
	t.Run("parses_tags_and_sort", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/shelves?tags=to-read,favorites&sort_by=name", nil)

		filter, err := FilterFromRequest(request)
		require.NoError(t, err)

		assert.Equal(t, []string{"to-read", "favorites"}, filter.Tags)
		assert.Equal(t, sortspec.Spec{Column: "name", Direction: sortspec.Asc}, filter.Sort)
	})

	t.Run("defaults_to_created_at_desc", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/shelves", nil)

		filter, err := FilterFromRequest(request)
		require.NoError(t, err)

		assert.Nil(t, filter.Tags)
		assert.Equal(t, sortspec.Spec{Column: "created_at", Direction: sortspec.Desc}, filter.Sort)
	})

	t.Run("rejects_empty_tag_token", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/shelves?tags=to-read,", nil)

		_, err := FilterFromRequest(request)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	})

	t.Run("rejects_book_only_sort_key", func(t *testing.T) {
		// pub_date sorts books, not shelves.
		request := httptest.NewRequest("GET", "/shelves?sort_by=pub_date", nil)

		_, err := FilterFromRequest(request)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	})
}
