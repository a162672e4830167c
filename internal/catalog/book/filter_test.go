// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/sortspec"
)

func TestFilterFromRequest(t *testing.T) {
	t.Run("parses_all_axes", func(t *testing.T) {
		request := httptest.NewRequest("GET",
			"/books?tags=fantasy,sci-fi&categories=1,2&authors=7&publishers=3&sort_by=-title", nil)

		filter, err := FilterFromRequest(request)
		require.NoError(t, err)

		assert.Equal(t, []string{"fantasy", "sci-fi"}, filter.Tags)
		assert.Equal(t, []int{1, 2}, filter.Categories)
		assert.Equal(t, []int{7}, filter.Authors)
		assert.Equal(t, []int{3}, filter.Publishers)
		assert.Equal(t, sortspec.Spec{Column: "title", Direction: sortspec.Desc}, filter.Sort)
	})

	t.Run("absent_axes_stay_nil", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/books", nil)

		filter, err := FilterFromRequest(request)
		require.NoError(t, err)

		// nil means "axis not filtered"; an empty non-nil slice would mean
		// "match nothing", which no parse result may produce.
		assert.Nil(t, filter.Tags)
		assert.Nil(t, filter.Categories)
		assert.Nil(t, filter.Authors)
		assert.Nil(t, filter.Publishers)
		assert.Equal(t, sortspec.Spec{Column: "created_at", Direction: sortspec.Desc}, filter.Sort)
	})

	t.Run("rejects_malformed_int_axis", func(t *testing.T) {
		for _, query := range []string{
			"categories=1,abc",
			"authors=1,,2",
			"publishers=1,",
		} {
			request := httptest.NewRequest("GET", "/books?"+query, nil)

			_, err := FilterFromRequest(request)

			appError := apperr.As(err)
			require.NotNil(t, appError, "query %q", query)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code, "query %q", query)
		}
	})

	t.Run("rejects_empty_tag_token", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/books?tags=fantasy,,horror", nil)

		_, err := FilterFromRequest(request)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	})

	t.Run("rejects_unknown_sort_key", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/books?sort_by=popularity", nil)

		_, err := FilterFromRequest(request)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	})

	t.Run("accepts_every_allowed_sort_key", func(t *testing.T) {
		for _, key := range SortKeys {
			request := httptest.NewRequest("GET", "/books?sort_by="+key, nil)

			filter, err := FilterFromRequest(request)
			require.NoError(t, err, "key %q", key)
			assert.Equal(t, key, filter.Sort.Column)
			assert.Equal(t, sortspec.Asc, filter.Sort.Direction)
		}
	})
}
