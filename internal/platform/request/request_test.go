// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	requestutil "github.com/taibuivan/jbook/internal/platform/request"
)

/*
TestQueryIntList covers the strict integer list contract: absent → nil,
well-formed → parsed, any malformed token → VALIDATION_ERROR.
*/
func TestQueryIntList(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    []int
		wantErr bool
	}{
		{"absent", "", nil, false},
		{"single", "tags=3", []int{3}, false},
		{"multiple", "tags=1,2,3", []int{1, 2, 3}, false},
		{"spaces_tolerated", "tags=1,%202,3", []int{1, 2, 3}, false},
		{"negative_values", "tags=-1,5", []int{-1, 5}, false},
		{"non_numeric_token", "tags=1,abc,3", nil, true},
		{"trailing_comma", "tags=1,2,", nil, true},
		{"leading_comma", "tags=,1", nil, true},
		{"float_token", "tags=1.5", nil, true},
		{"bare_comma", "tags=,", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/books?"+tt.query, nil)

			got, err := requestutil.QueryIntList(r, "tags")

			if tt.wantErr {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, "tags", ae.Details[0].Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestQueryStringList covers the string list variant, including empty-token
rejection.
*/
func TestQueryStringList(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    []string
		wantErr bool
	}{
		{"absent", "", nil, false},
		{"single", "authors=kawabata", []string{"kawabata"}, false},
		{"multiple", "authors=kawabata,mishima", []string{"kawabata", "mishima"}, false},
		{"empty_middle_token", "authors=a,,b", nil, true},
		{"trailing_comma", "authors=a,b,", nil, true},
		{"whitespace_only_token", "authors=a,%20%20,b", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/books?"+tt.query, nil)

			got, err := requestutil.QueryStringList(r, "authors")

			if tt.wantErr {
				require.Error(t, err)
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestRequiredClaims_Unauthenticated ensures an anonymous request is rejected.
*/
func TestRequiredClaims_Unauthenticated(t *testing.T) {
	r := httptest.NewRequest("GET", "/shelves/mine", nil)

	_, err := requestutil.RequiredClaims(r)

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}
