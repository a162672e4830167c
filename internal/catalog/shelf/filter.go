// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"net/http"

	"github.com/taibuivan/jbook/internal/platform/constants"
	requestutil "github.com/taibuivan/jbook/internal/platform/request"
	"github.com/taibuivan/jbook/internal/platform/sortspec"
)

/*
FilterFromRequest parses the shelf filter axis and sort key from query
parameters.

Description: Shelves filter on a single axis, tag names, using the strict
comma-list syntax: absent means "axis not filtered", any malformed token
rejects the whole request. The sort_by parameter is resolved against
[SortKeys]; absent falls back to created_at DESC.

Parameters:
  - request: *http.Request

Returns:
  - Filter: The parsed filter with resolved sort spec
  - error: apperr.ValidationError on a malformed axis or unknown sort key
*/
func FilterFromRequest(request *http.Request) (Filter, error) {

	tags, err := requestutil.QueryStringList(request, "tags")
	if err != nil {
		return Filter{}, err
	}

	// Sort key resolution against the shelf allow-list
	sort := sortspec.Default(constants.DefaultSortColumn)
	if raw := request.URL.Query().Get("sort_by"); raw != "" {
		sort, err = sortspec.Resolve(raw, SortKeys)
		if err != nil {
			return Filter{}, err
		}
	}

	return Filter{
		Tags: tags,
		Sort: sort,
	}, nil
}
