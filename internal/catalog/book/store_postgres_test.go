// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jbook/internal/platform/sortspec"
	"github.com/taibuivan/jbook/pkg/pointer"
)

/*
TestBuildListQuery pins the composed listing SQL: one EXISTS conjunct per
non-empty axis ANDed onto the base query, `= ANY` placeholders numbered after
the reserved $1 caller slot, the rating annotation joins always present, and
LIMIT/OFFSET as the trailing placeholders.
*/
func TestBuildListQuery(t *testing.T) {
	defaultSort := sortspec.Default("created_at")

	t.Run("no_axes_yields_bare_query", func(t *testing.T) {
		query, args := buildListQuery(Filter{Sort: defaultSort}, nil, 50, 0)

		assert.NotContains(t, query, "EXISTS")
		assert.Contains(t, query, "WHERE 1=1")
		assert.Contains(t, query, "ORDER BY b.created_at DESC")
		assert.Contains(t, query, "LIMIT $2 OFFSET $3")

		require.Len(t, args, 3)
		assert.Nil(t, args[0])
		assert.Equal(t, 50, args[1])
		assert.Equal(t, 0, args[2])
	})

	t.Run("every_axis_adds_one_conjunct", func(t *testing.T) {
		filter := Filter{
			Tags:       []string{"fantasy"},
			Categories: []int{1, 2},
			Authors:    []int{3},
			Publishers: []int{4},
			Sort:       defaultSort,
		}

		query, args := buildListQuery(filter, pointer.To("reader-1"), 10, 20)

		// Junction axes are EXISTS sub-queries; the publisher axis matches
		// the column directly. AND across axes, OR within via = ANY.
		assert.Equal(t, 3, strings.Count(query, " AND EXISTS ("))
		assert.Contains(t, query, "jbook._m2m_book_book_tag ft WHERE ft.book_id = b.id AND ft.book_tag = ANY($2)")
		assert.Contains(t, query, "jbook._m2m_book_book_category fc WHERE fc.book_id = b.id AND fc.category_id = ANY($3)")
		assert.Contains(t, query, "jbook._m2m_book_book_author fa WHERE fa.book_id = b.id AND fa.book_author_id = ANY($4)")
		assert.Contains(t, query, "b.publisher_id = ANY($5)")
		assert.Contains(t, query, "LIMIT $6 OFFSET $7")

		require.Len(t, args, 7)
		assert.Equal(t, pointer.To("reader-1"), args[0])
		assert.Equal(t, []string{"fantasy"}, args[1])
		assert.Equal(t, []int{1, 2}, args[2])
		assert.Equal(t, []int{3}, args[3])
		assert.Equal(t, []int{4}, args[4])
		assert.Equal(t, 10, args[5])
		assert.Equal(t, 20, args[6])
	})

	t.Run("placeholders_renumber_when_axes_are_absent", func(t *testing.T) {
		filter := Filter{Categories: []int{9}, Sort: defaultSort}

		query, args := buildListQuery(filter, nil, 50, 0)

		assert.Contains(t, query, "fc.category_id = ANY($2)")
		assert.NotContains(t, query, "book_tag = ANY")
		assert.NotContains(t, query, "publisher_id = ANY")
		assert.Contains(t, query, "LIMIT $3 OFFSET $4")
		require.Len(t, args, 4)
		assert.Equal(t, []int{9}, args[1])
	})

	t.Run("rating_annotation_joins_are_unconditional", func(t *testing.T) {
		query, _ := buildListQuery(Filter{Sort: defaultSort}, nil, 50, 0)

		// Annotations ride along as LEFT JOINs so they never shrink the
		// filtered row set; the user join keys on the reserved $1.
		assert.Contains(t, query, "AVG(")
		assert.Contains(t, query, "avg_rate")
		assert.Contains(t, query, "user_rate")
		assert.Contains(t, query, "user_uid = $1")
	})

	t.Run("sort_key_maps_to_qualified_column", func(t *testing.T) {
		tests := []struct {
			spec sortspec.Spec
			want string
		}{
			{sortspec.Spec{Column: "rate", Direction: sortspec.Asc}, "ORDER BY avg_rate.rate ASC"},
			{sortspec.Spec{Column: "title", Direction: sortspec.Desc}, "ORDER BY b.title DESC"},
			{sortspec.Spec{Column: "pub_date", Direction: sortspec.Asc}, "ORDER BY b.pub_date ASC"},
			{sortspec.Spec{Column: "created_at", Direction: sortspec.Desc}, "ORDER BY b.created_at DESC"},
		}

		for _, tt := range tests {
			query, _ := buildListQuery(Filter{Sort: tt.spec}, nil, 50, 0)
			assert.Contains(t, query, tt.want)
		}
	})
}
