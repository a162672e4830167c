// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jbook/internal/platform/sortspec"
	"github.com/taibuivan/jbook/pkg/pointer"
)

/*
TestBuildPublicListQuery pins the public listing SQL: the type = 'public'
predicate is always embedded, the tag axis appends a single EXISTS conjunct
numbered after the reserved caller and visibility slots, and LIMIT/OFFSET
trail the argument list.
*/
func TestBuildPublicListQuery(t *testing.T) {
	defaultSort := sortspec.Default("created_at")

	t.Run("public_predicate_is_hard_wired", func(t *testing.T) {
		query, args := buildPublicListQuery(Filter{Sort: defaultSort}, nil, 50, 0)

		assert.Contains(t, query, "WHERE s.type = $2")
		assert.NotContains(t, query, "EXISTS")
		assert.Contains(t, query, "ORDER BY s.created_at DESC")
		assert.Contains(t, query, "LIMIT $3 OFFSET $4")

		require.Len(t, args, 4)
		assert.Nil(t, args[0])
		assert.Equal(t, VisibilityPublic, args[1])
		assert.Equal(t, 50, args[2])
		assert.Equal(t, 0, args[3])
	})

	t.Run("tag_axis_adds_exists_conjunct", func(t *testing.T) {
		filter := Filter{Tags: []string{"to-read", "favorites"}, Sort: defaultSort}

		query, args := buildPublicListQuery(filter, pointer.To("reader-1"), 10, 20)

		assert.Contains(t, query,
			"AND EXISTS (SELECT 1 FROM jbook._m2m_shelf_shelf_tag ft WHERE ft.shelf_uid = s.uid AND ft.shelf_tag = ANY($3))")
		assert.Contains(t, query, "LIMIT $4 OFFSET $5")

		require.Len(t, args, 5)
		assert.Equal(t, pointer.To("reader-1"), args[0])
		assert.Equal(t, VisibilityPublic, args[1])
		assert.Equal(t, []string{"to-read", "favorites"}, args[2])
	})

	t.Run("rating_annotation_joins_are_unconditional", func(t *testing.T) {
		query, _ := buildPublicListQuery(Filter{Sort: defaultSort}, nil, 50, 0)

		assert.Contains(t, query, "AVG(")
		assert.Contains(t, query, "avg_rate")
		assert.Contains(t, query, "user_rate")
		assert.Contains(t, query, "user_uid = $1")
	})

	t.Run("sort_key_maps_to_qualified_column", func(t *testing.T) {
		query, _ := buildPublicListQuery(Filter{Sort: sortspec.Spec{Column: "name", Direction: sortspec.Asc}}, nil, 50, 0)
		assert.Contains(t, query, "ORDER BY s.name ASC")

		query, _ = buildPublicListQuery(Filter{Sort: sortspec.Spec{Column: "rate", Direction: sortspec.Desc}}, nil, 50, 0)
		assert.Contains(t, query, "ORDER BY avg_rate.rate DESC")
	})
}

/*
TestBuildOwnedListQuery asserts the owner-scoped variant filters on the
owner, never on visibility, and reuses the owner as annotation caller.
*/
func TestBuildOwnedListQuery(t *testing.T) {
	defaultSort := sortspec.Default("created_at")

	t.Run("filters_on_owner_not_visibility", func(t *testing.T) {
		query, args := buildOwnedListQuery("owner-1", Filter{Sort: defaultSort}, 50, 0)

		assert.Contains(t, query, "WHERE s.user_uid = $2")
		assert.NotContains(t, query, "s.type = $2")
		assert.Contains(t, query, "LIMIT $3 OFFSET $4")

		require.Len(t, args, 4)
		assert.Equal(t, "owner-1", args[0])
		assert.Equal(t, "owner-1", args[1])
	})

	t.Run("tag_axis_numbering_matches_public_variant", func(t *testing.T) {
		query, args := buildOwnedListQuery("owner-1", Filter{Tags: []string{"to-read"}, Sort: defaultSort}, 10, 0)

		assert.Contains(t, query, "ft.shelf_tag = ANY($3)")
		assert.Contains(t, query, "LIMIT $4 OFFSET $5")
		require.Len(t, args, 5)
		assert.Equal(t, []string{"to-read"}, args[2])
	})
}
