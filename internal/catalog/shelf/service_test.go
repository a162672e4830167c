// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shelf

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/pkg/pointer"
)

// # Test Doubles

// stubRepository is an in-memory [Repository] for exercising service guards.
type stubRepository struct {
	shelves    map[string]*Shelf
	placements map[int]*BookInShelf
	comments   map[int]*Comment
	rates      map[int]*Rate
	nextID     int
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		shelves:    make(map[string]*Shelf),
		placements: make(map[int]*BookInShelf),
		comments:   make(map[int]*Comment),
		rates:      make(map[int]*Rate),
		nextID:     1,
	}
}

func (s *stubRepository) List(_ context.Context, _ Filter, _ *string, _, _ int) ([]*Shelf, error) {
	var shelves []*Shelf
	for _, sh := range s.shelves {
		if sh.Type == VisibilityPublic {
			shelves = append(shelves, sh)
		}
	}
	return shelves, nil
}

func (s *stubRepository) ListOwned(_ context.Context, ownerUID string, _ Filter, _, _ int) ([]*Shelf, error) {
	var shelves []*Shelf
	for _, sh := range s.shelves {
		if sh.UserUID == ownerUID {
			shelves = append(shelves, sh)
		}
	}
	return shelves, nil
}

func (s *stubRepository) FindByUID(_ context.Context, uid string, _ *string) (*Shelf, error) {
	sh, ok := s.shelves[uid]
	if !ok {
		return nil, apperr.NotFound("Shelf")
	}
	return sh, nil
}

func (s *stubRepository) Create(_ context.Context, shelf *Shelf, bookIDs []int) error {
	shelf.CreatedAt = time.Now()
	shelf.UpdatedAt = shelf.CreatedAt
	s.shelves[shelf.UID] = shelf
	for _, bookID := range bookIDs {
		placement := &BookInShelf{ID: s.nextID, BookID: bookID, ShelfUID: shelf.UID}
		s.nextID++
		s.placements[placement.ID] = placement
		shelf.Books = append(shelf.Books, *placement)
	}
	return nil
}

func (s *stubRepository) FindPlacementByID(_ context.Context, id int) (*BookInShelf, error) {
	p, ok := s.placements[id]
	if !ok {
		return nil, apperr.NotFound("Book in shelf")
	}
	return p, nil
}

func (s *stubRepository) AddPlacement(_ context.Context, placement *BookInShelf) error {
	placement.ID = s.nextID
	s.nextID++
	s.placements[placement.ID] = placement
	return nil
}

func (s *stubRepository) RemovePlacement(_ context.Context, id int) error {
	if _, ok := s.placements[id]; !ok {
		return apperr.NotFound("Book in shelf")
	}
	delete(s.placements, id)
	return nil
}

func (s *stubRepository) ReplacePlacementTags(_ context.Context, placementID int, tags []string) error {
	p, ok := s.placements[placementID]
	if !ok {
		return apperr.NotFound("Book in shelf")
	}
	p.Tags = tags
	return nil
}

func (s *stubRepository) ListComments(_ context.Context, shelfUID string) ([]*Comment, error) {
	var comments []*Comment
	for _, c := range s.comments {
		if c.ShelfUID == shelfUID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func (s *stubRepository) FindCommentByID(_ context.Context, id int) (*Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return c, nil
}

func (s *stubRepository) CreateComment(_ context.Context, comment *Comment) error {
	comment.ID = s.nextID
	comment.PubDate = time.Now()
	s.nextID++
	s.comments[comment.ID] = comment
	return nil
}

func (s *stubRepository) DeleteComment(_ context.Context, id int) error {
	if _, ok := s.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(s.comments, id)
	return nil
}

func (s *stubRepository) FindRate(_ context.Context, shelfUID, userUID string) (*Rate, error) {
	for _, r := range s.rates {
		if r.ShelfUID == shelfUID && r.UserUID == userUID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubRepository) CreateRate(_ context.Context, rate *Rate) error {
	rate.ID = s.nextID
	s.nextID++
	s.rates[rate.ID] = rate
	return nil
}

func (s *stubRepository) DeleteRate(_ context.Context, id int) error {
	if _, ok := s.rates[id]; !ok {
		return apperr.NotFound("Rate")
	}
	delete(s.rates, id)
	return nil
}

// stubCatalog satisfies [BookCatalog] with a fixed set of known book IDs.
type stubCatalog struct {
	known map[int]bool
}

func (s *stubCatalog) Exists(_ context.Context, id int) (bool, error) {
	return s.known[id], nil
}

func (s *stubCatalog) FilterExisting(_ context.Context, ids []int) ([]int, error) {
	var existing []int
	for _, id := range ids {
		if s.known[id] {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

// stubUsers satisfies [UserDirectory] and records materialised profiles.
type stubUsers struct {
	ensured []string
}

func (s *stubUsers) EnsureUser(_ context.Context, uid, _ string) error {
	s.ensured = append(s.ensured, uid)
	return nil
}

func newTestService(repo *stubRepository, knownBooks ...int) *Service {
	catalog := &stubCatalog{known: make(map[int]bool)}
	for _, id := range knownBooks {
		catalog.known[id] = true
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, catalog, &stubUsers{}, logger)
}

func seedShelf(repo *stubRepository, uid, owner string, visibility Visibility) {
	repo.shelves[uid] = &Shelf{UID: uid, Name: "to read", Type: visibility, UserUID: owner}
}

// # Visibility Guards

/*
TestGetShelf_Visibility walks the visibility state machine: public open to
all, private gated to the owner, unknown UID always a 404.
*/
func TestGetShelf_Visibility(t *testing.T) {
	ctx := context.Background()

	repo := newStubRepository()
	seedShelf(repo, "pub-1", "owner", VisibilityPublic)
	seedShelf(repo, "priv-1", "owner", VisibilityPrivate)
	service := newTestService(repo)

	tests := []struct {
		name     string
		uid      string
		caller   *string
		wantCode string
	}{
		{"public_anonymous", "pub-1", nil, ""},
		{"public_other_user", "pub-1", pointer.To("stranger"), ""},
		{"private_owner", "priv-1", pointer.To("owner"), ""},
		{"private_anonymous", "priv-1", nil, "FORBIDDEN"},
		{"private_other_user", "priv-1", pointer.To("stranger"), "FORBIDDEN"},
		{"missing_shelf_anonymous", "nope", nil, "NOT_FOUND"},
		{"missing_shelf_owner", "nope", pointer.To("owner"), "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shelf, err := service.GetShelf(ctx, tt.uid, tt.caller)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.uid, shelf.UID)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

// # Creation

/*
TestCreateShelf covers payload validation, the private default and the
silent dropping of unknown book IDs.
*/
func TestCreateShelf(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_aggregate_with_known_books", func(t *testing.T) {
		repo := newStubRepository()
		service := newTestService(repo, 1, 2)

		shelf, err := service.CreateShelf(ctx, "owner", "kawabata", CreateParams{
			Name:    "winter reading",
			Type:    VisibilityPublic,
			Tags:    []string{"japan", "classics"},
			BookIDs: []int{1, 2, 99},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, shelf.UID)
		// 99 is unknown and silently dropped
		assert.Len(t, shelf.Books, 2)
	})

	t.Run("empty_type_defaults_to_private", func(t *testing.T) {
		repo := newStubRepository()
		service := newTestService(repo)

		shelf, err := service.CreateShelf(ctx, "owner", "kawabata", CreateParams{Name: "drafts"})
		require.NoError(t, err)
		assert.Equal(t, VisibilityPrivate, shelf.Type)
	})

	t.Run("missing_name_rejected", func(t *testing.T) {
		repo := newStubRepository()
		service := newTestService(repo)

		_, err := service.CreateShelf(ctx, "owner", "kawabata", CreateParams{Type: VisibilityPublic})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("unknown_visibility_rejected", func(t *testing.T) {
		repo := newStubRepository()
		service := newTestService(repo)

		_, err := service.CreateShelf(ctx, "owner", "kawabata", CreateParams{Name: "x", Type: "secret"})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

// # Placement Guards

/*
TestRemoveBook verifies the guard ordering for placement removal: shelf
existence, placement existence, parent match, shelf ownership.
*/
func TestRemoveBook(t *testing.T) {
	ctx := context.Background()

	setup := func() (*Service, *stubRepository) {
		repo := newStubRepository()
		seedShelf(repo, "shelf-1", "owner", VisibilityPublic)
		seedShelf(repo, "shelf-2", "owner", VisibilityPublic)
		repo.placements[10] = &BookInShelf{ID: 10, BookID: 1, ShelfUID: "shelf-1"}
		return newTestService(repo), repo
	}

	t.Run("owner_removes_placement", func(t *testing.T) {
		service, repo := setup()

		require.NoError(t, service.RemoveBook(ctx, "shelf-1", 10, "owner"))
		assert.NotContains(t, repo.placements, 10)
	})

	t.Run("missing_shelf_wins", func(t *testing.T) {
		service, _ := setup()

		err := service.RemoveBook(ctx, "nope", 10, "owner")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
		assert.Contains(t, ae.Message, "Shelf")
	})

	t.Run("missing_placement_is_not_found", func(t *testing.T) {
		service, _ := setup()

		err := service.RemoveBook(ctx, "shelf-1", 404, "owner")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("wrong_parent_is_validation_error", func(t *testing.T) {
		service, _ := setup()

		err := service.RemoveBook(ctx, "shelf-2", 10, "owner")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("non_owner_is_forbidden", func(t *testing.T) {
		service, repo := setup()

		err := service.RemoveBook(ctx, "shelf-1", 10, "intruder")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
		assert.Contains(t, repo.placements, 10)
	})
}

/*
TestAddBook covers ownership and book existence for new placements, and
that repeated placement of the same book is allowed.
*/
func TestAddBook(t *testing.T) {
	ctx := context.Background()

	t.Run("owner_places_known_book_twice", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "shelf-1", "owner", VisibilityPrivate)
		service := newTestService(repo, 1)

		first, err := service.AddBook(ctx, "shelf-1", "owner", 1, []string{"favourite"})
		require.NoError(t, err)
		assert.Equal(t, []string{"favourite"}, first.Tags)

		second, err := service.AddBook(ctx, "shelf-1", "owner", 1, nil)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("non_owner_is_forbidden", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "shelf-1", "owner", VisibilityPublic)
		service := newTestService(repo, 1)

		_, err := service.AddBook(ctx, "shelf-1", "intruder", 1, nil)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	})

	t.Run("unknown_book_is_not_found", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "shelf-1", "owner", VisibilityPublic)
		service := newTestService(repo)

		_, err := service.AddBook(ctx, "shelf-1", "owner", 99, nil)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

// # Social Guards

/*
TestShelfComments verifies visibility gating and the deletion guard chain
for shelf comments.
*/
func TestShelfComments(t *testing.T) {
	ctx := context.Background()

	t.Run("private_shelf_blocks_foreign_commenter", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "priv-1", "owner", VisibilityPrivate)
		service := newTestService(repo)

		_, err := service.CreateComment(ctx, "priv-1", "stranger", "s", "nice shelf")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	})

	t.Run("stranger_comments_on_public_shelf", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "pub-1", "owner", VisibilityPublic)
		service := newTestService(repo)

		comment, err := service.CreateComment(ctx, "pub-1", "stranger", "s", "nice shelf")
		require.NoError(t, err)
		assert.NotZero(t, comment.ID)
	})

	t.Run("foreign_comment_delete_forbidden", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "pub-1", "owner", VisibilityPublic)
		repo.comments[10] = &Comment{ID: 10, ShelfUID: "pub-1", UserUID: "author"}
		service := newTestService(repo)

		err := service.DeleteComment(ctx, "pub-1", 10, "intruder")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
	})

	t.Run("wrong_parent_is_validation_error", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "pub-1", "owner", VisibilityPublic)
		seedShelf(repo, "pub-2", "owner", VisibilityPublic)
		repo.comments[10] = &Comment{ID: 10, ShelfUID: "pub-1", UserUID: "author"}
		service := newTestService(repo)

		err := service.DeleteComment(ctx, "pub-2", 10, "author")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

/*
TestShelfRating covers the single-vote flow for shelves including the
duplicate and missing vote rejections.
*/
func TestShelfRating(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate_vote_rejected", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "pub-1", "owner", VisibilityPublic)
		service := newTestService(repo)

		_, err := service.RateShelf(ctx, "pub-1", "uid-1", "kawabata", 5)
		require.NoError(t, err)

		_, err = service.RateShelf(ctx, "pub-1", "uid-1", "kawabata", 3)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "RATE_ALREADY_EXISTS", ae.Code)
		assert.Equal(t, 404, ae.HTTPStatus)
	})

	t.Run("withdraw_without_vote_rejected", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "pub-1", "owner", VisibilityPublic)
		service := newTestService(repo)

		err := service.UnrateShelf(ctx, "pub-1", "uid-1")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "RATE_NOT_FOUND", ae.Code)
	})

	t.Run("withdraw_then_revote", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "pub-1", "owner", VisibilityPublic)
		service := newTestService(repo)

		_, err := service.RateShelf(ctx, "pub-1", "uid-1", "kawabata", 5)
		require.NoError(t, err)
		require.NoError(t, service.UnrateShelf(ctx, "pub-1", "uid-1"))

		_, err = service.RateShelf(ctx, "pub-1", "uid-1", "kawabata", 2)
		require.NoError(t, err)
	})

	t.Run("out_of_range_value_rejected", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "pub-1", "owner", VisibilityPublic)
		service := newTestService(repo)

		_, err := service.RateShelf(ctx, "pub-1", "uid-1", "kawabata", 0)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

// # Tag Hygiene

/*
TestTagDeduplication asserts that repeated tag names in client payloads are
collapsed before they reach the repository. The tag junctions carry composite
primary keys, so a verbatim repeat would abort the write transaction.
*/
func TestTagDeduplication(t *testing.T) {
	ctx := context.Background()

	t.Run("create_shelf_collapses_repeated_tags", func(t *testing.T) {
		repo := newStubRepository()
		service := newTestService(repo)

		shelf, err := service.CreateShelf(ctx, "uid-1", "kawabata", CreateParams{
			Name: "favourites",
			Tags: []string{"japan", "sci-fi", "japan", "sci-fi"},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"japan", "sci-fi"}, shelf.Tags)
	})

	t.Run("add_book_collapses_repeated_tags", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "pub-1", "owner", VisibilityPublic)
		service := newTestService(repo, 7)

		placement, err := service.AddBook(ctx, "pub-1", "owner", 7, []string{"signed", "signed", "loaned"})
		require.NoError(t, err)

		assert.Equal(t, []string{"signed", "loaned"}, placement.Tags)
		assert.Equal(t, []string{"signed", "loaned"}, repo.placements[placement.ID].Tags)
	})

	t.Run("replace_tags_collapses_repeated_tags", func(t *testing.T) {
		repo := newStubRepository()
		seedShelf(repo, "pub-1", "owner", VisibilityPublic)
		repo.placements[4] = &BookInShelf{ID: 4, BookID: 7, ShelfUID: "pub-1", Tags: []string{"old"}}
		service := newTestService(repo, 7)

		placement, err := service.ReplaceBookTags(ctx, "pub-1", 4, "owner", []string{"signed", "signed"})
		require.NoError(t, err)

		assert.Equal(t, []string{"signed"}, placement.Tags)
		assert.Equal(t, []string{"signed"}, repo.placements[4].Tags)
	})
}
