// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jbook/internal/platform/apperr"
)

// # Test Doubles

// stubRepository is an in-memory [Repository] for exercising service guards.
type stubRepository struct {
	books    map[int]*Book
	comments map[int]*Comment
	rates    map[int]*Rate
	nextID   int
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		books:    make(map[int]*Book),
		comments: make(map[int]*Comment),
		rates:    make(map[int]*Rate),
		nextID:   1,
	}
}

func (s *stubRepository) List(_ context.Context, _ Filter, _ *string, _, _ int) ([]*Book, error) {
	var books []*Book
	for _, b := range s.books {
		books = append(books, b)
	}
	return books, nil
}

func (s *stubRepository) FindByID(_ context.Context, id int, _ *string) (*Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return b, nil
}

func (s *stubRepository) Exists(_ context.Context, id int) (bool, error) {
	_, ok := s.books[id]
	return ok, nil
}

func (s *stubRepository) FilterExisting(_ context.Context, ids []int) ([]int, error) {
	var existing []int
	for _, id := range ids {
		if _, ok := s.books[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

func (s *stubRepository) ListComments(_ context.Context, bookID int) ([]*Comment, error) {
	var comments []*Comment
	for _, c := range s.comments {
		if c.BookID == bookID {
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

func (s *stubRepository) FindRate(_ context.Context, bookID int, userUID string) (*Rate, error) {
	for _, r := range s.rates {
		if r.BookID == bookID && r.UserUID == userUID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubRepository) CreateRate(_ context.Context, rate *Rate) error {
	rate.ID = s.nextID
	rate.RatedAt = time.Now()
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

// stubUsers satisfies [UserDirectory] and records materialised profiles.
type stubUsers struct {
	ensured []string
}

func (s *stubUsers) EnsureUser(_ context.Context, uid, _ string) error {
	s.ensured = append(s.ensured, uid)
	return nil
}

func newTestService(repo *stubRepository) (*Service, *stubUsers) {
	users := &stubUsers{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, users, logger), users
}

func seedBook(repo *stubRepository, id int) {
	repo.books[id] = &Book{ID: id, Title: "Snow Country"}
}

// # Comment Guards

/*
TestCreateComment covers validation, parent existence and profile
materialisation for the comment creation flow.
*/
func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_comment_on_existing_book", func(t *testing.T) {
		repo := newStubRepository()
		seedBook(repo, 1)
		service, users := newTestService(repo)

		comment, err := service.CreateComment(ctx, 1, "uid-1", "kawabata", "a quiet masterpiece")
		require.NoError(t, err)
		assert.NotZero(t, comment.ID)
		assert.Equal(t, "uid-1", comment.UserUID)
		assert.Equal(t, []string{"uid-1"}, users.ensured)
	})

	t.Run("missing_book_returns_not_found", func(t *testing.T) {
		repo := newStubRepository()
		service, users := newTestService(repo)

		_, err := service.CreateComment(ctx, 99, "uid-1", "kawabata", "lost")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
		assert.Empty(t, users.ensured)
	})

	t.Run("empty_content_rejected", func(t *testing.T) {
		repo := newStubRepository()
		seedBook(repo, 1)
		service, _ := newTestService(repo)

		_, err := service.CreateComment(ctx, 1, "uid-1", "kawabata", "   ")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})
}

/*
TestDeleteComment verifies the guard ordering: book existence, comment
existence, parent match, ownership.
*/
func TestDeleteComment(t *testing.T) {
	ctx := context.Background()

	setup := func() (*Service, *stubRepository) {
		repo := newStubRepository()
		seedBook(repo, 1)
		seedBook(repo, 2)
		repo.comments[10] = &Comment{ID: 10, BookID: 1, UserUID: "owner"}
		service, _ := newTestService(repo)
		return service, repo
	}

	t.Run("owner_deletes_own_comment", func(t *testing.T) {
		service, repo := setup()

		err := service.DeleteComment(ctx, 1, 10, "owner")
		require.NoError(t, err)
		assert.NotContains(t, repo.comments, 10)
	})

	t.Run("missing_book_wins_over_missing_comment", func(t *testing.T) {
		service, _ := setup()

		err := service.DeleteComment(ctx, 99, 404, "owner")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
		assert.Contains(t, ae.Message, "Book")
	})

	t.Run("missing_comment_returns_not_found", func(t *testing.T) {
		service, _ := setup()

		err := service.DeleteComment(ctx, 1, 404, "owner")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
		assert.Contains(t, ae.Message, "Comment")
	})

	t.Run("wrong_parent_is_validation_error", func(t *testing.T) {
		service, _ := setup()

		err := service.DeleteComment(ctx, 2, 10, "owner")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("foreign_comment_is_forbidden", func(t *testing.T) {
		service, repo := setup()

		err := service.DeleteComment(ctx, 1, 10, "intruder")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "FORBIDDEN", ae.Code)
		assert.Contains(t, repo.comments, 10)
	})
}

// # Rating Guards

/*
TestRateBook covers the single-vote rating flow including the duplicate
rejection and value range validation.
*/
func TestRateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("first_vote_persists", func(t *testing.T) {
		repo := newStubRepository()
		seedBook(repo, 1)
		service, users := newTestService(repo)

		rate, err := service.RateBook(ctx, 1, "uid-1", "kawabata", 4)
		require.NoError(t, err)
		assert.Equal(t, 4, rate.Rate)
		assert.Equal(t, []string{"uid-1"}, users.ensured)
	})

	t.Run("second_vote_rejected", func(t *testing.T) {
		repo := newStubRepository()
		seedBook(repo, 1)
		service, _ := newTestService(repo)

		_, err := service.RateBook(ctx, 1, "uid-1", "kawabata", 4)
		require.NoError(t, err)

		_, err = service.RateBook(ctx, 1, "uid-1", "kawabata", 5)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "RATE_ALREADY_EXISTS", ae.Code)
		assert.Equal(t, 404, ae.HTTPStatus)
	})

	t.Run("different_users_vote_independently", func(t *testing.T) {
		repo := newStubRepository()
		seedBook(repo, 1)
		service, _ := newTestService(repo)

		_, err := service.RateBook(ctx, 1, "uid-1", "kawabata", 4)
		require.NoError(t, err)

		_, err = service.RateBook(ctx, 1, "uid-2", "mishima", 2)
		require.NoError(t, err)
	})

	t.Run("out_of_range_value_rejected", func(t *testing.T) {
		repo := newStubRepository()
		seedBook(repo, 1)
		service, _ := newTestService(repo)

		for _, value := range []int{0, 6, -1} {
			_, err := service.RateBook(ctx, 1, "uid-1", "kawabata", value)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		}
	})

	t.Run("missing_book_returns_not_found", func(t *testing.T) {
		repo := newStubRepository()
		service, _ := newTestService(repo)

		_, err := service.RateBook(ctx, 99, "uid-1", "kawabata", 3)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

/*
TestUnrateBook verifies withdrawal semantics including the missing-vote
rejection.
*/
func TestUnrateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("withdraws_existing_vote", func(t *testing.T) {
		repo := newStubRepository()
		seedBook(repo, 1)
		service, _ := newTestService(repo)

		_, err := service.RateBook(ctx, 1, "uid-1", "kawabata", 4)
		require.NoError(t, err)

		require.NoError(t, service.UnrateBook(ctx, 1, "uid-1"))

		// Withdrawal frees the slot for a new vote
		_, err = service.RateBook(ctx, 1, "uid-1", "kawabata", 5)
		require.NoError(t, err)
	})

	t.Run("missing_vote_rejected", func(t *testing.T) {
		repo := newStubRepository()
		seedBook(repo, 1)
		service, _ := newTestService(repo)

		err := service.UnrateBook(ctx, 1, "uid-1")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "RATE_NOT_FOUND", ae.Code)
		assert.Equal(t, 404, ae.HTTPStatus)
	})

	t.Run("missing_book_wins_over_missing_vote", func(t *testing.T) {
		repo := newStubRepository()
		service, _ := newTestService(repo)

		err := service.UnrateBook(ctx, 99, "uid-1")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}
