// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/sec"
)

// # Test Doubles

type stubUserRepository struct {
	users   map[string]*User // keyed by UID
	ensured []string
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{users: map[string]*User{}}
}

func (s *stubUserRepository) FindByUID(_ context.Context, uid string) (*User, error) {
	if user, ok := s.users[uid]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (s *stubUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range s.users {
		if user.Email == email && email != "" {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (s *stubUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (s *stubUserRepository) Create(_ context.Context, user *User) error {
	user.CreatedAt = time.Now()
	s.users[user.UID] = user
	return nil
}

func (s *stubUserRepository) EnsureUser(_ context.Context, uid, username string) error {
	s.ensured = append(s.ensured, uid)
	if _, ok := s.users[uid]; !ok {
		s.users[uid] = &User{UID: uid, Username: username}
	}
	return nil
}

type stubSessionRepository struct {
	sessions map[string]*Session // keyed by token hash
}

func newStubSessionRepository() *stubSessionRepository {
	return &stubSessionRepository{sessions: map[string]*Session{}}
}

func (s *stubSessionRepository) Create(_ context.Context, tokenHash string, session *Session) error {
	s.sessions[tokenHash] = session
	return nil
}

func (s *stubSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	if session, ok := s.sessions[tokenHash]; ok {
		return session, nil
	}
	return nil, apperr.Unauthorized("Invalid or expired refresh token")
}

func (s *stubSessionRepository) Revoke(_ context.Context, tokenHash string) error {
	delete(s.sessions, tokenHash)
	return nil
}

type stubTokenProvider struct{}

func (stubTokenProvider) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	return "jwt:" + userID + ":" + role, nil
}

func newTestService(users *stubUserRepository, sessions *stubSessionRepository) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(users, sessions, stubTokenProvider{}, logger)
}

func seedUser(t *testing.T, users *stubUserRepository, uid, username, email, password string) *User {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	user := &User{UID: uid, Username: username, Email: email, PasswordHash: hash}
	users.users[uid] = user
	return user
}

// # Registration

func TestRegister(t *testing.T) {
	t.Run("creates_account_with_hashed_password", func(t *testing.T) {
		users := newStubUserRepository()
		service := newTestService(users, newStubSessionRepository())

		user, err := service.Register(context.Background(), RegisterInput{
			Username: "reader-one",
			Email:    "reader@example.com",
			Password: "hunter2hunter2",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, user.UID)
		assert.NotEqual(t, "hunter2hunter2", user.PasswordHash)
		assert.True(t, sec.CheckPasswordHash("hunter2hunter2", user.PasswordHash))
	})

	t.Run("rejects_duplicate_email", func(t *testing.T) {
		users := newStubUserRepository()
		seedUser(t, users, "u1", "existing", "taken@example.com", "password123")
		service := newTestService(users, newStubSessionRepository())

		_, err := service.Register(context.Background(), RegisterInput{
			Username: "newcomer",
			Email:    "taken@example.com",
			Password: "password123",
		})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "CONFLICT", appError.Code)
		assert.Contains(t, appError.Message, "Email")
	})

	t.Run("rejects_duplicate_username", func(t *testing.T) {
		users := newStubUserRepository()
		seedUser(t, users, "u1", "existing", "first@example.com", "password123")
		service := newTestService(users, newStubSessionRepository())

		_, err := service.Register(context.Background(), RegisterInput{
			Username: "existing",
			Email:    "second@example.com",
			Password: "password123",
		})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "CONFLICT", appError.Code)
		assert.Contains(t, appError.Message, "Username")
	})
}

// # Login & Sessions

func TestLogin(t *testing.T) {
	t.Run("issues_tokens_and_tracks_session", func(t *testing.T) {
		users := newStubUserRepository()
		sessions := newStubSessionRepository()
		seedUser(t, users, "u1", "reader", "reader@example.com", "password123")
		service := newTestService(users, sessions)

		session, err := service.Login(context.Background(), LoginInput{
			Login:     "reader@example.com",
			Password:  "password123",
			UserAgent: "test-agent",
		})
		require.NoError(t, err)

		assert.Equal(t, "jwt:u1:member", session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
		assert.True(t, session.RefreshTokenExpiresAt.After(time.Now()))

		// The session must be keyed by the token hash, never the raw token.
		require.Len(t, sessions.sessions, 1)
		_, rawKeyed := sessions.sessions[session.RefreshToken]
		assert.False(t, rawKeyed)
		stored, err := sessions.FindByTokenHash(context.Background(), sec.HashToken(session.RefreshToken))
		require.NoError(t, err)
		assert.Equal(t, "u1", stored.UserUID)
		assert.Equal(t, "test-agent", stored.UserAgent)
	})

	t.Run("accepts_username_as_login", func(t *testing.T) {
		users := newStubUserRepository()
		seedUser(t, users, "u1", "reader", "reader@example.com", "password123")
		service := newTestService(users, newStubSessionRepository())

		session, err := service.Login(context.Background(), LoginInput{
			Login:    "reader",
			Password: "password123",
		})
		require.NoError(t, err)
		assert.Equal(t, "u1", session.User.UID)
	})

	t.Run("rejects_wrong_password", func(t *testing.T) {
		users := newStubUserRepository()
		seedUser(t, users, "u1", "reader", "reader@example.com", "password123")
		service := newTestService(users, newStubSessionRepository())

		_, err := service.Login(context.Background(), LoginInput{
			Login:    "reader@example.com",
			Password: "wrong-password",
		})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
	})

	t.Run("rejects_unknown_login", func(t *testing.T) {
		service := newTestService(newStubUserRepository(), newStubSessionRepository())

		_, err := service.Login(context.Background(), LoginInput{
			Login:    "ghost@example.com",
			Password: "password123",
		})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
	})

	t.Run("rejects_materialized_account_without_password", func(t *testing.T) {
		// Accounts created lazily from externally-issued tokens hold an empty
		// hash and must never authenticate through the local login flow.
		users := newStubUserRepository()
		users.users["u2"] = &User{UID: "u2", Username: "external"}
		service := newTestService(users, newStubSessionRepository())

		_, err := service.Login(context.Background(), LoginInput{
			Login:    "external",
			Password: "",
		})

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
	})
}

func TestRefreshSession(t *testing.T) {
	login := func(t *testing.T, service *Service) *LoginSession {
		t.Helper()
		session, err := service.Login(context.Background(), LoginInput{
			Login:    "reader@example.com",
			Password: "password123",
		})
		require.NoError(t, err)
		return session
	}

	t.Run("rotates_refresh_token", func(t *testing.T) {
		users := newStubUserRepository()
		sessions := newStubSessionRepository()
		seedUser(t, users, "u1", "reader", "reader@example.com", "password123")
		service := newTestService(users, sessions)

		original := login(t, service)
		rotated, err := service.RefreshSession(context.Background(), original.RefreshToken, "agent", "ip")
		require.NoError(t, err)

		assert.NotEqual(t, original.RefreshToken, rotated.RefreshToken)
		require.Len(t, sessions.sessions, 1)

		// The consumed token is revoked and cannot be replayed.
		_, err = service.RefreshSession(context.Background(), original.RefreshToken, "agent", "ip")
		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
	})

	t.Run("rejects_unknown_token", func(t *testing.T) {
		users := newStubUserRepository()
		seedUser(t, users, "u1", "reader", "reader@example.com", "password123")
		service := newTestService(users, newStubSessionRepository())

		_, err := service.RefreshSession(context.Background(), "never-issued", "agent", "ip")

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "UNAUTHORIZED", appError.Code)
	})
}

func TestLogout(t *testing.T) {
	t.Run("revokes_active_session", func(t *testing.T) {
		users := newStubUserRepository()
		sessions := newStubSessionRepository()
		seedUser(t, users, "u1", "reader", "reader@example.com", "password123")
		service := newTestService(users, sessions)

		session, err := service.Login(context.Background(), LoginInput{
			Login:    "reader@example.com",
			Password: "password123",
		})
		require.NoError(t, err)

		require.NoError(t, service.Logout(context.Background(), session.RefreshToken))
		assert.Empty(t, sessions.sessions)
	})

	t.Run("is_idempotent_for_unknown_token", func(t *testing.T) {
		service := newTestService(newStubUserRepository(), newStubSessionRepository())
		assert.NoError(t, service.Logout(context.Background(), "never-issued"))
	})
}
