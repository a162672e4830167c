// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Sessions are keyed by the SHA-256 hash of the refresh token and expire
// with the token, so Redis does the expiry housekeeping and a revoked or
// expired session is simply an absent key.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

/*
Create stores a session under its token hash until the session expires.

Parameters:
  - context: context.Context
  - tokenHash: string
  - session: *Session

Returns:
  - error: Serialization or execution errors
*/
func (repository *RedisSessionRepository) Create(context context.Context, tokenHash string, session *Session) error {

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session already expired")
	}

	if err := repository.client.Set(context, sessionKey(tokenHash), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash returns the live session for the given token hash.

Description: An absent key means the token was never issued, has expired,
or was revoked; all three collapse into the same Unauthorized outcome.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated entity
  - error: apperr.Unauthorized or connectivity errors
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {

	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}

	return session, nil
}

/*
Revoke removes the session stored under the given token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Execution failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {

	if err := repository.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
