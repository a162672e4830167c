// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/sec"
	"github.com/taibuivan/jbook/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName *string
	Surname   *string
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if identity exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		UID:          uuidv7.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		Surname:      input.Surname,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered", "user_uid", user.UID, "username", user.Username)

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // Can be Username or Email
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues security tokens.

Description: Verifies identity, performs constant-time password comparison,
and initializes a new session with rotated security tokens.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	var user *User
	var err error
	// Flexible login: look up by Email or Username
	user, err = service.userRepository.FindByEmail(context, input.Login)
	if err != nil {
		user, err = service.userRepository.FindByUsername(context, input.Login)
	}

	// If (err != nil) the user does not exist. Generic message to prevent enumeration.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// Lazily materialized accounts hold an empty hash and cannot authenticate
	// locally; their tokens come from the external issuer.
	if user.PasswordHash == "" || !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	return service.establishSession(context, user, input.UserAgent, input.IPAddress)
}

/*
Logout permanently revokes the user's active session.

Description: Ensures that a tracked refresh token can never be used again.
Logging out with an unknown or expired token is still a success (idempotent
operation).

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {

	if err := service.sessionRepository.Revoke(context, sec.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

/*
RefreshSession implements the Refresh Token Rotation mechanism.

Description: Verifies the existing refresh token, revokes it to prevent reuse
(replay attack mitigation), and issues a fresh pair of rotated tokens.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {

	// Hash the incoming refresh token to look it up
	tokenHash := sec.HashToken(refreshToken)
	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)

	// If (err != nil) the token is either expired, already revoked, or completely invalid.
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	// Rotation: Revoke the old session to prevent replay attacks
	if err := service.sessionRepository.Revoke(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	// Fetch the user associated with this session
	user, err := service.userRepository.FindByUID(context, session.UserUID)
	if err != nil {
		return nil, apperr.Unauthorized("User not found or suspended")
	}

	return service.establishSession(context, user, userAgent, ipAddress)
}

// establishSession mints the access/refresh token pair and persists the
// tracking session keyed by the refresh token hash.
func (service *Service) establishSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {

	// Roles are not persisted locally; accounts registered here hold the
	// baseline member role, elevated tokens come from the external issuer.
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.UID, user.Username, string(sec.RoleMember), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Generate long-lived Refresh Token
	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Create and persist the tracking session
	expiresAt := time.Now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuidv7.New(),
		UserUID:   user.UID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := service.sessionRepository.Create(context, sec.HashToken(refreshToken), session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

// # Profile Access

/*
Me returns the profile of the authenticated caller.

Parameters:
  - context: context.Context
  - userUID: string

Returns:
  - *User: Hydrated entity
  - err: apperr.NotFound or storage errors
*/
func (service *Service) Me(context context.Context, userUID string) (*User, error) {
	return service.userRepository.FindByUID(context, userUID)
}
