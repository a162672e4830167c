// Copyright (c) 2026 JBook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from account
creation to session rotation and logout.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Handles JWT orchestration and refresh token cookie injection.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/jbook/internal/platform/apperr"
	"github.com/taibuivan/jbook/internal/platform/constants"
	"github.com/taibuivan/jbook/internal/platform/middleware"
	requestutil "github.com/taibuivan/jbook/internal/platform/request"
	"github.com/taibuivan/jbook/internal/platform/respond"
	"github.com/taibuivan/jbook/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns a JWT.
//   - POST /refresh  : Rotates the refresh token cookie.
//   - POST /logout   : Revokes the active session.
//   - GET  /me       : Returns the authenticated profile.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name,omitempty"`
	Surname   *string `json:"surname,omitempty"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/auth/register

Request:
  - Body: registerRequest (Username, Email, Password, FirstName, Surname)

Response:
  - 201: User: Created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		Surname:   input.Surname,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and establishes a session.

POST /api/v1/auth/login

Description: Verifies credentials, generates JWT access tokens, and injects
a secure refresh token cookie into the response.

Request:
  - Body: loginRequest (Login, Password)

Response:
  - 200: Session: Access token and User profile
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Login:     input.Login,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: getClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldUser:        session.User,
	})
}

/*
Refresh issues a new access token using a valid refresh token.

POST /api/v1/auth/refresh

Description: Rotates the session by validating the refresh token cookie
and issuing a fresh access token and an updated refresh token.

Response:
  - 200: RefreshResponse: New access token credentials
  - 401: ErrUnauthorized: Missing or invalid refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token in cookies"))
		return
	}

	session, err := handler.authService.RefreshSession(
		request.Context(),
		cookie.Value,
		request.UserAgent(),
		getClientIP(request),
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   AccessTokenTTL / time.Second,
	})
}

/*
Logout terminates the current user session.

POST /api/v1/auth/logout

Description: Invalidates the refresh token (if present) and clears the
security cookies from the client.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)

	if err == nil && cookie != nil && cookie.Value != "" {
		_ = handler.authService.Logout(request.Context(), cookie.Value)
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

/*
Me returns the authenticated user's profile.

GET /api/v1/auth/me

Response:
  - 200: User: Caller profile
  - 401: ErrUnauthorized: Missing token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userUID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), userUID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// setRefreshCookie injects the rotated refresh token into the response,
// scoped to the auth endpoints only.
func setRefreshCookie(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// getClientIP tries to extract the real IP address of a user over proxy environments.
func getClientIP(request *http.Request) string {

	ip := request.Header.Get("X-Real-IP")
	if ip == "" {
		ip = request.Header.Get("X-Forwarded-For")
	}

	if ip == "" {
		ip = request.RemoteAddr
	}
	return ip
}
