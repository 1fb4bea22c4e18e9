// Copyright (c) 2026 Inkwell. All rights reserved.

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle — account creation,
login, logout, and refresh-token rotation.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Both tokens travel as HTTP-only cookies; no token ever appears
    in a response body.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, cookies, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CodeeWithRafay/inkwell/internal/platform/apperr"
	"github.com/CodeeWithRafay/inkwell/internal/platform/constants"
	requestutil "github.com/CodeeWithRafay/inkwell/internal/platform/request"
	"github.com/CodeeWithRafay/inkwell/internal/platform/respond"
	"github.com/CodeeWithRafay/inkwell/internal/platform/validate"
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

// RegisterRoutes mounts the authentication endpoints on the given router.
//
// # Endpoints
//   - POST /register : Creates a new account and opens its first session.
//   - POST /login    : Authenticates and rotates the session.
//   - POST /logout   : Revokes the refresh record and clears cookies.
//   - POST /refresh  : Rotates the token pair from the refresh cookie.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Post("/refresh", handler.refresh)
}

// # Request Payloads

type registerRequest struct {
	Username        string `json:"username"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /register

Description: Validates input, checks for identity conflicts, persists a new
user profile, and establishes the first session via cookies.

Request:
  - Body: registerRequest (Username, Name, Email, Password, ConfirmPassword)

Response:
  - 201: {user, auth:true} with both auth cookies set
  - 400: Validation failure
  - 409: Email or username already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLen).
		MaxLen(FieldUsername, input.Username, UsernameMaxLen).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLen).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password).
		Equals(FieldConfirmPassword, input.ConfirmPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setAuthCookies(writer, session)

	respond.Created(writer, map[string]any{
		FieldUser: session.User.View(),
		FieldAuth: true,
	})
}

/*
Login authenticates a user and establishes a session.

POST /login

Description: Verifies credentials, rotates the refresh record, and injects
the fresh token pair as HTTP-only cookies.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: {user, auth:true} with both auth cookies set
  - 401: Invalid username or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, UsernameMinLen).
		MaxLen(FieldUsername, input.Username, UsernameMaxLen).
		Required(FieldPassword, input.Password).
		Password(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setAuthCookies(writer, session)

	respond.OK(writer, map[string]any{
		FieldUser: session.User.View(),
		FieldAuth: true,
	})
}

/*
Logout terminates the current user session.

POST /logout

Description: Invalidates the refresh record (if present) and clears both
security cookies from the client. Succeeds even when no matching record
exists — logout is idempotent.

Response:
  - 200: {user:null, auth:false}
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)

	if err == nil && cookie.Value != "" {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	clearAuthCookies(writer)

	respond.OK(writer, map[string]any{
		FieldUser: nil,
		FieldAuth: false,
	})
}

/*
Refresh issues a new token pair using a valid refresh token.

POST /refresh

Description: Rotates the session by validating the refresh-token cookie
against both its signature and the stored per-account record, then issuing
a fresh pair. The presented token is single-use — it dies with the rotation.

Response:
  - 200: {user, auth:true} with rotated cookies
  - 401: Missing, invalid, expired, or stale refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Unauthorized"))
		return
	}

	session, err := handler.authService.Refresh(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setAuthCookies(writer, session)

	respond.OK(writer, map[string]any{
		FieldUser: session.User.View(),
		FieldAuth: true,
	})
}

// # Cookie Plumbing

// setAuthCookies writes both tokens as HTTP-only cookies.
//
// The cookie lifetime (24h) is independent of the tokens' cryptographic TTLs
// (30m/60m): an expired token inside a live cookie fails verification, so
// token expiry stays authoritative.
func setAuthCookies(writer http.ResponseWriter, session *AuthSession) {
	maxAge := int(constants.AuthCookieMaxAge.Seconds())

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     constants.AuthCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.AuthCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearAuthCookies expires both auth cookies on the client.
func clearAuthCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     constants.AuthCookiePath,
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
