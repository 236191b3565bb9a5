// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gdlists/demonlist/internal/platform/apperr"
	"github.com/gdlists/demonlist/internal/platform/constants"
	"github.com/gdlists/demonlist/internal/platform/middleware"
	requestutil "github.com/gdlists/demonlist/internal/platform/request"
	"github.com/gdlists/demonlist/internal/platform/respond"
	"github.com/gdlists/demonlist/internal/platform/validate"
	"github.com/gdlists/demonlist/internal/users/account"
)

// # Definitions & Constructors

// Handler implements the identity gateway HTTP endpoints.
//
// # Scope
//
// This handler manages the session lifecycle entry points (sign-in against
// the external provider, refresh rotation, sign-out) plus the current-user
// lookup. Profile administration lives in the account package.
type Handler struct {
	authService *Service
	gate        *account.Gate
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, gate *account.Gate) *Handler {
	return &Handler{authService: service, gate: gate}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signin  : Exchanges a provider token for a session.
//   - POST /refresh : Rotates the refresh token cookie.
//   - POST /signout : Revokes the current session.
//   - GET  /me      : Returns the live profile of the caller.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signin", handler.signIn)
	router.Post("/refresh", handler.refresh)
	router.Post("/signout", handler.signOut)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(handler.gate.RequireProfile)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type signInRequest struct {
	ProviderToken string `json:"provider_token"`
}

/*
SignIn exchanges a provider identity token for a local session.

POST /api/v1/auth/signin

Description: Verifies the external identity token, materializes a profile on
first sign-in, and injects a secure refresh token cookie into the response.

Request:
  - Body: signInRequest (ProviderToken)

Response:
  - 200: Session: Access token and User profile
  - 401: ErrUnauthorized: Invalid provider token or banned account
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldProviderToken, input.ProviderToken)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.SignIn(request.Context(), input.ProviderToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session.RefreshToken)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldUser:        session.Profile,
	})
}

/*
Refresh issues a new access token using a valid refresh token.

POST /api/v1/auth/refresh

Description: Rotates the session by validating the refresh token cookie and
issuing a fresh access token and an updated refresh token.

Response:
  - 200: RefreshResponse: New access token credentials
  - 401: ErrUnauthorized: Missing, invalid, or banned session
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token in cookies"))
		return
	}

	session, err := handler.authService.Refresh(request.Context(), cookie.Value)
	if err != nil {
		clearRefreshCookie(writer)
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session.RefreshToken)

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		"token_type":     "Bearer",
		"expires_in":     AccessTokenTTL / time.Second,
	})
}

/*
SignOut terminates the current user session.

POST /api/v1/auth/signout

Description: Invalidates the refresh token (if present) and clears the
security cookies from the client.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) signOut(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)

	if err == nil && cookie != nil && cookie.Value != "" {
		_ = handler.authService.SignOut(request.Context(), cookie.Value)
	}

	clearRefreshCookie(writer)

	respond.NoContent(writer)
}

/*
Me returns the live profile of the authenticated caller.

GET /api/v1/auth/me

Description: Reads the profile loaded by the gate middleware, so the response
reflects current role and ban state rather than the access token snapshot.

Response:
  - 200: Profile: Current profile
  - 401: ErrUnauthorized: Missing session or banned account
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	profile := account.GetProfile(request.Context())
	if profile == nil {
		respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
		return
	}

	respond.OK(writer, profile)
}

// setRefreshCookie installs the scoped, HTTP-only refresh token cookie.
func setRefreshCookie(writer http.ResponseWriter, refreshToken string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    refreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  time.Now().Add(RefreshTokenTTL),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// clearRefreshCookie expires the refresh token cookie on the client.
func clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
