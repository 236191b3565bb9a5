// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package account

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gdlists/demonlist/internal/platform/apperr"
	"github.com/gdlists/demonlist/internal/platform/ctxkey"
	"github.com/gdlists/demonlist/internal/platform/ctxutil"
	"github.com/gdlists/demonlist/internal/platform/respond"
	"github.com/gdlists/demonlist/internal/platform/sec"
)

// # Authorization Predicate

// Authorize is the shared authorization predicate for moderation calls.
//
// It mirrors the route-level profile gate so that services remain safe even
// when invoked outside the HTTP stack. The check is pure and re-evaluated on
// every call.
func Authorize(actor *Profile, action sec.Action) error {
	if actor == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if actor.Banned {
		return apperr.Unauthorized("Account is banned")
	}
	if !sec.Allows(actor.Role, action) {
		return apperr.Forbidden("Insufficient permissions")
	}
	return nil
}

// # Profile Context

// WithProfile returns a new context with the live profile attached.
func WithProfile(ctx context.Context, profile *Profile) context.Context {
	return context.WithValue(ctx, ctxkey.KeyProfile, profile)
}

// GetProfile retrieves the [*Profile] loaded by the gate, or nil.
func GetProfile(ctx context.Context) *Profile {
	profile, ok := ctx.Value(ctxkey.KeyProfile).(*Profile)
	if !ok {
		return nil
	}
	return profile
}

// # Profile Gate Middleware

// Gate loads the live profile for authenticated requests and enforces the
// action policy per route.
//
// # Why re-fetch on every request?
//
// JWT claims are a snapshot from sign-in. Bans and demotions must take
// effect immediately, so authorization-sensitive routes read the stored
// profile on every request. A banned profile is rejected and all of its
// sessions are revoked — a banned user can never hold an active session.
type Gate struct {
	profiles Repository
	sessions SessionRevoker
	logger   *slog.Logger
}

// NewGate constructs the profile gate middleware factory.
func NewGate(profiles Repository, sessions SessionRevoker, logger *slog.Logger) *Gate {
	return &Gate{profiles: profiles, sessions: sessions, logger: logger}
}

// RequireProfile admits any authenticated, non-banned profile and injects it
// into the request context.
//
// Must be registered AFTER the token authentication middleware.
func (gate *Gate) RequireProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		profile, err := gate.load(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		next.ServeHTTP(writer, request.WithContext(WithProfile(request.Context(), profile)))
	})
}

// RequireAction admits only profiles the policy table allows to perform the
// given action, and injects the profile into the request context.
func (gate *Gate) RequireAction(action sec.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			profile, err := gate.load(request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			if !sec.Allows(profile.Role, action) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}
			next.ServeHTTP(writer, request.WithContext(WithProfile(request.Context(), profile)))
		})
	}
}

// load resolves the live profile for the request's token claims.
func (gate *Gate) load(request *http.Request) (*Profile, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	profile, err := gate.profiles.FindByID(request.Context(), claims.UserID)
	if err != nil {
		return nil, err
	}

	if profile.Banned {
		// Forced sign-out: drop every session this user still holds.
		if revokeErr := gate.sessions.RevokeAll(request.Context(), profile.ID); revokeErr != nil {
			gate.logger.ErrorContext(request.Context(), "banned_session_revocation_failed",
				slog.String("user_id", profile.ID),
				slog.Any("error", revokeErr),
			)
		}
		return nil, apperr.Unauthorized("Account is banned")
	}

	return profile, nil
}
