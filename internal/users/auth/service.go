// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

/*
Package auth implements the identity gateway.

Members authenticate against an external identity provider; this package
verifies the provider's signed identity token, materializes a local profile
on first sign-in, and manages the session lifecycle via short-lived JWT
access tokens and long-lived refresh tokens (stored in Redis).

Architecture:

  - Service: Orchestrates sign-in, refresh rotation, and sign-out.
  - Repository: Abstracted interfaces for Redis (Sessions); profiles live
    in the sibling account package.
  - Security: RSA-signed JWTs; refresh tokens stored only as SHA-256 hashes.

The gateway never stores credentials. A banned profile can neither sign in
nor refresh, and signing in while banned revokes every remaining session.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdlists/demonlist/internal/platform/apperr"
	"github.com/gdlists/demonlist/internal/platform/sec"
	"github.com/gdlists/demonlist/internal/users/account"
)

// # Contracts & Types

// IdentityVerifier defines the contract for validating external provider
// identity tokens.
type IdentityVerifier interface {
	// VerifyIdentityToken checks the signature, issuer, audience, and expiry
	// of a provider-issued token and extracts the stable subject.
	//
	// # Parameters
	//   - tokenString: The raw compact JWT from the provider.
	//
	// # Returns
	//   - The verified identity, or an err when the token is not trustworthy.
	VerifyIdentityToken(tokenString string) (*sec.Identity, error)
}

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - displayName: The display name embedded in the token.
	//   - role: The role of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, displayName, role string, timeToLive time.Duration) (string, error)
}

// Session bundles the artifacts of a successful sign-in or refresh.
type Session struct {
	AccessToken  string
	RefreshToken string
	Profile      *account.Profile
}

// Service implements the identity gateway use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to token verification,
// session rotation, or the banned-user checks must be reviewed carefully.
type Service struct {
	identityVerifier  IdentityVerifier
	profileRepository account.Repository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	identityVerifier IdentityVerifier,
	profileRepo account.Repository,
	sessionRepo SessionRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		identityVerifier:  identityVerifier,
		profileRepository: profileRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
		logger:            logger,
	}
}

// # Sign-In Flow

/*
SignIn exchanges a provider identity token for a local session.

Description: Verifies the provider token, creates the profile on first
sign-in (role user, not banned), and issues an access/refresh token pair.
Re-authentication updates lastLogin and nothing else.

Parameters:
  - context: context.Context
  - providerToken: string

Returns:
  - *Session: Access token, refresh token, and the signed-in profile
  - error: apperr.Unauthorized (bad token or banned) or storage errors
*/
func (service *Service) SignIn(context context.Context, providerToken string) (*Session, error) {

	// Verify the provider token before touching any state.
	identity, err := service.identityVerifier.VerifyIdentityToken(providerToken)
	if err != nil {
		return nil, apperr.Unauthorized("Identity token is invalid or expired")
	}

	profile, err := service.profileRepository.FindByID(context, identity.Subject)
	switch {
	case err == nil:
		// Existing member. Banned members never get a session; revoke any
		// stragglers so a pre-ban refresh token cannot outlive the ban.
		if profile.Banned {
			if revokeErr := service.sessionRepository.RevokeAll(context, profile.ID); revokeErr != nil {
				service.logger.Error("banned_signin_revoke_failed",
					slog.String("user_id", profile.ID),
					slog.Any("error", revokeErr))
			}
			return nil, apperr.Unauthorized("Account is banned")
		}

		// Re-authentication must not alter role or banned state.
		if err := service.profileRepository.TouchLastLogin(context, profile.ID); err != nil {
			return nil, fmt.Errorf("auth_service_touch_login_failed: %w", err)
		}

	case apperr.IsNotFound(err):
		// First sign-in. Materialize the profile with baseline access.
		now := time.Now().UTC()
		profile = &account.Profile{
			ID:          identity.Subject,
			DisplayName: identity.DisplayName,
			Role:        sec.RoleUser,
			Banned:      false,
			CreatedAt:   now,
			LastLogin:   now,
		}
		if err := service.profileRepository.Create(context, profile); err != nil {
			return nil, fmt.Errorf("auth_service_create_profile_failed: %w", err)
		}
		service.logger.Info("profile_created",
			slog.String("user_id", profile.ID),
			slog.String("display_name", profile.DisplayName))

	default:
		return nil, fmt.Errorf("auth_service_find_profile_failed: %w", err)
	}

	return service.issueSession(context, profile)
}

// # Session Rotation

/*
Refresh rotates a refresh token into a fresh session.

Description: The presented refresh token is revoked whether or not rotation
succeeds past the lookup, so a token can never be replayed. A banned profile
cannot refresh; its remaining sessions are revoked on sight.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *Session: New access/refresh token pair and the current profile
  - error: apperr.Unauthorized (unknown, expired, or banned) or storage errors
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*Session, error) {

	tokenHash := sec.HashToken(refreshToken)

	userID, err := service.sessionRepository.FindUserID(context, tokenHash)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Session is invalid or expired")
		}
		return nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}

	// Single-use rotation. The old session dies here regardless of what the
	// profile check says next.
	if err := service.sessionRepository.Revoke(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	profile, err := service.profileRepository.FindByID(context, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Account no longer exists")
		}
		return nil, fmt.Errorf("auth_service_refresh_profile_failed: %w", err)
	}

	if profile.Banned {
		if revokeErr := service.sessionRepository.RevokeAll(context, profile.ID); revokeErr != nil {
			service.logger.Error("banned_refresh_revoke_failed",
				slog.String("user_id", profile.ID),
				slog.Any("error", revokeErr))
		}
		return nil, apperr.Unauthorized("Account is banned")
	}

	return service.issueSession(context, profile)
}

/*
SignOut revokes the session identified by the refresh token.

Description: Idempotent; signing out an already-dead session succeeds.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Persistence failures
*/
func (service *Service) SignOut(context context.Context, refreshToken string) error {

	if refreshToken == "" {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, sec.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("auth_service_signout_failed: %w", err)
	}

	return nil
}

// issueSession mints the access/refresh token pair for a verified profile.
func (service *Service) issueSession(context context.Context, profile *account.Profile) (*Session, error) {

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		profile.ID, profile.DisplayName, string(profile.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	// Only the hash is persisted. A Redis dump never yields usable tokens.
	if err := service.sessionRepository.Create(context, sec.HashToken(refreshToken), profile.ID, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_create_failed: %w", err)
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      profile,
	}, nil
}
