// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package auth

import (
	"context"
	"time"
)

// # Session Data Access

// SessionRepository defines the contract for storing volatile refresh-token
// sessions.
//
// Sessions are keyed by the SHA-256 hash of the refresh token, never by the
// token itself, and carry a TTL so abandoned sessions expire on their own.
type SessionRepository interface {

	/*
		Create stores a session for an authenticated sign-in.

		Parameters:
		  - context: context.Context
		  - tokenHash: string (SHA-256 digest of the refresh token)
		  - userID: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, tokenHash string, userID string, ttl time.Duration) error

	/*
		FindUserID resolves the user owning the session with the given token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - string: UserID
		  - error: apperr.NotFound if the session is absent, expired, or revoked
	*/
	FindUserID(context context.Context, tokenHash string) (string, error)

	/*
		Revoke invalidates a single session.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Persistence failures (revoking an absent session is not an error)
	*/
	Revoke(context context.Context, tokenHash string) error

	/*
		RevokeAll invalidates every session belonging to the userID.

		Used for forced sign-out when a user is banned.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	RevokeAll(context context.Context, userID string) error
}
