// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to minimize the impact of a leaked token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	// Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32
)

// # Field Identifiers

const (
	FieldProviderToken = "provider_token"
	FieldAccessToken   = "access_token"
	FieldUser          = "user"
)
