// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

/*
Package account owns the user profile entity and its administration.

It defines the [Profile] record created on first sign-in and the moderation
operations over it (ban toggling, role toggling). The identity gateway in
the sibling auth package orchestrates profile creation; this package is the
single writer for role and ban state.

# Architecture

  - Entities: Profile.
  - Domain: Role semantics come from [sec.UserRole]; action authorization
    from the [sec.Allows] policy table.
  - Security: Every toggle re-reads current state immediately before
    mutating (last-write-wins, single statement per toggle).
*/
package account

import (
	"context"
	"time"

	"github.com/gdlists/demonlist/internal/platform/sec"
)

// # Domain Entities

// Profile represents a registered member of the list.
//
// Profiles are keyed by the identity provider's subject — this system never
// mints its own user identities. Profiles are never deleted in normal flow;
// moderation removes access by banning.
type Profile struct {
	ID          string       `json:"id"`
	DisplayName string       `json:"display_name"`
	Role        sec.UserRole `json:"role"`
	Banned      bool         `json:"banned"`
	CreatedAt   time.Time    `json:"created_at"`
	LastLogin   time.Time    `json:"last_login"`
}

// # Field Identifiers

const (
	FieldDisplayName = "display_name"
	FieldRole        = "role"
	FieldBanned      = "banned"
)

// # Repository Contract

// Repository defines the persistence contract for user profiles.
type Repository interface {

	/*
		FindByID retrieves a profile by the provider subject.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Profile: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Profile, error)

	/*
		List returns every profile, oldest first.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Profile: Full profile set (the member base is small; no pagination)
		  - error: Storage failures
	*/
	List(context context.Context) ([]*Profile, error)

	/*
		Create persists a brand-new profile on first sign-in.

		Parameters:
		  - context: context.Context
		  - profile: *Profile

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, profile *Profile) error

	/*
		TouchLastLogin updates only the lastLogin timestamp.

		Re-authentication must never change role or banned state, so this is
		deliberately the only field the sign-in path may update.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	TouchLastLogin(context context.Context, id string) error

	/*
		ToggleBan flips the banned flag and returns the updated profile.

		The read-then-flip happens in a single statement so two concurrent
		toggles serialize rather than both reading the same prior value.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Profile: Post-toggle state
		  - error: apperr.NotFound or persistence failures
	*/
	ToggleBan(context context.Context, id string) (*Profile, error)

	/*
		ToggleMod flips the role between user and mod.

		An admin target is overwritten to mod (the toggle only ever produces
		user or mod).

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Profile: Post-toggle state
		  - error: apperr.NotFound or persistence failures
	*/
	ToggleMod(context context.Context, id string) (*Profile, error)

	/*
		ToggleAdmin flips the role between user and admin.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Profile: Post-toggle state
		  - error: apperr.NotFound or persistence failures
	*/
	ToggleAdmin(context context.Context, id string) (*Profile, error)
}

// SessionRevoker terminates every active session for a user.
//
// Declared here (not in auth) so that banning a user can force sign-out
// without this package depending on the session store implementation.
type SessionRevoker interface {
	RevokeAll(context context.Context, userID string) error
}
