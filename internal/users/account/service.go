// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package account

import (
	"context"
	"log/slog"

	"github.com/gdlists/demonlist/internal/platform/sec"
)

// # Service Layer

// Service orchestrates user administration: profile listing, bans, and role
// toggles.
//
// Every mutation takes the acting profile and re-checks the action policy —
// authorization is evaluated per call against live state, never cached.
type Service struct {
	profiles Repository
	sessions SessionRevoker
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(profiles Repository, sessions SessionRevoker, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
	}
}

// List returns every profile for the moderation panel.
func (service *Service) List(context context.Context, actor *Profile) ([]*Profile, error) {
	if err := Authorize(actor, sec.ActionManageUsers); err != nil {
		return nil, err
	}
	return service.profiles.List(context)
}

/*
ToggleBan flips the banned flag on the target profile.

Description: When the toggle results in a ban, every active session of the
target is revoked so a banned user can never keep an established session.

Parameters:
  - context: context.Context
  - actor: *Profile (the acting moderator)
  - targetID: string

Returns:
  - *Profile: Post-toggle state
  - error: Forbidden, NotFound, or storage failures
*/
func (service *Service) ToggleBan(context context.Context, actor *Profile, targetID string) (*Profile, error) {
	if err := Authorize(actor, sec.ActionManageUsers); err != nil {
		return nil, err
	}

	updated, err := service.profiles.ToggleBan(context, targetID)
	if err != nil {
		return nil, err
	}

	// Force sign-out on ban. Revocation failure is logged, not surfaced:
	// the ban itself is already committed and the profile gate rejects
	// banned users on their next request regardless.
	if updated.Banned {
		if err := service.sessions.RevokeAll(context, targetID); err != nil {
			service.logger.ErrorContext(context, "ban_session_revocation_failed",
				slog.String("user_id", targetID),
				slog.Any("error", err),
			)
		}
	}

	service.logger.InfoContext(context, "user_ban_toggled",
		slog.String("actor_id", actor.ID),
		slog.String("user_id", targetID),
		slog.Bool("banned", updated.Banned),
	)

	return updated, nil
}

/*
ToggleMod flips the target's role between user and mod.

Parameters:
  - context: context.Context
  - actor: *Profile
  - targetID: string

Returns:
  - *Profile: Post-toggle state
  - error: Forbidden, NotFound, or storage failures
*/
func (service *Service) ToggleMod(context context.Context, actor *Profile, targetID string) (*Profile, error) {
	if err := Authorize(actor, sec.ActionManageUsers); err != nil {
		return nil, err
	}

	updated, err := service.profiles.ToggleMod(context, targetID)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_role_toggled",
		slog.String("actor_id", actor.ID),
		slog.String("user_id", targetID),
		slog.String("role", string(updated.Role)),
	)

	return updated, nil
}

/*
ToggleAdmin flips the target's role between user and admin.

Description: Gated at admin by the action policy — a mod cannot escalate
anyone to admin.

Parameters:
  - context: context.Context
  - actor: *Profile
  - targetID: string

Returns:
  - *Profile: Post-toggle state
  - error: Forbidden, NotFound, or storage failures
*/
func (service *Service) ToggleAdmin(context context.Context, actor *Profile, targetID string) (*Profile, error) {
	if err := Authorize(actor, sec.ActionGrantAdmin); err != nil {
		return nil, err
	}

	updated, err := service.profiles.ToggleAdmin(context, targetID)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "user_admin_toggled",
		slog.String("actor_id", actor.ID),
		slog.String("user_id", targetID),
		slog.String("role", string(updated.Role)),
	)

	return updated, nil
}
