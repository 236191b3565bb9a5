// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package account_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdlists/demonlist/internal/platform/apperr"
	"github.com/gdlists/demonlist/internal/platform/sec"
	"github.com/gdlists/demonlist/internal/users/account"
)

// fakeProfileRepo replicates the single-statement toggle semantics in memory.
type fakeProfileRepo struct {
	profiles map[string]*account.Profile
}

func newFakeProfileRepo(profiles ...*account.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[string]*account.Profile)}
	for _, p := range profiles {
		repo.profiles[p.ID] = p
	}
	return repo
}

func (f *fakeProfileRepo) FindByID(_ context.Context, id string) (*account.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProfileRepo) List(_ context.Context) ([]*account.Profile, error) {
	out := make([]*account.Profile, 0, len(f.profiles))
	for _, p := range f.profiles {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeProfileRepo) Create(_ context.Context, p *account.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) TouchLastLogin(_ context.Context, id string) error {
	p, ok := f.profiles[id]
	if !ok {
		return apperr.NotFound("User")
	}
	p.LastLogin = time.Now()
	return nil
}

func (f *fakeProfileRepo) ToggleBan(_ context.Context, id string) (*account.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	p.Banned = !p.Banned
	clone := *p
	return &clone, nil
}

func (f *fakeProfileRepo) ToggleMod(_ context.Context, id string) (*account.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	if p.Role == sec.RoleMod {
		p.Role = sec.RoleUser
	} else {
		p.Role = sec.RoleMod
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProfileRepo) ToggleAdmin(_ context.Context, id string) (*account.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	if p.Role == sec.RoleAdmin {
		p.Role = sec.RoleUser
	} else {
		p.Role = sec.RoleAdmin
	}
	clone := *p
	return &clone, nil
}

// fakeRevoker records which users had all sessions revoked.
type fakeRevoker struct {
	revoked []string
}

func (f *fakeRevoker) RevokeAll(_ context.Context, userID string) error {
	f.revoked = append(f.revoked, userID)
	return nil
}

func newService(repo *fakeProfileRepo, revoker *fakeRevoker) *account.Service {
	return account.NewService(repo, revoker, slog.New(slog.DiscardHandler))
}

func admin() *account.Profile {
	return &account.Profile{ID: "admin-1", DisplayName: "Admin", Role: sec.RoleAdmin}
}

func moderator() *account.Profile {
	return &account.Profile{ID: "mod-1", DisplayName: "ListMod", Role: sec.RoleMod}
}

func plainMember(id string) *account.Profile {
	return &account.Profile{ID: id, DisplayName: "Player " + id, Role: sec.RoleUser}
}

/*
TestService_ToggleBan verifies the ban flips on and off, and that banning
revokes every session of the target.
*/
func TestService_ToggleBan(t *testing.T) {
	target := plainMember("u1")
	repo := newFakeProfileRepo(target)
	revoker := &fakeRevoker{}
	service := newService(repo, revoker)

	banned, err := service.ToggleBan(context.Background(), moderator(), "u1")
	require.NoError(t, err)
	assert.True(t, banned.Banned)
	assert.Equal(t, []string{"u1"}, revoker.revoked)

	unbanned, err := service.ToggleBan(context.Background(), moderator(), "u1")
	require.NoError(t, err)
	assert.False(t, unbanned.Banned)
	// Unbanning revokes nothing further.
	assert.Equal(t, []string{"u1"}, revoker.revoked)
}

/*
TestService_ToggleMod verifies the user/mod flip, including the admin
overwrite quirk: toggling mod on an admin demotes them to mod.
*/
func TestService_ToggleMod(t *testing.T) {
	repo := newFakeProfileRepo(plainMember("u1"), admin())
	service := newService(repo, &fakeRevoker{})

	promoted, err := service.ToggleMod(context.Background(), moderator(), "u1")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleMod, promoted.Role)

	demoted, err := service.ToggleMod(context.Background(), moderator(), "u1")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, demoted.Role)

	// An admin target comes out as mod, not user.
	overwritten, err := service.ToggleMod(context.Background(), moderator(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleMod, overwritten.Role)
}

/*
TestService_ToggleAdmin_AdminOnly verifies that only admins can grant or
revoke admin.
*/
func TestService_ToggleAdmin_AdminOnly(t *testing.T) {
	repo := newFakeProfileRepo(plainMember("u1"))
	service := newService(repo, &fakeRevoker{})

	_, err := service.ToggleAdmin(context.Background(), moderator(), "u1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	granted, err := service.ToggleAdmin(context.Background(), admin(), "u1")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, granted.Role)

	revoked, err := service.ToggleAdmin(context.Background(), admin(), "u1")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, revoked.Role)
}

/*
TestService_List_Gated verifies listing requires the moderation role.
*/
func TestService_List_Gated(t *testing.T) {
	repo := newFakeProfileRepo(plainMember("u1"), plainMember("u2"))
	service := newService(repo, &fakeRevoker{})

	_, err := service.List(context.Background(), plainMember("u1"))
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	profiles, err := service.List(context.Background(), moderator())
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

/*
TestService_BannedActorRejected verifies a banned moderator cannot act.
*/
func TestService_BannedActorRejected(t *testing.T) {
	repo := newFakeProfileRepo(plainMember("u1"))
	service := newService(repo, &fakeRevoker{})

	bannedMod := moderator()
	bannedMod.Banned = true

	_, err := service.ToggleBan(context.Background(), bannedMod, "u1")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_Toggle_UnknownTarget verifies NotFound passes through.
*/
func TestService_Toggle_UnknownTarget(t *testing.T) {
	service := newService(newFakeProfileRepo(), &fakeRevoker{})

	_, err := service.ToggleBan(context.Background(), moderator(), "ghost")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestAuthorize covers the shared authorization predicate directly.
*/
func TestAuthorize(t *testing.T) {
	assert.NoError(t, account.Authorize(moderator(), sec.ActionManageUsers))

	err := account.Authorize(nil, sec.ActionManageUsers)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	err = account.Authorize(plainMember("u1"), sec.ActionManageUsers)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}
