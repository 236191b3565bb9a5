// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package auth_test

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
	"github.com/gdlists/demonlist/internal/users/auth"
)

// fakeIdentityVerifier resolves provider tokens from a fixed table.
type fakeIdentityVerifier struct {
	identities map[string]*sec.Identity
}

func (f *fakeIdentityVerifier) VerifyIdentityToken(token string) (*sec.Identity, error) {
	identity, ok := f.identities[token]
	if !ok {
		return nil, apperr.Unauthorized("Identity token is invalid or expired")
	}
	return identity, nil
}

// fakeProfileRepo is a minimal in-memory account.Repository.
type fakeProfileRepo struct {
	profiles map[string]*account.Profile
	touched  []string
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*account.Profile)}
}

func (f *fakeProfileRepo) FindByID(_ context.Context, id string) (*account.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProfileRepo) List(_ context.Context) ([]*account.Profile, error) { return nil, nil }

func (f *fakeProfileRepo) Create(_ context.Context, p *account.Profile) error {
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) TouchLastLogin(_ context.Context, id string) error {
	f.touched = append(f.touched, id)
	f.profiles[id].LastLogin = time.Now()
	return nil
}

func (f *fakeProfileRepo) ToggleBan(_ context.Context, id string) (*account.Profile, error) {
	return nil, apperr.NotFound("User")
}

func (f *fakeProfileRepo) ToggleMod(_ context.Context, id string) (*account.Profile, error) {
	return nil, apperr.NotFound("User")
}

func (f *fakeProfileRepo) ToggleAdmin(_ context.Context, id string) (*account.Profile, error) {
	return nil, apperr.NotFound("User")
}

// fakeSessionRepo is an in-memory auth.SessionRepository.
type fakeSessionRepo struct {
	sessions map[string]string // tokenHash -> userID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]string)}
}

func (f *fakeSessionRepo) Create(_ context.Context, tokenHash, userID string, _ time.Duration) error {
	f.sessions[tokenHash] = userID
	return nil
}

func (f *fakeSessionRepo) FindUserID(_ context.Context, tokenHash string) (string, error) {
	userID, ok := f.sessions[tokenHash]
	if !ok {
		return "", apperr.NotFound("Session")
	}
	return userID, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

func (f *fakeSessionRepo) RevokeAll(_ context.Context, userID string) error {
	for hash, owner := range f.sessions {
		if owner == userID {
			delete(f.sessions, hash)
		}
	}
	return nil
}

// fakeTokenProvider mints predictable access tokens.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

type fixture struct {
	verifier *fakeIdentityVerifier
	profiles *fakeProfileRepo
	sessions *fakeSessionRepo
	service  *auth.Service
}

func newFixture() *fixture {
	verifier := &fakeIdentityVerifier{identities: map[string]*sec.Identity{
		"valid-token": {Subject: "sub-1", DisplayName: "Player One"},
	}}
	profiles := newFakeProfileRepo()
	sessions := newFakeSessionRepo()
	service := auth.NewService(verifier, profiles, sessions, fakeTokenProvider{}, slog.New(slog.DiscardHandler))
	return &fixture{verifier: verifier, profiles: profiles, sessions: sessions, service: service}
}

/*
TestService_SignIn_FirstTime verifies the profile is materialized with
baseline access and a session is established.
*/
func TestService_SignIn_FirstTime(t *testing.T) {
	fx := newFixture()

	session, err := fx.service.SignIn(context.Background(), "valid-token")
	require.NoError(t, err)

	assert.Equal(t, "access-sub-1", session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	profile := fx.profiles.profiles["sub-1"]
	require.NotNil(t, profile)
	assert.Equal(t, "Player One", profile.DisplayName)
	assert.Equal(t, sec.RoleUser, profile.Role)
	assert.False(t, profile.Banned)
	assert.False(t, profile.LastLogin.IsZero())

	// One session stored, keyed by hash (never the raw token).
	assert.Len(t, fx.sessions.sessions, 1)
	_, rawStored := fx.sessions.sessions[session.RefreshToken]
	assert.False(t, rawStored)
}

/*
TestService_SignIn_ReAuth verifies re-authentication touches lastLogin and
changes nothing else.
*/
func TestService_SignIn_ReAuth(t *testing.T) {
	fx := newFixture()

	_, err := fx.service.SignIn(context.Background(), "valid-token")
	require.NoError(t, err)

	// Promote out-of-band, then sign in again.
	fx.profiles.profiles["sub-1"].Role = sec.RoleMod
	fx.profiles.profiles["sub-1"].DisplayName = "Renamed Locally"

	session, err := fx.service.SignIn(context.Background(), "valid-token")
	require.NoError(t, err)

	profile := fx.profiles.profiles["sub-1"]
	assert.Equal(t, sec.RoleMod, profile.Role)
	assert.Equal(t, "Renamed Locally", profile.DisplayName)
	// First sign-in creates; only the second one touches lastLogin.
	assert.Equal(t, []string{"sub-1"}, fx.profiles.touched)
	assert.Equal(t, sec.RoleMod, session.Profile.Role)
}

/*
TestService_SignIn_InvalidToken verifies a bad provider token never touches
state.
*/
func TestService_SignIn_InvalidToken(t *testing.T) {
	fx := newFixture()

	_, err := fx.service.SignIn(context.Background(), "forged")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	assert.Empty(t, fx.profiles.profiles)
	assert.Empty(t, fx.sessions.sessions)
}

/*
TestService_SignIn_Banned verifies a banned profile cannot sign in and loses
any remaining sessions.
*/
func TestService_SignIn_Banned(t *testing.T) {
	fx := newFixture()

	session, err := fx.service.SignIn(context.Background(), "valid-token")
	require.NoError(t, err)
	require.Len(t, fx.sessions.sessions, 1)

	fx.profiles.profiles["sub-1"].Banned = true

	_, err = fx.service.SignIn(context.Background(), "valid-token")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The pre-ban session is gone too.
	assert.Empty(t, fx.sessions.sessions)
	_ = session
}

/*
TestService_Refresh_Rotation verifies a refresh consumes the old token and
issues a working new one.
*/
func TestService_Refresh_Rotation(t *testing.T) {
	fx := newFixture()

	signedIn, err := fx.service.SignIn(context.Background(), "valid-token")
	require.NoError(t, err)

	refreshed, err := fx.service.Refresh(context.Background(), signedIn.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, signedIn.RefreshToken, refreshed.RefreshToken)

	// Replaying the consumed token fails.
	_, err = fx.service.Refresh(context.Background(), signedIn.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// The rotated token still works.
	_, err = fx.service.Refresh(context.Background(), refreshed.RefreshToken)
	require.NoError(t, err)
}

/*
TestService_Refresh_Banned verifies a banned profile cannot refresh and
loses all sessions on the attempt.
*/
func TestService_Refresh_Banned(t *testing.T) {
	fx := newFixture()

	signedIn, err := fx.service.SignIn(context.Background(), "valid-token")
	require.NoError(t, err)

	fx.profiles.profiles["sub-1"].Banned = true

	_, err = fx.service.Refresh(context.Background(), signedIn.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
	assert.Empty(t, fx.sessions.sessions)
}

/*
TestService_SignOut verifies sign-out revokes the session and is idempotent.
*/
func TestService_SignOut(t *testing.T) {
	fx := newFixture()

	session, err := fx.service.SignIn(context.Background(), "valid-token")
	require.NoError(t, err)

	require.NoError(t, fx.service.SignOut(context.Background(), session.RefreshToken))
	assert.Empty(t, fx.sessions.sessions)

	// Signing out again (or with nothing) still succeeds.
	require.NoError(t, fx.service.SignOut(context.Background(), session.RefreshToken))
	require.NoError(t, fx.service.SignOut(context.Background(), ""))

	_, err = fx.service.Refresh(context.Background(), session.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}
