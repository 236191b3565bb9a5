// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package submission_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdlists/demonlist/internal/core/level"
	"github.com/gdlists/demonlist/internal/core/record"
	"github.com/gdlists/demonlist/internal/core/submission"
	"github.com/gdlists/demonlist/internal/platform/apperr"
	"github.com/gdlists/demonlist/internal/platform/sec"
	"github.com/gdlists/demonlist/internal/users/account"
	"github.com/gdlists/demonlist/pkg/uuid"
)

// fakeSubmissionRepo replicates the store's decision semantics in memory.
type fakeSubmissionRepo struct {
	submissions []*submission.Submission
	nextRank    int
	levels      []*level.Level
	records     []*record.Record
}

func (f *fakeSubmissionRepo) Create(_ context.Context, s *submission.Submission) error {
	f.submissions = append(f.submissions, s)
	return nil
}

func (f *fakeSubmissionRepo) ListPending(_ context.Context) ([]*submission.Submission, error) {
	pending := make([]*submission.Submission, 0)
	for _, s := range f.submissions {
		if s.Status == submission.StatusPending {
			pending = append(pending, s)
		}
	}
	return pending, nil
}

func (f *fakeSubmissionRepo) find(id string) *submission.Submission {
	for _, s := range f.submissions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (f *fakeSubmissionRepo) Approve(_ context.Context, id string) (*submission.Outcome, error) {
	s := f.find(id)
	if s == nil {
		return nil, apperr.NotFound("Submission")
	}
	if s.Status != submission.StatusPending {
		return nil, apperr.Conflict("Submission has already been decided")
	}

	outcome := &submission.Outcome{Submission: s}
	switch s.Type {
	case submission.TypeLevel:
		f.nextRank++
		lvl := &level.Level{
			ID:        uuid.New(),
			Name:      s.Level.Name,
			GDID:      s.Level.GDID,
			Rank:      f.nextRank,
			CreatedBy: s.CreatedBy,
			CreatedAt: time.Now(),
		}
		f.levels = append(f.levels, lvl)
		outcome.Level = lvl
	case submission.TypeRecord:
		rec := &record.Record{
			ID:        uuid.New(),
			LevelName: s.Record.LevelName,
			UserID:    s.CreatedBy,
			Progress:  s.Record.Progress,
			Video:     s.Record.Video,
			CreatedAt: time.Now(),
		}
		f.records = append(f.records, rec)
		outcome.Record = rec
	}

	s.Status = submission.StatusApproved
	return outcome, nil
}

func (f *fakeSubmissionRepo) Reject(_ context.Context, id string) (*submission.Submission, error) {
	s := f.find(id)
	if s == nil {
		return nil, apperr.NotFound("Submission")
	}
	if s.Status != submission.StatusPending {
		return nil, apperr.Conflict("Submission has already been decided")
	}
	s.Status = submission.StatusRejected
	return s, nil
}

func newService(repo *fakeSubmissionRepo) *submission.Service {
	return submission.NewService(repo, slog.New(slog.DiscardHandler))
}

func member() *account.Profile {
	return &account.Profile{ID: "member-1", DisplayName: "Player", Role: sec.RoleUser}
}

func moderator() *account.Profile {
	return &account.Profile{ID: "mod-1", DisplayName: "ListMod", Role: sec.RoleMod}
}

/*
TestService_SubmitRecord_ProgressThreshold verifies the progress bounds:
59 fails, 60 succeeds, anything above 100 fails.
*/
func TestService_SubmitRecord_ProgressThreshold(t *testing.T) {
	repo := &fakeSubmissionRepo{}
	service := newService(repo)

	_, err := service.SubmitRecord(context.Background(), member(), submission.RecordPayload{
		LevelName: "Bloodbath",
		Progress:  59,
		Video:     "https://example.com/run",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	// Progress is a completion percentage; 250 would otherwise score 200.
	_, err = service.SubmitRecord(context.Background(), member(), submission.RecordPayload{
		LevelName: "Bloodbath",
		Progress:  250,
		Video:     "https://example.com/run",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	queued, err := service.SubmitRecord(context.Background(), member(), submission.RecordPayload{
		LevelName: "Bloodbath",
		Progress:  60,
		Video:     "https://example.com/run",
	})
	require.NoError(t, err)
	assert.Equal(t, submission.StatusPending, queued.Status)
	assert.Equal(t, submission.TypeRecord, queued.Type)
	assert.Equal(t, "member-1", queued.CreatedBy)
}

/*
TestService_SubmitRecord_MissingFields verifies level name and video are
both required.
*/
func TestService_SubmitRecord_MissingFields(t *testing.T) {
	service := newService(&fakeSubmissionRepo{})

	_, err := service.SubmitRecord(context.Background(), member(), submission.RecordPayload{Progress: 80})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 2)
}

/*
TestService_SubmitLevel_RequiresAllFields verifies member level proposals
need name, gd id, and verification footage.
*/
func TestService_SubmitLevel_RequiresAllFields(t *testing.T) {
	service := newService(&fakeSubmissionRepo{})

	_, err := service.SubmitLevel(context.Background(), member(), submission.LevelPayload{Name: "Zodiac"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 2)

	queued, err := service.SubmitLevel(context.Background(), member(), submission.LevelPayload{
		Name:              "Zodiac",
		GDID:              "44622744",
		VerificationVideo: "https://example.com/verify",
	})
	require.NoError(t, err)
	assert.Equal(t, submission.TypeLevel, queued.Type)
}

/*
TestService_Submit_RequiresSession verifies anonymous and banned callers are
rejected before any validation.
*/
func TestService_Submit_RequiresSession(t *testing.T) {
	service := newService(&fakeSubmissionRepo{})
	payload := submission.RecordPayload{LevelName: "Bloodbath", Progress: 80, Video: "v"}

	_, err := service.SubmitRecord(context.Background(), nil, payload)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	banned := member()
	banned.Banned = true
	_, err = service.SubmitRecord(context.Background(), banned, payload)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestService_DuplicateSubmissionsAccepted verifies identical submissions
queue independently.
*/
func TestService_DuplicateSubmissionsAccepted(t *testing.T) {
	repo := &fakeSubmissionRepo{}
	service := newService(repo)
	payload := submission.RecordPayload{LevelName: "Bloodbath", Progress: 75, Video: "v"}

	first, err := service.SubmitRecord(context.Background(), member(), payload)
	require.NoError(t, err)
	second, err := service.SubmitRecord(context.Background(), member(), payload)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, repo.submissions, 2)
}

/*
TestService_ListPending_RequiresModerator verifies queue access is gated.
*/
func TestService_ListPending_RequiresModerator(t *testing.T) {
	service := newService(&fakeSubmissionRepo{})

	_, err := service.ListPending(context.Background(), member())
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	pending, err := service.ListPending(context.Background(), moderator())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

/*
TestService_Approve_RecordRoundTrip verifies submit, approve, and the
materialized record's verbatim payload copy.
*/
func TestService_Approve_RecordRoundTrip(t *testing.T) {
	repo := &fakeSubmissionRepo{}
	service := newService(repo)

	queued, err := service.SubmitRecord(context.Background(), member(), submission.RecordPayload{
		LevelName: "Bloodbath",
		Progress:  87,
		Video:     "https://example.com/run",
	})
	require.NoError(t, err)

	outcome, err := service.Approve(context.Background(), moderator(), queued.ID)
	require.NoError(t, err)

	require.NotNil(t, outcome.Record)
	assert.Nil(t, outcome.Level)
	assert.Equal(t, submission.StatusApproved, outcome.Submission.Status)
	assert.Equal(t, "Bloodbath", outcome.Record.LevelName)
	assert.Equal(t, 87, outcome.Record.Progress)
	assert.Equal(t, "member-1", outcome.Record.UserID)

	// The queue no longer contains the decided item.
	pending, err := service.ListPending(context.Background(), moderator())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

/*
TestService_Approve_Terminal verifies a decided submission cannot be decided
again, in any combination.
*/
func TestService_Approve_Terminal(t *testing.T) {
	repo := &fakeSubmissionRepo{}
	service := newService(repo)

	queued, err := service.SubmitLevel(context.Background(), member(), submission.LevelPayload{
		Name:              "Zodiac",
		GDID:              "44622744",
		VerificationVideo: "https://example.com/verify",
	})
	require.NoError(t, err)

	_, err = service.Approve(context.Background(), moderator(), queued.ID)
	require.NoError(t, err)
	assert.Len(t, repo.levels, 1)

	_, err = service.Approve(context.Background(), moderator(), queued.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.Reject(context.Background(), moderator(), queued.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// No double materialization.
	assert.Len(t, repo.levels, 1)
}

/*
TestService_Reject verifies rejection is terminal and materializes nothing.
*/
func TestService_Reject(t *testing.T) {
	repo := &fakeSubmissionRepo{}
	service := newService(repo)

	queued, err := service.SubmitRecord(context.Background(), member(), submission.RecordPayload{
		LevelName: "Bloodbath",
		Progress:  95,
		Video:     "v",
	})
	require.NoError(t, err)

	rejected, err := service.Reject(context.Background(), moderator(), queued.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.StatusRejected, rejected.Status)
	assert.Empty(t, repo.records)

	_, err = service.Approve(context.Background(), moderator(), queued.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_Decide_UnknownID verifies missing submissions yield NotFound.
*/
func TestService_Decide_UnknownID(t *testing.T) {
	service := newService(&fakeSubmissionRepo{})

	_, err := service.Approve(context.Background(), moderator(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.Reject(context.Background(), moderator(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
