// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package submission

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdlists/demonlist/internal/platform/sec"
	"github.com/gdlists/demonlist/internal/platform/validate"
	"github.com/gdlists/demonlist/internal/users/account"
	"github.com/gdlists/demonlist/pkg/uuid"
)

// Service implements the review pipeline use cases.
type Service struct {
	submissions Repository
	logger      *slog.Logger
}

// NewService constructs a new submission [Service].
func NewService(submissions Repository, logger *slog.Logger) *Service {
	return &Service{submissions: submissions, logger: logger}
}

// # Submit Path

/*
SubmitLevel queues a level proposal for review.

Description: Open to any signed-in, non-banned member. Name, GDID, and
VerificationVideo are all required for member proposals. Duplicate
submissions are accepted independently; moderators resolve duplicates at
review time.

Parameters:
  - context: context.Context
  - actor: *account.Profile
  - payload: LevelPayload

Returns:
  - *Submission: The queued pending submission
  - error: Unauthorized, ValidationError, or storage failures
*/
func (service *Service) SubmitLevel(context context.Context, actor *account.Profile, payload LevelPayload) (*Submission, error) {
	if err := account.Authorize(actor, sec.ActionSubmit); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, payload.Name).
		MaxLen(FieldName, payload.Name, 200).
		Required(FieldGDID, payload.GDID).
		Required(FieldVerificationVideo, payload.VerificationVideo)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	submission := &Submission{
		ID:        uuid.New(),
		Type:      TypeLevel,
		Status:    StatusPending,
		Level:     &payload,
		CreatedBy: actor.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := service.submissions.Create(context, submission); err != nil {
		return nil, fmt.Errorf("submission_service_submit_level_failed: %w", err)
	}

	service.logger.Info("level_submitted",
		slog.String("submission_id", submission.ID),
		slog.String("name", payload.Name),
		slog.String("actor_id", actor.ID))

	return submission, nil
}

/*
SubmitRecord queues a record claim for review.

Description: Open to any signed-in, non-banned member. Progress below the
minimum is rejected here and only here; approval later never re-validates
or recomputes it.

Parameters:
  - context: context.Context
  - actor: *account.Profile
  - payload: RecordPayload

Returns:
  - *Submission: The queued pending submission
  - error: Unauthorized, ValidationError, or storage failures
*/
func (service *Service) SubmitRecord(context context.Context, actor *account.Profile, payload RecordPayload) (*Submission, error) {
	if err := account.Authorize(actor, sec.ActionSubmit); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldLevelName, payload.LevelName).
		Required(FieldVideo, payload.Video).
		Custom(FieldProgress, payload.Progress < MinProgress,
			fmt.Sprintf("must be at least %d", MinProgress)).
		Custom(FieldProgress, payload.Progress > 100, "must be at most 100")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	submission := &Submission{
		ID:        uuid.New(),
		Type:      TypeRecord,
		Status:    StatusPending,
		Record:    &payload,
		CreatedBy: actor.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := service.submissions.Create(context, submission); err != nil {
		return nil, fmt.Errorf("submission_service_submit_record_failed: %w", err)
	}

	service.logger.Info("record_submitted",
		slog.String("submission_id", submission.ID),
		slog.String("level_name", payload.LevelName),
		slog.Int("progress", payload.Progress),
		slog.String("actor_id", actor.ID))

	return submission, nil
}

// # Review Path

/*
ListPending returns the review queue, oldest first.

Parameters:
  - context: context.Context
  - actor: *account.Profile

Returns:
  - []*Submission: Pending submissions in FIFO order
  - error: Forbidden or storage failures
*/
func (service *Service) ListPending(context context.Context, actor *account.Profile) ([]*Submission, error) {
	if err := account.Authorize(actor, sec.ActionReviewSubmissions); err != nil {
		return nil, err
	}
	return service.submissions.ListPending(context)
}

/*
Approve decides a pending submission and materializes its payload.

Parameters:
  - context: context.Context
  - actor: *account.Profile
  - id: string

Returns:
  - *Outcome: The decided submission plus the level or record it produced
  - error: Forbidden, NotFound, Conflict, or storage failures
*/
func (service *Service) Approve(context context.Context, actor *account.Profile, id string) (*Outcome, error) {
	if err := account.Authorize(actor, sec.ActionReviewSubmissions); err != nil {
		return nil, err
	}

	outcome, err := service.submissions.Approve(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("submission_approved",
		slog.String("submission_id", id),
		slog.String("type", string(outcome.Submission.Type)),
		slog.String("actor_id", actor.ID))

	return outcome, nil
}

/*
Reject decides a pending submission without materializing anything.

Parameters:
  - context: context.Context
  - actor: *account.Profile
  - id: string

Returns:
  - *Submission: Post-decision state
  - error: Forbidden, NotFound, Conflict, or storage failures
*/
func (service *Service) Reject(context context.Context, actor *account.Profile, id string) (*Submission, error) {
	if err := account.Authorize(actor, sec.ActionReviewSubmissions); err != nil {
		return nil, err
	}

	submission, err := service.submissions.Reject(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("submission_rejected",
		slog.String("submission_id", id),
		slog.String("actor_id", actor.ID))

	return submission, nil
}
