// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package level

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdlists/demonlist/internal/platform/sec"
	"github.com/gdlists/demonlist/internal/platform/validate"
	"github.com/gdlists/demonlist/internal/users/account"
	"github.com/gdlists/demonlist/pkg/slug"
	"github.com/gdlists/demonlist/pkg/uuid"
)

// Service implements level registry use cases.
type Service struct {
	levels Repository
	logger *slog.Logger
}

// NewService constructs a new level [Service].
func NewService(levels Repository, logger *slog.Logger) *Service {
	return &Service{levels: levels, logger: logger}
}

// # Read Path

/*
List returns the full list, rank ascending. Public.

Parameters:
  - context: context.Context

Returns:
  - []*Level: Ordered list
  - error: Storage failures
*/
func (service *Service) List(context context.Context) ([]*Level, error) {
	return service.levels.List(context)
}

/*
Get returns a single level. Public.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Level: Hydrated entity
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Level, error) {
	return service.levels.FindByID(context, id)
}

// # Write Path

// AddInput holds the data required to place a new level on the list.
type AddInput struct {
	Name              string
	GDID              string
	Description       string
	VerificationVideo string
}

/*
Add places a new level at the bottom of the list.

Description: Moderator action. The rank is assigned by the store inside the
insert transaction; the returned entity carries the final rank and slug.

Parameters:
  - context: context.Context
  - actor: *account.Profile
  - input: AddInput

Returns:
  - *Level: Created entity with assigned rank
  - error: Forbidden, ValidationError, or storage failures
*/
func (service *Service) Add(context context.Context, actor *account.Profile, input AddInput) (*Level, error) {
	if err := account.Authorize(actor, sec.ActionManageLevels); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		Required(FieldGDID, input.GDID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	lvl := &Level{
		ID:                uuid.New(),
		Name:              input.Name,
		Slug:              slug.From(input.Name),
		GDID:              input.GDID,
		Description:       input.Description,
		VerificationVideo: input.VerificationVideo,
		CreatedBy:         actor.ID,
		CreatedAt:         time.Now().UTC(),
	}

	if err := service.levels.Add(context, lvl); err != nil {
		return nil, fmt.Errorf("level_service_add_failed: %w", err)
	}

	service.logger.Info("level_added",
		slog.String("level_id", lvl.ID),
		slog.String("name", lvl.Name),
		slog.Int("rank", lvl.Rank),
		slog.String("actor_id", actor.ID))

	return lvl, nil
}

/*
Reorder applies a full permutation of the list in one transaction.

Description: Moderator action. ids[i] receives rank i+1. The id set must be
exactly the current level set; reordering to the current order is a no-op
that still succeeds.

Parameters:
  - context: context.Context
  - actor: *account.Profile
  - ids: []string

Returns:
  - error: Forbidden, ValidationError, or storage failures
*/
func (service *Service) Reorder(context context.Context, actor *account.Profile, ids []string) error {
	if err := account.Authorize(actor, sec.ActionManageLevels); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldIDs, len(ids) == 0, "must not be empty")

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.levels.Reorder(context, ids); err != nil {
		return err
	}

	service.logger.Info("levels_reordered",
		slog.Int("count", len(ids)),
		slog.String("actor_id", actor.ID))

	return nil
}
