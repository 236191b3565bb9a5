// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package ranking

import (
	"context"
	"fmt"

	"github.com/gdlists/demonlist/internal/core/level"
	"github.com/gdlists/demonlist/internal/core/record"
)

// Service derives the leaderboard from live data on every call.
//
// Nothing is cached or persisted. With the current community size a full
// recompute per request is well inside budget; a materialized leaderboard
// is the first thing to add if the ledger grows past that.
type Service struct {
	records record.Repository
	levels  level.Repository
}

// NewService constructs a new ranking [Service].
func NewService(records record.Repository, levels level.Repository) *Service {
	return &Service{records: records, levels: levels}
}

/*
Leaderboard computes the current standings. Public.

Description: Records are read createdAt ascending and levels rank ascending,
so repeated calls over unchanged data return byte-identical output.

Parameters:
  - context: context.Context

Returns:
  - []Row: Leaderboard, highest points first
  - error: Storage failures
*/
func (service *Service) Leaderboard(context context.Context) ([]Row, error) {
	records, err := service.records.List(context)
	if err != nil {
		return nil, fmt.Errorf("ranking_service_records_failed: %w", err)
	}

	levels, err := service.levels.List(context)
	if err != nil {
		return nil, fmt.Errorf("ranking_service_levels_failed: %w", err)
	}

	return Compute(records, levels), nil
}
