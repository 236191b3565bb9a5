// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package ranking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdlists/demonlist/internal/core/level"
	"github.com/gdlists/demonlist/internal/core/ranking"
	"github.com/gdlists/demonlist/internal/core/record"
)

/*
TestRecordPoints covers the progress-to-points conversion.
*/
func TestRecordPoints(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		want     int
	}{
		{"full_completion", 100, 50},
		{"ninety_percent", 90, 40},
		{"minimum_record", 60, 10},
		{"at_pivot", 50, 0},
		{"below_pivot_floors_at_zero", 30, 0},
		{"zero_progress", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ranking.RecordPoints(tt.progress))
		})
	}
}

/*
TestCompute_Accumulation verifies points accumulate per user and that the
latest ledger name wins.
*/
func TestCompute_Accumulation(t *testing.T) {
	records := []*record.Record{
		{UserID: "u1", UserName: "OldName", Progress: 90},  // 40
		{UserID: "u1", UserName: "NewName", Progress: 100}, // 50
		{UserID: "u2", UserName: "Rival", Progress: 60},    // 10
	}

	rows := ranking.Compute(records, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, "u1", rows[0].UserID)
	assert.Equal(t, "NewName", rows[0].DisplayName)
	assert.Equal(t, 90, rows[0].Points)
	assert.Equal(t, "u2", rows[1].UserID)
	assert.Equal(t, 10, rows[1].Points)
}

/*
TestCompute_VerifierTag verifies the flat verifier credit, including the
case-insensitive match and value trimming.
*/
func TestCompute_VerifierTag(t *testing.T) {
	levels := []*level.Level{
		{Rank: 1, Description: "Verified legitimately. [VERIFIER: u9 ]"},
		{Rank: 2, Description: "No tag here."},
		{Rank: 3, Description: "[verifier:u9]"},
	}

	rows := ranking.Compute(nil, levels)

	require.Len(t, rows, 1)
	assert.Equal(t, "u9", rows[0].UserID)
	assert.Equal(t, "u9", rows[0].DisplayName)
	assert.Equal(t, 400, rows[0].Points)
}

/*
TestCompute_VerifierKeepsRecordName verifies that a tag credit never
overwrites a name learned from the ledger.
*/
func TestCompute_VerifierKeepsRecordName(t *testing.T) {
	records := []*record.Record{
		{UserID: "u1", UserName: "Sunix", Progress: 100}, // 50
	}
	levels := []*level.Level{
		{Rank: 1, Description: "[verifier:u1]"},
	}

	rows := ranking.Compute(records, levels)

	require.Len(t, rows, 1)
	assert.Equal(t, "Sunix", rows[0].DisplayName)
	assert.Equal(t, 250, rows[0].Points)
}

/*
TestCompute_OnlyFirstTagCounts verifies a description with two tags credits
only the first.
*/
func TestCompute_OnlyFirstTagCounts(t *testing.T) {
	levels := []*level.Level{
		{Rank: 1, Description: "[verifier:first] [verifier:second]"},
	}

	rows := ranking.Compute(nil, levels)

	require.Len(t, rows, 1)
	assert.Equal(t, "first", rows[0].UserID)
	assert.Equal(t, ranking.VerifierPoints, rows[0].Points)
}

/*
TestCompute_StableTies verifies that tied users keep first-seen order, with
record holders ahead of tag-only verifiers.
*/
func TestCompute_StableTies(t *testing.T) {
	records := []*record.Record{
		{UserID: "early", UserName: "Early", Progress: 100}, // 50
		{UserID: "late", UserName: "Late", Progress: 100},   // 50
	}

	rows := ranking.Compute(records, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, "early", rows[0].UserID)
	assert.Equal(t, "late", rows[1].UserID)
}

/*
TestCompute_Deterministic verifies identical inputs produce identical output.
*/
func TestCompute_Deterministic(t *testing.T) {
	records := []*record.Record{
		{UserID: "a", UserName: "A", Progress: 70},
		{UserID: "b", UserName: "B", Progress: 95},
		{UserID: "c", UserName: "C", Progress: 60},
	}
	levels := []*level.Level{
		{Rank: 1, Description: "[verifier:c]"},
		{Rank: 2, Description: "[verifier:d]"},
	}

	first := ranking.Compute(records, levels)
	second := ranking.Compute(records, levels)

	assert.Equal(t, first, second)
}

/*
TestCompute_Empty verifies empty inputs yield an empty (non-nil) board.
*/
func TestCompute_Empty(t *testing.T) {
	rows := ranking.Compute(nil, nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
