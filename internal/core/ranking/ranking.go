// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

/*
Package ranking computes the player leaderboard.

The leaderboard is derived state: it is recomputed from the record ledger
and the level registry on every request and never persisted. Compute is a
pure function so the scoring rules are trivially testable.

# Scoring

  - Each record is worth max(0, progress-50) points.
  - Each level whose description carries a verifier tag credits 200 points
    to the tagged player.
*/
package ranking

import (
	"regexp"
	"sort"
	"strings"

	"github.com/gdlists/demonlist/internal/core/level"
	"github.com/gdlists/demonlist/internal/core/record"
)

// Row is one leaderboard entry.
type Row struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Points      int    `json:"points"`
}

// VerifierPoints is the flat credit for verifying a level.
const VerifierPoints = 200

// verifierTag matches the first verifier annotation in a level description,
// e.g. "[verifier:abc123]". Case-insensitive.
var verifierTag = regexp.MustCompile(`(?i)\[verifier:([^\]]+)\]`)

// RecordPoints converts a progress percentage into leaderboard points.
func RecordPoints(progress int) int {
	points := progress - 50
	if points < 0 {
		return 0
	}
	return points
}

/*
Compute derives the leaderboard from the ledger and the registry.

Description: Records accumulate per user in input order; the last userName
seen for a user wins as the display name. Verifier tags then credit their
flat bonus, creating an entry (named by the raw tag value) for verifiers
with no records. Output is sorted by points descending; the sort is stable,
so users tie-break in first-seen order with record holders ahead of
tag-only verifiers.

Parameters:
  - records: []*record.Record (createdAt ascending)
  - levels: []*level.Level (rank ascending)

Returns:
  - []Row: Leaderboard, highest points first
*/
func Compute(records []*record.Record, levels []*level.Level) []Row {
	points := make(map[string]int)
	names := make(map[string]string)
	var order []string

	credit := func(userID, displayName string, amount int) {
		if _, seen := points[userID]; !seen {
			order = append(order, userID)
		}
		points[userID] += amount
		if displayName != "" {
			names[userID] = displayName
		}
	}

	for _, rec := range records {
		credit(rec.UserID, rec.UserName, RecordPoints(rec.Progress))
	}

	for _, lvl := range levels {
		match := verifierTag.FindStringSubmatch(lvl.Description)
		if match == nil {
			continue
		}
		verifier := strings.TrimSpace(match[1])
		if verifier == "" {
			continue
		}
		// Only name the entry by the tag when no record named it already.
		displayName := ""
		if _, seen := points[verifier]; !seen {
			displayName = verifier
		}
		credit(verifier, displayName, VerifierPoints)
	}

	rows := make([]Row, 0, len(order))
	for _, userID := range order {
		rows = append(rows, Row{
			UserID:      userID,
			DisplayName: names[userID],
			Points:      points[userID],
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})

	return rows
}
