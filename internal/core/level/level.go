// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

/*
Package level owns the ranked level registry.

Levels are the heart of the list: an ordered set of demons where rank 1 is
the hardest. Ranks form a dense 1..N sequence with no gaps and no ties; the
registry is the only writer of rank values, and every rank mutation happens
inside a single transaction.

# Architecture

  - Entities: Level.
  - Service: Validation, slug derivation, and action authorization.
  - Repository: pgx-backed store; next-rank computation happens in SQL so
    two concurrent inserts serialize instead of racing a read-then-write.
*/
package level

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// # Domain Entities

// Level represents a single ranked demon on the list.
type Level struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	GDID        string    `json:"gd_id"`
	Description string    `json:"description"`
	// VerificationVideo is optional; record submissions carry their own footage.
	VerificationVideo string    `json:"verification_video,omitempty"`
	Rank              int       `json:"rank"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldName              = "name"
	FieldGDID              = "gd_id"
	FieldDescription       = "description"
	FieldVerificationVideo = "verification_video"
	FieldIDs               = "ids"
)

// # Repository Contract

// Repository defines the persistence contract for the level registry.
type Repository interface {

	/*
		List returns every level, rank ascending.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Level: The full ordered list (the list is small; no pagination)
		  - error: Storage failures
	*/
	List(context context.Context) ([]*Level, error)

	/*
		FindByID retrieves a single level.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Level: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Level, error)

	/*
		Add inserts a level at the bottom of the list.

		The next rank (max existing + 1, or 1 on an empty list) is computed
		inside the same transaction as the insert.

		Parameters:
		  - context: context.Context
		  - level: *Level (Rank is assigned by the store and written back)

		Returns:
		  - error: apperr.Conflict on slug collision after retries, or storage failures
	*/
	Add(context context.Context, level *Level) error

	/*
		Reorder reassigns ranks so that ids[i] receives rank i+1.

		All-or-nothing: the whole permutation applies in one transaction or
		none of it does. The id set must be exactly the current level set.

		Parameters:
		  - context: context.Context
		  - ids: []string (every current level id exactly once, new order)

		Returns:
		  - error: apperr.ValidationError on a bad id set, or storage failures
	*/
	Reorder(context context.Context, ids []string) error
}

// TxInserter exposes the registry's next-rank insert for callers that are
// already inside a transaction (the review engine materializes approved
// level submissions this way).
type TxInserter interface {
	InsertWithRank(context context.Context, tx pgx.Tx, level *Level) error
}
