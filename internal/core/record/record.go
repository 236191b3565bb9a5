// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

/*
Package record owns the append-only ledger of approved completions.

Records are written exclusively by the review engine when a record
submission is approved; nothing in the system updates or deletes a record
afterwards. The ledger is the input to the ranking calculator.
*/
package record

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// # Domain Entities

// Record is one approved completion (or partial completion) of a level.
type Record struct {
	ID        string    `json:"id"`
	LevelName string    `json:"level_name"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Progress  int       `json:"progress"`
	Video     string    `json:"video"`
	CreatedAt time.Time `json:"created_at"`
}

// # Repository Contract

// Repository defines the read side of the ledger.
type Repository interface {

	/*
		List returns the full ledger, createdAt ascending.

		The ascending order is load-bearing for the ranking calculator: the
		most recently written userName per user wins, so iteration order must
		match write order.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Record: Full ledger
		  - error: Storage failures
	*/
	List(context context.Context) ([]*Record, error)
}

// TxAppender exposes the ledger's append for callers already inside a
// transaction (the review engine materializes approved record submissions
// this way).
type TxAppender interface {
	InsertTx(context context.Context, tx pgx.Tx, record *Record) error
}
