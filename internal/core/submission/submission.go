// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

/*
Package submission owns the review pipeline.

Members queue level proposals and record claims; moderators work the queue
oldest-first and approve or reject each item exactly once. Approval
materializes the payload into the level registry or the record ledger in
the same transaction that marks the submission approved, so a submission
can never be half-applied or applied twice.

# Architecture

  - Entities: Submission with a typed payload variant per submission type.
  - Service: Input validation and action authorization.
  - Repository: pgx-backed store; the approve path runs SELECT FOR UPDATE,
    materialization, and the status flip in one transaction.
*/
package submission

import (
	"context"
	"time"

	"github.com/gdlists/demonlist/internal/core/level"
	"github.com/gdlists/demonlist/internal/core/record"
)

// # Domain Entities

// Type discriminates what a submission proposes.
type Type string

const (
	TypeLevel  Type = "level"
	TypeRecord Type = "record"
)

// Status is the review state of a submission.
//
// Approved and rejected are terminal. A decided submission is immutable;
// re-deciding it is a conflict, never a silent repeat.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LevelPayload is the proposal carried by a level submission.
type LevelPayload struct {
	Name              string `json:"name"`
	GDID              string `json:"gd_id"`
	Description       string `json:"description"`
	VerificationVideo string `json:"verification_video"`
}

// RecordPayload is the claim carried by a record submission.
//
// LevelName is free text; it is not validated against the level registry
// and is copied verbatim into the ledger on approval. Progress is validated
// once at submission time and never re-validated or recomputed.
type RecordPayload struct {
	LevelName string `json:"level_name"`
	Progress  int    `json:"progress"`
	Video     string `json:"video"`
}

// Submission is one queued item awaiting (or past) review.
//
// Exactly one of Level or Record is set, matching Type.
type Submission struct {
	ID        string         `json:"id"`
	Type      Type           `json:"type"`
	Status    Status         `json:"status"`
	Level     *LevelPayload  `json:"level_payload,omitempty"`
	Record    *RecordPayload `json:"record_payload,omitempty"`
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
}

// Outcome reports what an approval materialized.
type Outcome struct {
	Submission *Submission    `json:"submission"`
	Level      *level.Level   `json:"level,omitempty"`
	Record     *record.Record `json:"record,omitempty"`
}

// # Field Identifiers

const (
	FieldName              = "name"
	FieldGDID              = "gd_id"
	FieldVerificationVideo = "verification_video"
	FieldLevelName         = "level_name"
	FieldProgress          = "progress"
	FieldVideo             = "video"
)

// MinProgress is the lowest progress percentage worth a record submission.
const MinProgress = 60

// # Repository Contract

// Repository defines the persistence contract for the review pipeline.
type Repository interface {

	/*
		Create queues a new pending submission.

		Parameters:
		  - context: context.Context
		  - submission: *Submission

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, submission *Submission) error

	/*
		ListPending returns pending submissions, createdAt ascending (FIFO).

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Submission: The review queue, oldest first
		  - error: Storage failures
	*/
	ListPending(context context.Context) ([]*Submission, error)

	/*
		Approve decides a pending submission and materializes its payload.

		The whole decision is one transaction: the row is locked, the level
		or record is written, and the status flips to approved. Any failure
		rolls the entire decision back.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Outcome: The decided submission plus what it materialized
		  - error: apperr.NotFound (unknown id), apperr.Conflict (already
		    decided), or storage failures
	*/
	Approve(context context.Context, id string) (*Outcome, error)

	/*
		Reject decides a pending submission without materializing anything.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Submission: Post-decision state
		  - error: apperr.NotFound (unknown id), apperr.Conflict (already
		    decided), or storage failures
	*/
	Reject(context context.Context, id string) (*Submission, error)
}
