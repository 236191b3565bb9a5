// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gdlists/demonlist/internal/core/level"
	"github.com/gdlists/demonlist/internal/core/record"
	"github.com/gdlists/demonlist/internal/platform/apperr"
	"github.com/gdlists/demonlist/internal/platform/dberr"
	"github.com/gdlists/demonlist/pkg/slug"
	"github.com/gdlists/demonlist/pkg/uuid"
)

// PostgresRepository implements the Repository interface using pgx.
//
// Approval crosses domain boundaries on purpose: materializing requires the
// level insert or record append to commit atomically with the status flip,
// so the registry and ledger expose transaction-scoped writers this store
// drives inside its own transaction.
type PostgresRepository struct {
	pool    *pgxpool.Pool
	levels  level.TxInserter
	records record.TxAppender
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool, levels level.TxInserter, records record.TxAppender) *PostgresRepository {
	return &PostgresRepository{pool: pool, levels: levels, records: records}
}

const submissionColumns = `id, type, payload, status, created_by, created_at`

// encodePayload serializes the variant matching the submission type.
func encodePayload(submission *Submission) ([]byte, error) {
	switch submission.Type {
	case TypeLevel:
		if submission.Level == nil {
			return nil, fmt.Errorf("level submission without level payload")
		}
		return json.Marshal(submission.Level)
	case TypeRecord:
		if submission.Record == nil {
			return nil, fmt.Errorf("record submission without record payload")
		}
		return json.Marshal(submission.Record)
	default:
		return nil, fmt.Errorf("unknown submission type %q", submission.Type)
	}
}

// decodePayload hydrates the variant matching the submission type.
func decodePayload(submission *Submission, payload []byte) error {
	switch submission.Type {
	case TypeLevel:
		submission.Level = &LevelPayload{}
		return json.Unmarshal(payload, submission.Level)
	case TypeRecord:
		submission.Record = &RecordPayload{}
		return json.Unmarshal(payload, submission.Record)
	default:
		return fmt.Errorf("unknown submission type %q", submission.Type)
	}
}

// scanSubmission hydrates a Submission, including its typed payload.
func scanSubmission(row pgx.Row) (*Submission, error) {
	submission := &Submission{}
	var payload []byte

	err := row.Scan(
		&submission.ID,
		&submission.Type,
		&payload,
		&submission.Status,
		&submission.CreatedBy,
		&submission.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodePayload(submission, payload); err != nil {
		return nil, fmt.Errorf("submission payload decode failed: %w", err)
	}

	return submission, nil
}

/*
Create queues a new pending submission.

Parameters:
  - context: context.Context
  - submission: *Submission

Returns:
  - error: Database errors
*/
func (repository *PostgresRepository) Create(context context.Context, submission *Submission) error {
	payload, err := encodePayload(submission)
	if err != nil {
		return fmt.Errorf("encode submission payload: %w", err)
	}

	const query = `
		INSERT INTO submissions (id, type, payload, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = repository.pool.Exec(context, query,
		submission.ID,
		submission.Type,
		payload,
		submission.Status,
		submission.CreatedBy,
		submission.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_submission")
	}

	return nil
}

/*
ListPending returns pending submissions oldest first.

Parameters:
  - context: context.Context

Returns:
  - []*Submission: The review queue in FIFO order
  - error: Database errors
*/
func (repository *PostgresRepository) ListPending(context context.Context) ([]*Submission, error) {
	const query = `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE status = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := repository.pool.Query(context, query, StatusPending)
	if err != nil {
		return nil, dberr.Wrap(err, "list_pending_submissions")
	}
	defer rows.Close()

	submissions := make([]*Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_submission")
		}
		submissions = append(submissions, submission)
	}

	return submissions, dberr.Wrap(rows.Err(), "list_pending_submissions")
}

/*
Approve decides a pending submission and materializes its payload, all in
one transaction.

Description: The submission row is locked with FOR UPDATE so two moderators
deciding the same item serialize; the loser sees a terminal status and gets
a Conflict. Materialization and the status flip commit together or not at
all.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Outcome: The decided submission plus the level or record it produced
  - error: apperr.NotFound, apperr.Conflict, or database errors
*/
func (repository *PostgresRepository) Approve(context context.Context, id string) (*Outcome, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_submission_tx")
	}
	defer tx.Rollback(context)

	submission, err := lockPending(context, tx, id)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Submission: submission}
	now := time.Now().UTC()

	switch submission.Type {
	case TypeLevel:
		lvl := &level.Level{
			ID:                uuid.New(),
			Name:              submission.Level.Name,
			Slug:              slug.From(submission.Level.Name),
			GDID:              submission.Level.GDID,
			Description:       submission.Level.Description,
			VerificationVideo: submission.Level.VerificationVideo,
			CreatedBy:         submission.CreatedBy,
			CreatedAt:         now,
		}
		if err := repository.levels.InsertWithRank(context, tx, lvl); err != nil {
			return nil, err
		}
		outcome.Level = lvl

	case TypeRecord:
		userName, err := submitterDisplayName(context, tx, submission.CreatedBy)
		if err != nil {
			return nil, err
		}
		rec := &record.Record{
			ID:        uuid.New(),
			LevelName: submission.Record.LevelName,
			UserID:    submission.CreatedBy,
			UserName:  userName,
			Progress:  submission.Record.Progress,
			Video:     submission.Record.Video,
			CreatedAt: now,
		}
		if err := repository.records.InsertTx(context, tx, rec); err != nil {
			return nil, err
		}
		outcome.Record = rec

	default:
		return nil, fmt.Errorf("unknown submission type %q", submission.Type)
	}

	if err := decide(context, tx, id, StatusApproved); err != nil {
		return nil, err
	}
	submission.Status = StatusApproved

	if err := tx.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_submission_tx")
	}

	return outcome, nil
}

/*
Reject decides a pending submission without materializing anything.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Submission: Post-decision state
  - error: apperr.NotFound, apperr.Conflict, or database errors
*/
func (repository *PostgresRepository) Reject(context context.Context, id string) (*Submission, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_submission_tx")
	}
	defer tx.Rollback(context)

	submission, err := lockPending(context, tx, id)
	if err != nil {
		return nil, err
	}

	if err := decide(context, tx, id, StatusRejected); err != nil {
		return nil, err
	}
	submission.Status = StatusRejected

	if err := tx.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_submission_tx")
	}

	return submission, nil
}

// lockPending loads a submission under FOR UPDATE and enforces the terminal
// state rules.
func lockPending(context context.Context, tx pgx.Tx, id string) (*Submission, error) {
	const query = `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE id = $1
		FOR UPDATE`

	submission, err := scanSubmission(tx.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Submission")
		}
		return nil, dberr.Wrap(err, "lock_submission")
	}

	if submission.Status != StatusPending {
		return nil, apperr.Conflict("Submission has already been decided")
	}

	return submission, nil
}

// decide flips the status of a locked pending submission.
func decide(context context.Context, tx pgx.Tx, id string, status Status) error {
	const query = `
		UPDATE submissions
		SET status = $2
		WHERE id = $1`

	if _, err := tx.Exec(context, query, id, status); err != nil {
		return dberr.Wrap(err, "decide_submission")
	}

	return nil
}

// submitterDisplayName resolves the ledger name for an approved record.
//
// The name is the submitter's stored profile name at approval time. A
// missing profile falls back to the raw user id so an approval never fails
// on a deleted account.
func submitterDisplayName(context context.Context, tx pgx.Tx, userID string) (string, error) {
	const query = `
		SELECT display_name
		FROM users
		WHERE id = $1`

	var displayName string
	err := tx.QueryRow(context, query, userID).Scan(&displayName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return userID, nil
		}
		return "", dberr.Wrap(err, "lookup_submitter_name")
	}

	return displayName, nil
}
