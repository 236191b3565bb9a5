// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package level

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gdlists/demonlist/internal/platform/apperr"
	"github.com/gdlists/demonlist/internal/platform/dberr"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const levelColumns = `id, name, slug, gd_id, description, verification_video, rank, created_by, created_at`

// scanLevel hydrates a Level from a single-row query.
func scanLevel(row pgx.Row) (*Level, error) {
	lvl := &Level{}
	var verificationVideo *string
	err := row.Scan(
		&lvl.ID,
		&lvl.Name,
		&lvl.Slug,
		&lvl.GDID,
		&lvl.Description,
		&verificationVideo,
		&lvl.Rank,
		&lvl.CreatedBy,
		&lvl.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if verificationVideo != nil {
		lvl.VerificationVideo = *verificationVideo
	}
	return lvl, nil
}

/*
List returns every level ordered by rank ascending.

Parameters:
  - context: context.Context

Returns:
  - []*Level: The full ordered list
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context) ([]*Level, error) {
	const query = `
		SELECT ` + levelColumns + `
		FROM levels
		ORDER BY rank ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_levels")
	}
	defer rows.Close()

	levels := make([]*Level, 0)
	for rows.Next() {
		lvl, err := scanLevel(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_level")
		}
		levels = append(levels, lvl)
	}

	return levels, dberr.Wrap(rows.Err(), "list_levels")
}

/*
FindByID retrieves a single level.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Level: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Level, error) {
	const query = `
		SELECT ` + levelColumns + `
		FROM levels
		WHERE id = $1`

	lvl, err := scanLevel(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Level")
		}
		return nil, dberr.Wrap(err, "find_level")
	}

	return lvl, nil
}

/*
Add inserts a level at the bottom of the list inside its own transaction.

Parameters:
  - context: context.Context
  - level: *Level (Rank is assigned by the insert and written back)

Returns:
  - error: apperr.Conflict on persistent slug collision, or database errors
*/
func (repository *PostgresRepository) Add(context context.Context, level *Level) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_level_tx")
	}
	defer tx.Rollback(context)

	if err := repository.InsertWithRank(context, tx, level); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_level_tx")
	}

	return nil
}

/*
InsertWithRank inserts a level within the caller's transaction, assigning
rank = max(existing)+1.

Description: The levels table is locked against concurrent writers first so
two inserts cannot compute the same next rank. A slug collision retries once
with an id-derived suffix; the id is unique so the retry cannot collide.

Parameters:
  - context: context.Context
  - tx: pgx.Tx (caller commits or rolls back)
  - level: *Level (Rank and possibly Slug are written back)

Returns:
  - error: apperr.Conflict on persistent slug collision, or database errors
*/
func (repository *PostgresRepository) InsertWithRank(context context.Context, tx pgx.Tx, level *Level) error {

	// Serialize rank assignment. Readers are unaffected.
	if _, err := tx.Exec(context, `LOCK TABLE levels IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return dberr.Wrap(err, "lock_levels")
	}

	const query = `
		INSERT INTO levels (id, name, slug, gd_id, description, verification_video, rank, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, (SELECT COALESCE(MAX(rank), 0) + 1 FROM levels), $7, $8)
		RETURNING rank`

	var verificationVideo *string
	if level.VerificationVideo != "" {
		verificationVideo = &level.VerificationVideo
	}

	insert := func() error {
		return tx.QueryRow(context, query,
			level.ID,
			level.Name,
			level.Slug,
			level.GDID,
			level.Description,
			verificationVideo,
			level.CreatedBy,
			level.CreatedAt,
		).Scan(&level.Rank)
	}

	err := insert()
	if dberr.IsUniqueViolation(err, "levels_slug_key") {
		level.Slug = level.Slug + "-" + level.ID[:8]
		err = insert()
	}

	if err != nil {
		if dberr.IsUniqueViolation(err, "") {
			return apperr.Conflict("Level already exists")
		}
		return dberr.Wrap(err, "insert_level")
	}

	return nil
}

/*
Reorder reassigns ranks so that ids[i] receives rank i+1, all-or-nothing.

Description: Current rows are locked and the id set compared against the
input before any rank changes. The rank unique constraint is deferred, so
the permutation applies as one statement without transient collisions.

Parameters:
  - context: context.Context
  - ids: []string

Returns:
  - error: apperr.ValidationError on a bad id set, or database errors
*/
func (repository *PostgresRepository) Reorder(context context.Context, ids []string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_level_tx")
	}
	defer tx.Rollback(context)

	// Lock out concurrent inserts and reorders for the duration.
	if _, err := tx.Exec(context, `LOCK TABLE levels IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return dberr.Wrap(err, "lock_levels")
	}

	rows, err := tx.Query(context, `SELECT id FROM levels`)
	if err != nil {
		return dberr.Wrap(err, "list_level_ids")
	}

	current := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return dberr.Wrap(err, "scan_level_id")
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "list_level_ids")
	}

	if err := matchIDSet(current, ids); err != nil {
		return err
	}

	const update = `
		UPDATE levels
		SET rank = ordering.ord
		FROM (SELECT id, ord FROM unnest($1::uuid[]) WITH ORDINALITY AS t(id, ord)) AS ordering
		WHERE levels.id = ordering.id`

	if _, err := tx.Exec(context, update, ids); err != nil {
		return dberr.Wrap(err, "reorder_levels")
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_level_tx")
	}

	return nil
}

// matchIDSet verifies ids is exactly the key set of current, no misses,
// no strangers, no duplicates.
func matchIDSet(current map[string]bool, ids []string) error {
	if len(ids) != len(current) {
		return apperr.ValidationError("Reorder must include every level exactly once",
			apperr.FieldError{Field: FieldIDs, Message: "must list every level id exactly once"})
	}

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !current[id] {
			return apperr.ValidationError("Reorder contains an unknown level id",
				apperr.FieldError{Field: FieldIDs, Message: "unknown level id: " + id})
		}
		if seen[id] {
			return apperr.ValidationError("Reorder contains a duplicate level id",
				apperr.FieldError{Field: FieldIDs, Message: "duplicate level id: " + id})
		}
		seen[id] = true
	}

	return nil
}

