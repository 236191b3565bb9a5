// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package record

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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

const recordColumns = `id, level_name, user_id, user_name, progress, video, created_at`

/*
List returns the full ledger ordered by createdAt ascending.

Parameters:
  - context: context.Context

Returns:
  - []*Record: Full ledger
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context) ([]*Record, error) {
	const query = `
		SELECT ` + recordColumns + `
		FROM records
		ORDER BY created_at ASC, id ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_records")
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		rec := &Record{}
		err := rows.Scan(
			&rec.ID,
			&rec.LevelName,
			&rec.UserID,
			&rec.UserName,
			&rec.Progress,
			&rec.Video,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_record")
		}
		records = append(records, rec)
	}

	return records, dberr.Wrap(rows.Err(), "list_records")
}

/*
InsertTx appends a record within the caller's transaction.

Description: The ledger is append-only; there is no update or delete path.

Parameters:
  - context: context.Context
  - tx: pgx.Tx (caller commits or rolls back)
  - record: *Record

Returns:
  - error: Database errors
*/
func (repository *PostgresRepository) InsertTx(context context.Context, tx pgx.Tx, record *Record) error {
	const query = `
		INSERT INTO records (id, level_name, user_id, user_name, progress, video, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(context, query,
		record.ID,
		record.LevelName,
		record.UserID,
		record.UserName,
		record.Progress,
		record.Video,
		record.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_record")
	}

	return nil
}
