// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package account

import (
	"context"
	"errors"
	"time"

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

const profileColumns = `id, display_name, role, banned, created_at, last_login`

// scanProfile hydrates a Profile from a single-row query.
func scanProfile(row pgx.Row) (*Profile, error) {
	profile := &Profile{}
	err := row.Scan(
		&profile.ID,
		&profile.DisplayName,
		&profile.Role,
		&profile.Banned,
		&profile.CreatedAt,
		&profile.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

/*
FindByID retrieves a profile by the provider subject.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Profile: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM users
		WHERE id = $1`

	profile, err := scanProfile(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "find_profile")
	}

	return profile, nil
}

/*
List returns every profile ordered by creation time ascending.

Parameters:
  - context: context.Context

Returns:
  - []*Profile: Full profile set
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context) ([]*Profile, error) {
	const query = `
		SELECT ` + profileColumns + `
		FROM users
		ORDER BY created_at ASC`

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_profiles")
	}
	defer rows.Close()

	profiles := make([]*Profile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_profile")
		}
		profiles = append(profiles, profile)
	}

	return profiles, dberr.Wrap(rows.Err(), "list_profiles")
}

/*
Create persists a new profile created on first sign-in.

Parameters:
  - context: context.Context
  - profile: *Profile

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, profile *Profile) error {
	const query = `
		INSERT INTO users (id, display_name, role, banned, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.LastLogin.IsZero() {
		profile.LastLogin = now
	}

	_, err := repository.pool.Exec(context, query,
		profile.ID,
		profile.DisplayName,
		profile.Role,
		profile.Banned,
		profile.CreatedAt,
		profile.LastLogin,
	)

	if err != nil {
		return dberr.Wrap(err, "create_profile")
	}

	return nil
}

/*
TouchLastLogin updates only the lastLogin timestamp for a re-authenticating user.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) TouchLastLogin(context context.Context, id string) error {
	const query = `
		UPDATE users
		SET last_login = $2
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, id, time.Now())
	if err != nil {
		return dberr.Wrap(err, "touch_last_login")
	}

	return nil
}

/*
ToggleBan flips the banned flag atomically and returns the updated profile.

Description: The flip is a single UPDATE so the re-read of current state and
the mutation cannot interleave with another writer.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Profile: Post-toggle state
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) ToggleBan(context context.Context, id string) (*Profile, error) {
	const query = `
		UPDATE users
		SET banned = NOT banned
		WHERE id = $1
		RETURNING ` + profileColumns

	profile, err := scanProfile(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "toggle_ban")
	}

	return profile, nil
}

/*
ToggleMod flips the role between user and mod atomically.

Description: An admin target is overwritten to mod — the toggle only ever
produces 'user' or 'mod'.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Profile: Post-toggle state
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) ToggleMod(context context.Context, id string) (*Profile, error) {
	const query = `
		UPDATE users
		SET role = CASE WHEN role = 'mod' THEN 'user' ELSE 'mod' END
		WHERE id = $1
		RETURNING ` + profileColumns

	profile, err := scanProfile(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "toggle_mod")
	}

	return profile, nil
}

/*
ToggleAdmin flips the role between user and admin atomically.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Profile: Post-toggle state
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) ToggleAdmin(context context.Context, id string) (*Profile, error) {
	const query = `
		UPDATE users
		SET role = CASE WHEN role = 'admin' THEN 'user' ELSE 'admin' END
		WHERE id = $1
		RETURNING ` + profileColumns

	profile, err := scanProfile(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "toggle_admin")
	}

	return profile, nil
}
