// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors. Every Postgres store routes its raw
// query errors through [Wrap] so internal database details never leak to
// the client.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gdlists/demonlist/internal/platform/apperr"
)

// uniqueViolation is the Postgres SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// ErrNotFound is a standard error returned when a queried row doesn't exist.
// Stores that know which resource was missed return a named
// [apperr.NotFound] before falling back to [Wrap].
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the
// error type; action names the failed store operation for the server-side
// log line.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsUniqueViolation reports whether err is a unique violation on the named
// constraint. An empty constraint matches a violation on any constraint.
// Stores use it where a collision carries domain meaning (slug retry,
// duplicate detection) before falling back to [Wrap].
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolation &&
		(constraint == "" || pgErr.ConstraintName == constraint)
}
