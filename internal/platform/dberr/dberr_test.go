// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdlists/demonlist/internal/platform/apperr"
	"github.com/gdlists/demonlist/internal/platform/dberr"
)

/*
TestWrap verifies database errors are classified into application errors
without leaking driver details to the client.
*/
func TestWrap(t *testing.T) {
	t.Run("nil_passes_through", func(t *testing.T) {
		assert.NoError(t, dberr.Wrap(nil, "list_levels"))
	})

	t.Run("no_rows_maps_to_not_found", func(t *testing.T) {
		err := dberr.Wrap(pgx.ErrNoRows, "find_level")

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "NOT_FOUND", appError.Code)
		assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
	})

	t.Run("unknown_error_maps_to_internal", func(t *testing.T) {
		cause := fmt.Errorf("connection reset by peer")
		err := dberr.Wrap(cause, "insert_record")

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "INTERNAL_ERROR", appError.Code)
		assert.Equal(t, http.StatusInternalServerError, appError.HTTPStatus)

		// The driver error stays server-side, chained under the action name.
		require.Error(t, appError.Cause)
		assert.True(t, errors.Is(appError.Cause, cause))
		assert.Contains(t, appError.Cause.Error(), "insert_record")
		assert.NotContains(t, appError.Message, "connection reset")
	})
}

/*
TestIsUniqueViolation verifies the SQLSTATE 23505 detection used by stores
for domain-level collision handling.
*/
func TestIsUniqueViolation(t *testing.T) {
	slugViolation := &pgconn.PgError{Code: "23505", ConstraintName: "levels_slug_key"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "named_constraint_matches", err: slugViolation, constraint: "levels_slug_key", want: true},
		{name: "empty_constraint_matches_any", err: slugViolation, constraint: "", want: true},
		{name: "other_constraint_rejected", err: slugViolation, constraint: "levels_rank_key", want: false},
		{name: "wrapped_pg_error_matches", err: fmt.Errorf("insert: %w", slugViolation), constraint: "levels_slug_key", want: true},
		{name: "other_sqlstate_rejected", err: &pgconn.PgError{Code: "23503", ConstraintName: "levels_slug_key"}, constraint: "levels_slug_key", want: false},
		{name: "plain_error_rejected", err: fmt.Errorf("boom"), constraint: "", want: false},
		{name: "nil_rejected", err: nil, constraint: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dberr.IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
