package dberrs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"custody/internal/adapters/out/postgres/dberrs"
	"custody/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		contention   bool
		unauthorized bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true, false},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true, false},
		{"lock not available", &pgconn.PgError{Code: "55P03"}, true, false},
		{"duplicate key", &pgconn.PgError{Code: "23505"}, true, false},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true, false},
		{"wrapped serialization failure", fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40001"}), true, false},
		{"permission denied", &pgconn.PgError{Code: "42501"}, false, true},
		{"bad password", &pgconn.PgError{Code: "28P01"}, false, true},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false, false},
		{"sqlite busy", errors.New("database is locked (5) (SQLITE_BUSY)"), true, false},
		{"sqlite shared cache locked", errors.New("database table is locked: sequence_counters (262) (SQLITE_LOCKED_SHAREDCACHE)"), true, false},
		{"sqlite locked", errors.New("database table is locked (6)"), true, false},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: qc_decisions.intake_id (2067)"), true, false},
		{"plain error", errors.New("boom"), false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := dberrs.Classify("counter write", tc.err)

			require.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.contention, errors.Is(err, errs.ErrContention))
			assert.Equal(t, tc.unauthorized, errors.Is(err, errs.ErrUnauthorized))
		})
	}
}

func TestClassify_PassesThrough(t *testing.T) {
	assert.NoError(t, dberrs.Classify("x", nil))
	assert.Equal(t, context.Canceled, dberrs.Classify("x", context.Canceled))

	classified := errs.NewUnauthorizedError("x", nil)
	assert.Same(t, classified, dberrs.Classify("y", classified))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberrs.IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, dberrs.IsUniqueViolation(errors.New("UNIQUE constraint failed: inventory_items.intake_id")))
	assert.False(t, dberrs.IsUniqueViolation(&pgconn.PgError{Code: "40001"}))
}
