// Package dberrs maps driver failures onto the errs taxonomy so the core can
// tell contention from permission problems without knowing the database.
package dberrs

import (
	"context"
	"errors"
	"strings"

	"custody/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes. Class 08 (connection exception) is matched by prefix.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeUniqueViolation      = "23505"
	codeInsufficientPrivs    = "42501"
	codeInvalidAuthorization = "28000"
	codeInvalidPassword      = "28P01"
)

// Classify wraps err so that errors.Is reports errs.ErrContention for
// conflicting or interrupted writes and errs.ErrUnauthorized for permission
// failures. Errors that are already classified, context errors and anything
// unrecognised are returned unchanged.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrContention) ||
		errors.Is(err, errs.ErrUnauthorized) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeInsufficientPrivs,
			pgErr.Code == codeInvalidAuthorization,
			pgErr.Code == codeInvalidPassword:
			return errs.NewUnauthorizedError(operation, err)
		case pgErr.Code == codeSerializationFailure,
			pgErr.Code == codeDeadlockDetected,
			pgErr.Code == codeLockNotAvailable,
			pgErr.Code == codeUniqueViolation,
			strings.HasPrefix(pgErr.Code, "08"):
			return errs.NewContentionError(operation, err)
		}
		return err
	}

	if isSQLiteBusy(err) || isSQLiteUnique(err) {
		return errs.NewContentionError(operation, err)
	}
	return err
}

// IsUniqueViolation reports whether err is a duplicate-key failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return isSQLiteUnique(err)
}

// isSQLiteBusy matches SQLITE_BUSY and the shared-cache SQLITE_LOCKED form
// ("database table is locked").
func isSQLiteBusy(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"database is locked", "database table is locked", "sqlite_busy", "sqlite_locked"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isSQLiteUnique(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
