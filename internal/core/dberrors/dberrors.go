// Package dberrors maps driver-level failures onto the application error
// taxonomy so handlers can distinguish conflicts from generic failures.
package dberrors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes surfaced as conflicts.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// IsNotFound reports whether err is the ORM's missing-row sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports whether err is a duplicate-key failure. The
// string checks cover the sqlite driver used by the test suite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err is a referential-integrity
// failure: deleting a row still referenced, or inserting a dangling
// reference.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// IsConflict reports whether err is either conflict class.
func IsConflict(err error) bool {
	return IsUniqueViolation(err) || IsForeignKeyViolation(err)
}
