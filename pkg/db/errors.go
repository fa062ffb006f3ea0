package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation on
// either SQLite or Postgres. When constraint is provided, the helper also
// requires the constraint (or column list, on SQLite) to appear in the error.
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}

	matched := false
	var pgErr *pgconn.PgError
	var liteErr sqlite3.Error
	switch {
	case errors.As(err, &pgErr):
		matched = pgErr.Code == pgUniqueViolation
		if matched && constraint != "" {
			return pgErr.ConstraintName == constraint || strings.Contains(pgErr.Message, constraint)
		}
	case errors.As(err, &liteErr):
		matched = liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	case errors.Is(err, gorm.ErrDuplicatedKey):
		matched = true
	default:
		msg := err.Error()
		matched = strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
	}

	if !matched || constraint == "" {
		return matched
	}
	return strings.Contains(err.Error(), constraint)
}
