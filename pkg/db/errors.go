package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation. When constraintName is provided, the helper also
// requires the constraint to match.
func IsUniqueViolation(err error, constraintName string) bool {
	return matchesPGCode(err, pgUniqueViolation, constraintName, "duplicate key value", "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether the error comes from a foreign key
// constraint (for example deleting a row that is still referenced).
func IsForeignKeyViolation(err error, constraintName string) bool {
	return matchesPGCode(err, pgForeignKeyViolation, constraintName, "violates foreign key constraint", "FOREIGN KEY constraint failed")
}

func matchesPGCode(err error, code, constraintName string, fallbacks ...string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != code {
			return false
		}
		return constraintName == "" || pgErr.ConstraintName == constraintName
	}
	msg := err.Error()
	if constraintName != "" && !strings.Contains(msg, constraintName) {
		return false
	}
	for _, fb := range fallbacks {
		if strings.Contains(msg, fb) {
			return true
		}
	}
	return false
}
