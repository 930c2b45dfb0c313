// Package repository implements the data access layer over GORM.
// Lookups return (nil, nil) when the row does not exist; callers decide
// which not-found message applies.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for a unique index conflict.
const pgUniqueViolation = "23505"

// ErrDuplicate is returned when an insert hits a unique index.
var ErrDuplicate = errors.New("duplicate key")

// isUniqueConstraintError matches translated GORM errors and raw pgconn
// errors from connections opened without TranslateError.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
