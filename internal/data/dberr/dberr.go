package dberr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrConflict = errors.New("record already exists")

const pgUniqueViolation = "23505"

// IsUniqueViolation recognizes duplicate-key errors from Postgres and from
// gorm's translated errors (sqlite).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// Map converts driver-level errors into package sentinels.
func Map(err error) error {
	if IsUniqueViolation(err) {
		return errors.Join(ErrConflict, err)
	}
	return err
}
