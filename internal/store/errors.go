package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ErrNoRows is returned when a query matches nothing.
var ErrNoRows = errors.New("no rows in result set")

// IsNoRows matches the package's own sentinel plus the database/sql and pgx
// equivalents, so callers don't care which backend is underneath.
func IsNoRows(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNoRows) ||
		errors.Is(err, sql.ErrNoRows) ||
		errors.Is(err, pgx.ErrNoRows)
}
