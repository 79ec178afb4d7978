package repositories

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/Masterminds/squirrel"
)

// ErrNotFound is returned by update operations that matched no row.
var ErrNotFound = errors.New("not found")

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func returning(cols []string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}

// noRows folds sql.ErrNoRows into a nil result for get-by-id lookups.
func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
