// Package repository defines helpers that are reused across multiple
// repositories.  Store failures leave this package wrapped in
// apperror.PersistenceError, missing rows as apperror.NotFoundError, and a
// show pointing at a missing venue or artist as apperror.ValidationError.
package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/venue-booking/internal/apperror"
)

// MySQL server error numbers the repositories react to.
const (
	errNoReferencedRow = 1452 // foreign key target missing
)

func notFound(resource string, id uint64) error {
	return &apperror.NotFoundError{Resource: resource, ID: id}
}

// isForeignKeyViolation reports whether err is MySQL's "cannot add or update
// a child row" error.
func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errNoReferencedRow
}

// nullString stores empty optional text as NULL.
func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// likePattern builds a case-insensitive substring pattern where % and _ in
// the term match literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
