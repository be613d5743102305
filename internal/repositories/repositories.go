// package repositories provides the persistence layer over the catalog tables.
//
// Each repository wraps a *sql.DB handle passed in by the caller; no
// package-level connection state exists. Multi-row mutations run inside
// a single transaction so partial state is never observable.
package repositories

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint
// failure. Uniqueness violations are expected outcomes (duplicate track
// path, duplicate username, duplicate join row) and are mapped to
// sentinel errors rather than surfaced raw.
func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
