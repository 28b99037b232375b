package sqlite

import "database/sql"

// NewForTest builds a Repository around an existing database handle,
// bypassing the file open and schema migration. Used with sqlmock.
func NewForTest(db *sql.DB) *Repository {
	return &Repository{db: db}
}
