// Package repository provides the data access layer for the catalog,
// watchlist, downloads and user tables.
package repository

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when no row matches the given key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint. The constraint is the authoritative duplicate signal;
	// callers may pre-check existence but must treat this error as the
	// final word under concurrent writes.
	ErrDuplicate = errors.New("record already exists")
)

// translateErr maps sqlite constraint violations to ErrDuplicate.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return ErrDuplicate
		}
	}
	return err
}
