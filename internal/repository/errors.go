package repository

import "errors"

var (
	// ErrNotFound is returned by FindByID when no row has the requested key
	ErrNotFound = errors.New("record not found")
	// ErrNoRowsWritten is returned by Save when the insert did not add exactly one row
	ErrNoRowsWritten = errors.New("insert did not write exactly one row")
)
