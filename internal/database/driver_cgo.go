//go:build cgo_sqlite

// CGO SQLite driver using mattn/go-sqlite3.
// This is used when the cgo_sqlite build tag is set.
//
// Build with: go build -tags cgo_sqlite
// Requires: CGO_ENABLED=1
package database

import (
	"net/url"
	"strconv"

	_ "github.com/mattn/go-sqlite3" // CGO SQLite driver
)

const driverName = "sqlite3"

// buildDSN renders options as mattn underscore query parameters
func buildDSN(path string, opts Options) string {
	q := url.Values{}
	if opts.BusyTimeout > 0 {
		q.Set("_busy_timeout", strconv.FormatInt(opts.BusyTimeout.Milliseconds(), 10))
	}
	if opts.JournalMode != "" {
		q.Set("_journal_mode", opts.JournalMode)
	}
	if opts.ForeignKeys {
		q.Set("_foreign_keys", "1")
	}
	return withQuery(path, q)
}
