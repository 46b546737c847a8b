//go:build !cgo_sqlite

// Pure Go SQLite driver using modernc.org/sqlite.
// This is the default when the cgo_sqlite build tag is not set.
package database

import (
	"fmt"
	"net/url"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const driverName = "sqlite"

// buildDSN renders options as modernc _pragma query parameters
func buildDSN(path string, opts Options) string {
	q := url.Values{}
	if opts.BusyTimeout > 0 {
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", opts.BusyTimeout.Milliseconds()))
	}
	if opts.JournalMode != "" {
		q.Add("_pragma", fmt.Sprintf("journal_mode(%s)", opts.JournalMode))
	}
	if opts.ForeignKeys {
		q.Add("_pragma", "foreign_keys(1)")
	}
	return withQuery(path, q)
}
