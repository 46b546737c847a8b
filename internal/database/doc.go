// Package database owns the single connection to the embedded SQLite engine.
//
// A Handle is opened once, exposes raw statement execution for schema DDL,
// and hands its connection to repositories for statement preparation.
//
// # Broken handles
//
// Open never returns a nil Handle. When the engine refuses to open the file
// the Handle is returned in a broken state alongside the error: every later
// operation logs and returns ErrClosed, and Close is a no-op. Callers that
// ignore the open error therefore degrade to failed operations instead of a
// nil-pointer panic.
//
// # Drivers
//
// The pure Go modernc.org/sqlite driver is used by default. Building with
// the cgo_sqlite tag switches to github.com/mattn/go-sqlite3:
//
//	go build -tags cgo_sqlite ./...
//
// Each driver file renders the connection pragmas (busy timeout, journal
// mode, foreign keys) in its own DSN dialect.
//
// # Concurrency
//
// The underlying pool is capped at one open connection, so concurrent
// callers serialize on it and an in-memory database lives as long as the
// Handle.
package database
