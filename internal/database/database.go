package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrClosed is returned by every operation on a closed or broken Handle
var ErrClosed = errors.New("database handle is closed")

// Options configures how a Handle opens the engine
type Options struct {
	// BusyTimeout is how long the engine waits on a locked database
	BusyTimeout time.Duration
	// JournalMode is passed to PRAGMA journal_mode (e.g. WAL, DELETE)
	JournalMode string
	// ForeignKeys turns on PRAGMA foreign_keys; SQLite leaves it off
	ForeignKeys bool
	// Logger receives diagnostics; defaults to a discarding logger
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Handle wraps exactly one connection to the embedded engine
type Handle struct {
	db      *sqlx.DB
	path    string
	log     *slog.Logger
	openErr error

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Open opens or creates the database at path. The returned Handle is never
// nil; when err is non-nil the Handle is broken.
func Open(ctx context.Context, path string, opts Options) (*Handle, error) {
	logger := opts.logger()
	h := &Handle{path: path, log: logger}

	db, err := sqlx.ConnectContext(ctx, driverName, buildDSN(path, opts))
	if err != nil {
		h.openErr = fmt.Errorf("failed to open database %s: %w", path, err)
		h.closed.Store(true)
		logger.Error("error opening database", "path", path, "driver", driverName, "err", err)
		return h, h.openErr
	}

	// One connection for the lifetime of the handle
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	h.db = db
	logger.Debug("database opened", "path", path, "driver", driverName)
	return h, nil
}

// Exec runs a statement that takes no parameters and returns no rows
func (h *Handle) Exec(ctx context.Context, query string) error {
	if h.closed.Load() {
		h.log.Error("sql error", "query", query, "err", ErrClosed)
		return ErrClosed
	}

	if _, err := h.db.ExecContext(ctx, query); err != nil {
		h.log.Error("sql error", "query", query, "err", err)
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Conn returns the underlying connection for statement preparation, or nil
// if the handle is closed or broken
func (h *Handle) Conn() *sqlx.DB {
	if h.closed.Load() {
		return nil
	}
	return h.db
}

// Path returns the path the handle was opened with
func (h *Handle) Path() string {
	return h.path
}

// Err returns the error that broke the handle at open time, if any
func (h *Handle) Err() error {
	return h.openErr
}

// Logger returns the diagnostic logger shared with repositories
func (h *Handle) Logger() *slog.Logger {
	return h.log
}

// Close releases the connection. It is safe to call more than once and on a
// broken handle.
func (h *Handle) Close() error {
	h.closeOnce.Do(func() {
		h.closed.Store(true)
		if h.db == nil {
			return
		}
		if err := h.db.Close(); err != nil {
			h.log.Error("error closing database", "path", h.path, "err", err)
			h.closeErr = fmt.Errorf("failed to close database: %w", err)
			return
		}
		h.log.Debug("database closed", "path", h.path)
	})
	return h.closeErr
}
