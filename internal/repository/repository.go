package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"sqlrecord/internal/database"
	"sqlrecord/internal/domain"
)

// Row constrains P to be a pointer to T that implements the record contract
type Row[T any] interface {
	*T
	domain.Record
}

// Repository maps records of type T to rows of T's table
type Repository[T any, P Row[T]] struct {
	db    *database.Handle
	log   *slog.Logger
	table string
	pk    string
}

// New binds a repository to the handle and ensures the table exists. The
// repository is returned even when table creation fails, so a broken handle
// yields a repository whose operations all fail.
func New[T any, P Row[T]](ctx context.Context, db *database.Handle) (*Repository[T, P], error) {
	var zero T
	rec := P(&zero)

	r := &Repository[T, P]{
		db:    db,
		log:   db.Logger().With("table", rec.TableName()),
		table: rec.TableName(),
		pk:    rec.PrimaryKey(),
	}

	if err := db.Exec(ctx, rec.CreateTableSQL()); err != nil {
		r.log.Error("failed to ensure table", "err", err)
		return r, fmt.Errorf("failed to create table %s: %w", r.table, err)
	}
	r.log.Debug("table ready")

	return r, nil
}

// Table returns the name of the backing table
func (r *Repository[T, P]) Table() string {
	return r.table
}

// Save inserts rec, writes the engine-assigned key back onto it and returns
// that key
func (r *Repository[T, P]) Save(ctx context.Context, rec P) (int64, error) {
	stmt, err := r.prepare(ctx, "save", rec.InsertSQL())
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, rec.InsertArgs()...)
	if err != nil {
		return 0, r.fail("save", fmt.Errorf("failed to insert into %s: %w", r.table, err))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.fail("save", fmt.Errorf("failed to read rows affected: %w", err))
	}
	if n != 1 {
		return 0, r.fail("save", fmt.Errorf("%w: %d rows", ErrNoRowsWritten, n))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, r.fail("save", fmt.Errorf("failed to read assigned key: %w", err))
	}
	rec.SetID(id)

	return id, nil
}

// LoadAll returns every row of the table in engine order
func (r *Repository[T, P]) LoadAll(ctx context.Context) ([]T, error) {
	stmt, err := r.prepare(ctx, "load_all", fmt.Sprintf("SELECT * FROM %s;", r.table))
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.QueryxContext(ctx)
	if err != nil {
		return nil, r.fail("load_all", fmt.Errorf("failed to query %s: %w", r.table, err))
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var item T
		if err := P(&item).ScanRow(rows); err != nil {
			return nil, r.fail("load_all", fmt.Errorf("failed to scan %s row: %w", r.table, err))
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, r.fail("load_all", fmt.Errorf("error iterating %s: %w", r.table, err))
	}

	return items, nil
}

// FindByID returns the record whose key equals id. When none matches it
// returns the zero record and ErrNotFound.
func (r *Repository[T, P]) FindByID(ctx context.Context, id int64) (T, error) {
	var result T

	stmt, err := r.prepare(ctx, "find_by_id", fmt.Sprintf("SELECT * FROM %s WHERE %s = ?;", r.table, r.pk))
	if err != nil {
		return result, err
	}
	defer stmt.Close()

	var found T
	err = P(&found).ScanRow(stmt.QueryRowxContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		r.log.Debug("record not found", "id", id)
		return result, fmt.Errorf("%s %d: %w", r.table, id, ErrNotFound)
	}
	if err != nil {
		return result, r.fail("find_by_id", fmt.Errorf("failed to query %s: %w", r.table, err))
	}

	return found, nil
}

// Update writes every non-key field of rec to the row with rec's key. An
// update that matches no row is not an error.
func (r *Repository[T, P]) Update(ctx context.Context, rec T) error {
	p := P(&rec)

	stmt, err := r.prepare(ctx, "update", p.UpdateSQL())
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, p.UpdateArgs()...)
	if err != nil {
		return r.fail("update", fmt.Errorf("failed to update %s: %w", r.table, err))
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		r.log.Debug("update matched no rows", "id", p.GetID())
	}
	return nil
}

// DeleteByID removes the row whose key equals id. Deleting a missing id is
// not an error.
func (r *Repository[T, P]) DeleteByID(ctx context.Context, id int64) error {
	stmt, err := r.prepare(ctx, "delete_by_id", fmt.Sprintf("DELETE FROM %s WHERE %s = ?;", r.table, r.pk))
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, id); err != nil {
		return r.fail("delete_by_id", fmt.Errorf("failed to delete from %s: %w", r.table, err))
	}
	return nil
}

// prepare compiles query on the handle's connection; the caller closes the
// statement
func (r *Repository[T, P]) prepare(ctx context.Context, op, query string) (*sqlx.Stmt, error) {
	conn := r.db.Conn()
	if conn == nil {
		return nil, r.fail(op, database.ErrClosed)
	}

	stmt, err := conn.PreparexContext(ctx, query)
	if err != nil {
		return nil, r.fail(op, fmt.Errorf("failed to prepare statement: %w", err))
	}
	return stmt, nil
}

// fail reports err on the diagnostic stream and returns it unchanged
func (r *Repository[T, P]) fail(op string, err error) error {
	r.log.Error("repository operation failed", "op", op, "err", err)
	return err
}
