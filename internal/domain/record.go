package domain

import "database/sql"

// Scanner is satisfied by *sql.Row, *sql.Rows and their sqlx counterparts
type Scanner interface {
	Scan(dest ...any) error
}

// Record is the mapping contract every persisted type implements.
//
// Column order is fixed per type and shared by CreateTableSQL, ScanRow and
// the two binders:
//   - InsertArgs returns values in InsertSQL placeholder order, key excluded
//   - UpdateArgs returns values in UpdateSQL placeholder order, key last
//   - ScanRow reads the table's columns positionally, key first
//
// A mismatch between a template and its binder is not detected at runtime;
// the wrong column silently receives the wrong value.
type Record interface {
	TableName() string
	PrimaryKey() string
	CreateTableSQL() string
	InsertSQL() string
	UpdateSQL() string

	InsertArgs() []any
	UpdateArgs() []any
	ScanRow(sc Scanner) error

	GetID() int64
	SetID(id int64)
}

// nullToString returns "" for NULL text columns
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// nullToInt returns 0 for NULL integer columns
func nullToInt(ni sql.NullInt64) int64 {
	if ni.Valid {
		return ni.Int64
	}
	return 0
}
