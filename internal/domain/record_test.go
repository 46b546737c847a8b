package domain

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow replays a fixed column list through database/sql's conversion rules
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("expected %d destinations, got %d", len(r.values), len(dest))
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *sql.NullString:
			if err := d.Scan(v); err != nil {
				return err
			}
		case *sql.NullInt64:
			if err := d.Scan(v); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported destination %T", d)
		}
	}
	return nil
}

func TestUserScanRow(t *testing.T) {
	tests := []struct {
		name string
		row  fakeRow
		want User
	}{
		{
			name: "all columns present",
			row:  fakeRow{values: []any{int64(1), "Alice", int64(30)}},
			want: User{ID: 1, Name: "Alice", Age: 30},
		},
		{
			name: "null name becomes empty string",
			row:  fakeRow{values: []any{int64(2), nil, int64(41)}},
			want: User{ID: 2, Name: "", Age: 41},
		},
		{
			name: "null age becomes zero",
			row:  fakeRow{values: []any{int64(3), "Bob", nil}},
			want: User{ID: 3, Name: "Bob"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			require.NoError(t, u.ScanRow(tt.row))
			assert.Equal(t, tt.want, u)
		})
	}
}

func TestUserScanRowErrorLeavesRecordUntouched(t *testing.T) {
	u := User{ID: 7, Name: "keep", Age: 1}
	err := u.ScanRow(fakeRow{err: sql.ErrNoRows})

	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.Equal(t, User{ID: 7, Name: "keep", Age: 1}, u)
}

func TestBookScanRow(t *testing.T) {
	var b Book
	require.NoError(t, b.ScanRow(fakeRow{values: []any{int64(4), nil, int64(1)}}))
	assert.Equal(t, Book{ID: 4, Title: "", UserID: 1}, b)

	require.NoError(t, b.ScanRow(fakeRow{values: []any{int64(5), "Dune", nil}}))
	assert.Equal(t, Book{ID: 5, Title: "Dune", UserID: 0}, b)
}

func TestBindersMatchTemplates(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		args   []any
		wantLn int
	}{
		{"user insert", User{}.InsertSQL(), NewUser("Alice", 30).InsertArgs(), 2},
		{"user update", User{}.UpdateSQL(), User{ID: 1, Name: "Alice", Age: 31}.UpdateArgs(), 3},
		{"book insert", Book{}.InsertSQL(), NewBook("Dune", 1).InsertArgs(), 2},
		{"book update", Book{}.UpdateSQL(), Book{ID: 2, Title: "Dune", UserID: 1}.UpdateArgs(), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLn, strings.Count(tt.sql, "?"))
			assert.Len(t, tt.args, tt.wantLn)
		})
	}
}

func TestBinderOrder(t *testing.T) {
	u := User{ID: 9, Name: "Carol", Age: 52}
	assert.Equal(t, []any{"Carol", 52}, u.InsertArgs())
	assert.Equal(t, []any{"Carol", 52, int64(9)}, u.UpdateArgs())

	b := Book{ID: 3, Title: "Emma", UserID: 9}
	assert.Equal(t, []any{"Emma", int64(9)}, b.InsertArgs())
	assert.Equal(t, []any{"Emma", int64(9), int64(3)}, b.UpdateArgs())
}

func TestRecordIdentity(t *testing.T) {
	var records = []Record{&User{}, &Book{}}
	tables := []string{"users", "books"}

	for i, r := range records {
		assert.Equal(t, tables[i], r.TableName())
		assert.Equal(t, "id", r.PrimaryKey())
		assert.Contains(t, r.CreateTableSQL(), "CREATE TABLE IF NOT EXISTS "+tables[i])
		assert.Contains(t, r.CreateTableSQL(), "id INTEGER PRIMARY KEY AUTOINCREMENT")

		assert.Zero(t, r.GetID())
		r.SetID(42)
		assert.Equal(t, int64(42), r.GetID())
	}

	assert.Contains(t, Book{}.CreateTableSQL(), "FOREIGN KEY(user_id) REFERENCES users(id)")
}

func TestSeedBookCount(t *testing.T) {
	seed := Seed{Users: []SeedUser{
		{Name: "Alice", Age: 30, Books: []string{"Dune", "Emma"}},
		{Name: "Bob", Age: 25},
	}}
	assert.Equal(t, 2, seed.BookCount())
}
