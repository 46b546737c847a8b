package domain

import "database/sql"

// User is a person who may own books
type User struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Age  int    `json:"age" yaml:"age"`
}

// NewUser creates an unsaved user; the engine assigns ID on insert
func NewUser(name string, age int) User {
	return User{Name: name, Age: age}
}

func (User) TableName() string  { return "users" }
func (User) PrimaryKey() string { return "id" }

func (User) CreateTableSQL() string {
	return "CREATE TABLE IF NOT EXISTS users (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, age INT);"
}

func (User) InsertSQL() string {
	return "INSERT INTO users(name, age) VALUES(?, ?);"
}

func (User) UpdateSQL() string {
	return "UPDATE users SET name = ?, age = ? WHERE id = ?;"
}

// InsertArgs binds name, age
func (u User) InsertArgs() []any {
	return []any{u.Name, u.Age}
}

// UpdateArgs binds name, age, id
func (u User) UpdateArgs() []any {
	return []any{u.Name, u.Age, u.ID}
}

// ScanRow reads id, name, age
func (u *User) ScanRow(sc Scanner) error {
	var (
		id   int64
		name sql.NullString
		age  sql.NullInt64
	)
	if err := sc.Scan(&id, &name, &age); err != nil {
		return err
	}

	*u = User{
		ID:   id,
		Name: nullToString(name),
		Age:  int(nullToInt(age)),
	}
	return nil
}

func (u User) GetID() int64    { return u.ID }
func (u *User) SetID(id int64) { u.ID = id }
