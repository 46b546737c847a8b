package domain

import "database/sql"

// Book belongs to a user through UserID. The reference is declared as a
// foreign key but only enforced when the connection enables foreign_keys.
type Book struct {
	ID     int64  `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	UserID int64  `json:"user_id" yaml:"user_id"`
}

// NewBook creates an unsaved book owned by userID
func NewBook(title string, userID int64) Book {
	return Book{Title: title, UserID: userID}
}

func (Book) TableName() string  { return "books" }
func (Book) PrimaryKey() string { return "id" }

func (Book) CreateTableSQL() string {
	return "CREATE TABLE IF NOT EXISTS books (id INTEGER PRIMARY KEY AUTOINCREMENT, title TEXT, user_id INT, " +
		"FOREIGN KEY(user_id) REFERENCES users(id));"
}

func (Book) InsertSQL() string {
	return "INSERT INTO books(title, user_id) VALUES(?, ?);"
}

func (Book) UpdateSQL() string {
	return "UPDATE books SET title = ?, user_id = ? WHERE id = ?;"
}

// InsertArgs binds title, user_id
func (b Book) InsertArgs() []any {
	return []any{b.Title, b.UserID}
}

// UpdateArgs binds title, user_id, id
func (b Book) UpdateArgs() []any {
	return []any{b.Title, b.UserID, b.ID}
}

// ScanRow reads id, title, user_id
func (b *Book) ScanRow(sc Scanner) error {
	var (
		id     int64
		title  sql.NullString
		userID sql.NullInt64
	)
	if err := sc.Scan(&id, &title, &userID); err != nil {
		return err
	}

	*b = Book{
		ID:     id,
		Title:  nullToString(title),
		UserID: nullToInt(userID),
	}
	return nil
}

func (b Book) GetID() int64    { return b.ID }
func (b *Book) SetID(id int64) { b.ID = id }
