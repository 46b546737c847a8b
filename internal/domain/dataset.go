package domain

// Seed is an import document. Users are saved first and each user's books
// are saved with the key the engine assigned to that user.
type Seed struct {
	Users []SeedUser `json:"users" yaml:"users"`
}

// SeedUser is a user to insert along with the titles of the books they own
type SeedUser struct {
	Name  string   `json:"name" yaml:"name"`
	Age   int      `json:"age" yaml:"age"`
	Books []string `json:"books,omitempty" yaml:"books,omitempty"`
}

// Dataset is a snapshot of every mapped table
type Dataset struct {
	Users []User `json:"users" yaml:"users"`
	Books []Book `json:"books" yaml:"books"`
}

// NewDataset creates an empty dataset with non-nil slices
func NewDataset() *Dataset {
	return &Dataset{
		Users: make([]User, 0),
		Books: make([]Book, 0),
	}
}

// BookCount returns the number of books across all seed users
func (s *Seed) BookCount() int {
	n := 0
	for _, u := range s.Users {
		n += len(u.Books)
	}
	return n
}
