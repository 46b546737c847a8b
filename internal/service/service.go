package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"sqlrecord/internal/codec"
	"sqlrecord/internal/database"
	"sqlrecord/internal/domain"
	"sqlrecord/internal/repository"
)

// Library provides user and book operations over one database handle
type Library struct {
	users    *repository.Repository[domain.User, *domain.User]
	books    *repository.Repository[domain.Book, *domain.Book]
	eventBus *EventBus
	log      *slog.Logger
}

// ImportResult counts the rows written by Import
type ImportResult struct {
	Users int `json:"users"`
	Books int `json:"books"`
}

// NewLibrary ensures both tables exist. Users is created first so the books
// foreign key has a target.
func NewLibrary(ctx context.Context, db *database.Handle, eventBus *EventBus) (*Library, error) {
	users, err := repository.New[domain.User](ctx, db)
	if err != nil {
		return nil, err
	}
	books, err := repository.New[domain.Book](ctx, db)
	if err != nil {
		return nil, err
	}

	if eventBus == nil {
		eventBus = NewEventBus()
	}

	return &Library{
		users:    users,
		books:    books,
		eventBus: eventBus,
		log:      db.Logger(),
	}, nil
}

// AddUser saves a new user and returns it with its assigned key
func (s *Library) AddUser(ctx context.Context, name string, age int) (domain.User, error) {
	if err := validateAge(age); err != nil {
		return domain.User{}, err
	}

	user := domain.NewUser(name, age)
	if _, err := s.users.Save(ctx, &user); err != nil {
		return domain.User{}, err
	}

	s.eventBus.Publish(Event{Type: EventUserSaved, Payload: user})
	return user, nil
}

// GetUser retrieves a single user by ID
func (s *Library) GetUser(ctx context.Context, id int64) (domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// ListUsers returns all users
func (s *Library) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.LoadAll(ctx)
}

// UpdateUser replaces a user's name and age
func (s *Library) UpdateUser(ctx context.Context, user domain.User) error {
	if user.ID <= 0 {
		return fmt.Errorf("user ID is required for update")
	}
	if err := validateAge(user.Age); err != nil {
		return err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.eventBus.Publish(Event{Type: EventUserUpdated, Payload: user})
	return nil
}

// RemoveUser deletes a user. Their books are left in place.
func (s *Library) RemoveUser(ctx context.Context, id int64) error {
	if err := s.users.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{Type: EventUserDeleted, Payload: map[string]int64{"id": id}})
	return nil
}

// AddBook saves a new book owned by userID
func (s *Library) AddBook(ctx context.Context, title string, userID int64) (domain.Book, error) {
	if title == "" {
		return domain.Book{}, fmt.Errorf("book title is required")
	}

	book := domain.NewBook(title, userID)
	if _, err := s.books.Save(ctx, &book); err != nil {
		return domain.Book{}, err
	}

	s.eventBus.Publish(Event{Type: EventBookSaved, Payload: book})
	return book, nil
}

// GetBook retrieves a single book by ID
func (s *Library) GetBook(ctx context.Context, id int64) (domain.Book, error) {
	return s.books.FindByID(ctx, id)
}

// ListBooks returns all books
func (s *Library) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.books.LoadAll(ctx)
}

// UpdateBook replaces a book's title and owner
func (s *Library) UpdateBook(ctx context.Context, book domain.Book) error {
	if book.ID <= 0 {
		return fmt.Errorf("book ID is required for update")
	}
	if book.Title == "" {
		return fmt.Errorf("book title is required")
	}

	if err := s.books.Update(ctx, book); err != nil {
		return err
	}

	s.eventBus.Publish(Event{Type: EventBookUpdated, Payload: book})
	return nil
}

// RemoveBook deletes a book
func (s *Library) RemoveBook(ctx context.Context, id int64) error {
	if err := s.books.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{Type: EventBookDeleted, Payload: map[string]int64{"id": id}})
	return nil
}

// Import saves every seed user and then that user's books. Each call is
// independent; a failure part way leaves the rows written so far.
func (s *Library) Import(ctx context.Context, seed *domain.Seed) (ImportResult, error) {
	var result ImportResult

	for _, su := range seed.Users {
		user, err := s.AddUser(ctx, su.Name, su.Age)
		if err != nil {
			return result, fmt.Errorf("failed to import user %q: %w", su.Name, err)
		}
		result.Users++

		for _, title := range su.Books {
			if _, err := s.AddBook(ctx, title, user.ID); err != nil {
				return result, fmt.Errorf("failed to import book %q for %s: %w", title, su.Name, err)
			}
			result.Books++
		}
	}

	s.log.Info("seed imported", "users", result.Users, "books", result.Books)
	s.eventBus.Publish(Event{Type: EventSeedImported, Payload: result})
	return result, nil
}

// ImportFrom parses r with importer and imports the result
func (s *Library) ImportFrom(ctx context.Context, importer codec.Importer, r io.Reader) (ImportResult, error) {
	seed, err := importer.Parse(r)
	if err != nil {
		return ImportResult{}, err
	}
	return s.Import(ctx, seed)
}

// Snapshot loads both tables
func (s *Library) Snapshot(ctx context.Context) (*domain.Dataset, error) {
	users, err := s.users.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	books, err := s.books.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	dataset := domain.NewDataset()
	dataset.Users = users
	dataset.Books = books
	return dataset, nil
}

// Export writes a snapshot of both tables with exporter
func (s *Library) Export(ctx context.Context, exporter codec.Exporter, w io.Writer) error {
	dataset, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	return exporter.Export(dataset, w)
}

func validateAge(age int) error {
	if age < 0 {
		return fmt.Errorf("user age must not be negative, got %d", age)
	}
	return nil
}
