package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlrecord/internal/codec"
	"sqlrecord/internal/database"
	"sqlrecord/internal/domain"
	"sqlrecord/internal/repository"
)

func newTestLibrary(t *testing.T) (*Library, chan Event) {
	t.Helper()
	h, err := database.Open(context.Background(), ":memory:", database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	bus := NewEventBus()
	events := make(chan Event, 64)
	bus.Subscribe(events)

	lib, err := NewLibrary(context.Background(), h, bus)
	require.NoError(t, err)
	return lib, events
}

func drain(events chan Event) []EventType {
	var types []EventType
	for {
		select {
		case ev := <-events:
			types = append(types, ev.Type)
		default:
			return types
		}
	}
}

func TestLibraryUserLifecycle(t *testing.T) {
	ctx := context.Background()
	lib, events := newTestLibrary(t)

	alice, err := lib.AddUser(ctx, "Alice", 30)
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 1, Name: "Alice", Age: 30}, alice)

	alice.Age = 31
	require.NoError(t, lib.UpdateUser(ctx, alice))

	got, err := lib.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 31, got.Age)

	require.NoError(t, lib.RemoveUser(ctx, alice.ID))
	_, err = lib.GetUser(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Equal(t, []EventType{EventUserSaved, EventUserUpdated, EventUserDeleted}, drain(events))
}

func TestLibraryValidation(t *testing.T) {
	ctx := context.Background()
	lib, events := newTestLibrary(t)

	_, err := lib.AddUser(ctx, "Bob", -1)
	assert.Error(t, err)

	assert.Error(t, lib.UpdateUser(ctx, domain.User{Name: "no id"}))

	_, err = lib.AddBook(ctx, "", 1)
	assert.Error(t, err)

	assert.Error(t, lib.UpdateBook(ctx, domain.Book{Title: "no id"}))
	assert.Error(t, lib.UpdateBook(ctx, domain.Book{ID: 1}))

	assert.Empty(t, drain(events), "rejected calls publish nothing")

	users, err := lib.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLibraryBookLifecycle(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	alice, err := lib.AddUser(ctx, "Alice", 30)
	require.NoError(t, err)

	dune, err := lib.AddBook(ctx, "Dune", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Book{ID: 1, Title: "Dune", UserID: 1}, dune)

	dune.Title = "Dune Messiah"
	require.NoError(t, lib.UpdateBook(ctx, dune))

	got, err := lib.GetBook(ctx, dune.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)

	require.NoError(t, lib.RemoveBook(ctx, dune.ID))
	books, err := lib.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestLibraryImportAssignsOwners(t *testing.T) {
	ctx := context.Background()
	lib, events := newTestLibrary(t)

	// Pre-existing row shifts the keys assigned during import
	_, err := lib.AddUser(ctx, "Zed", 99)
	require.NoError(t, err)
	drain(events)

	seed := &domain.Seed{Users: []domain.SeedUser{
		{Name: "Alice", Age: 30, Books: []string{"Dune", "Emma"}},
		{Name: "Bob", Age: 25},
		{Name: "Carol", Age: 52, Books: []string{"Beloved"}},
	}}

	result, err := lib.Import(ctx, seed)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Users: 3, Books: 3}, result)

	snapshot, err := lib.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.User{
		{ID: 1, Name: "Zed", Age: 99},
		{ID: 2, Name: "Alice", Age: 30},
		{ID: 3, Name: "Bob", Age: 25},
		{ID: 4, Name: "Carol", Age: 52},
	}, snapshot.Users)
	assert.Equal(t, []domain.Book{
		{ID: 1, Title: "Dune", UserID: 2},
		{ID: 2, Title: "Emma", UserID: 2},
		{ID: 3, Title: "Beloved", UserID: 4},
	}, snapshot.Books)

	types := drain(events)
	require.NotEmpty(t, types)
	assert.Equal(t, EventSeedImported, types[len(types)-1])
}

func TestLibraryImportStopsOnFirstError(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	seed := &domain.Seed{Users: []domain.SeedUser{
		{Name: "Alice", Age: 30, Books: []string{"Dune"}},
		{Name: "Broken", Age: -5, Books: []string{"Never"}},
		{Name: "Carol", Age: 52},
	}}

	result, err := lib.Import(ctx, seed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
	assert.Equal(t, ImportResult{Users: 1, Books: 1}, result)
}

func TestLibraryImportAndExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	lib, _ := newTestLibrary(t)

	input := "users:\n  - name: Alice\n    age: 30\n    books: [Dune]\n"
	result, err := lib.ImportFrom(ctx, codec.NewYAMLCodec(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Users: 1, Books: 1}, result)

	var out bytes.Buffer
	require.NoError(t, lib.Export(ctx, codec.NewJSONCodec(), &out))
	assert.JSONEq(t, `{
		"users": [{"id": 1, "name": "Alice", "age": 30}],
		"books": [{"id": 1, "title": "Dune", "user_id": 1}]
	}`, out.String())
}

func TestSnapshotEmpty(t *testing.T) {
	lib, _ := newTestLibrary(t)

	snapshot, err := lib.Snapshot(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snapshot.Users)
	assert.NotNil(t, snapshot.Books)
	assert.Empty(t, snapshot.Users)
	assert.Empty(t, snapshot.Books)
}

func TestNewLibraryOnBrokenHandle(t *testing.T) {
	h, err := database.Open(context.Background(), t.TempDir()+"/missing/x.db", database.Options{})
	require.Error(t, err)

	_, err = NewLibrary(context.Background(), h, nil)
	assert.ErrorIs(t, err, database.ErrClosed)
}

func TestEventBus(t *testing.T) {
	bus := NewEventBus()
	fast := make(chan Event, 1)
	full := make(chan Event) // unbuffered, never read
	bus.Subscribe(fast)
	bus.Subscribe(full)

	done := make(chan struct{})
	go func() {
		bus.Publish(Event{Type: EventUserSaved})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	ev := <-fast
	assert.Equal(t, EventUserSaved, ev.Type)
	assert.NotEmpty(t, ev.ID, "Publish assigns an ID")
	assert.False(t, ev.At.IsZero(), "Publish stamps the time")
}
