package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sqlrecord/internal/codec"
	"sqlrecord/internal/config"
	"sqlrecord/internal/database"
	"sqlrecord/internal/repository"
	"sqlrecord/internal/service"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Config file path (default: search SQLRECORD_CONFIG, ./sqlrecord.yaml, XDG dirs)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	seedPath := flag.String("seed", "", "Seed file to import (.json, .yaml or .yml)")
	format := flag.String("format", "json", "Snapshot output format: json or yaml")
	demo := flag.Bool("demo", false, "Run the users/books demo scenario before exporting")
	flag.Parse()

	if err := run(*configPath, *dbPath, *seedPath, *format, *demo, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "sqlrecord: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dbPath, seedPath, format string, demo bool, out io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, loadedFrom, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	if loadedFrom != "" {
		logger.Info("config loaded", "path", loadedFrom)
	}
	logger.Debug("effective config", "summary", cfg.Summary())

	exporter, err := codec.ForFormat(format)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.Database.Path, cfg.Database.Options(logger))
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database opened", "path", cfg.Database.Path)

	// Log committed changes
	eventBus := service.NewEventBus()
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	eventsDone := make(chan struct{})
	go func() {
		defer close(eventsDone)
		for event := range eventChan {
			logger.Debug("event", "type", event.Type, "id", event.ID, "payload", event.Payload)
		}
	}()
	defer func() {
		close(eventChan)
		<-eventsDone
	}()

	library, err := service.NewLibrary(ctx, db, eventBus)
	if err != nil {
		return err
	}

	if seedPath != "" {
		if err := importSeed(ctx, library, seedPath); err != nil {
			return err
		}
	}

	if demo {
		if err := runDemo(ctx, library, logger); err != nil {
			return err
		}
	}

	return library.Export(ctx, exporter, out)
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func importSeed(ctx context.Context, library *service.Library, path string) error {
	importer, err := codec.ForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()

	_, err = library.ImportFrom(ctx, importer, f)
	return err
}

// runDemo walks through every repository operation on both record types
func runDemo(ctx context.Context, library *service.Library, logger *slog.Logger) error {
	alice, err := library.AddUser(ctx, "Alice", 30)
	if err != nil {
		return err
	}
	logger.Info("demo: saved user", "user", alice)

	users, err := library.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		logger.Info("demo: user", "id", u.ID, "name", u.Name, "age", u.Age)
	}

	alice.Age++
	if err := library.UpdateUser(ctx, alice); err != nil {
		return err
	}

	dune, err := library.AddBook(ctx, "Dune", alice.ID)
	if err != nil {
		return err
	}

	books, err := library.ListBooks(ctx)
	if err != nil {
		return err
	}
	for _, b := range books {
		logger.Info("demo: book", "id", b.ID, "title", b.Title, "user_id", b.UserID)
	}

	missing, err := library.GetUser(ctx, 999)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		logger.Info("demo: lookup of missing id returned default record", "user", missing)
	case err != nil:
		return err
	default:
		logger.Info("demo: user 999 exists", "user", missing)
	}

	if err := library.RemoveBook(ctx, dune.ID); err != nil {
		return err
	}
	logger.Info("demo: removed book", "book", dune)

	return nil
}
