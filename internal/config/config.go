// Package config loads sqlrecord's YAML configuration.
//
// Config file locations (priority order):
//  1. $SQLRECORD_CONFIG
//  2. ./sqlrecord.yaml
//  3. $XDG_CONFIG_HOME/sqlrecord/config.yaml
//  4. ~/.config/sqlrecord/config.yaml
//  5. /etc/sqlrecord/config.yaml
//
// A missing file is not an error; DefaultConfig is used instead. A relative
// database.path in a config file is taken relative to that file's directory.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"sqlrecord/internal/database"
)

const (
	defaultDatabasePath = "./sqlrecord.db"
	defaultBusyTimeout  = 5 * time.Second
	defaultJournalMode  = "WAL"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.Database.Path = resolveDatabasePath(cfg.Database.Path, path)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	timeout := Duration(defaultBusyTimeout)
	return &Config{
		Version: 1,
		Database: DatabaseConfig{
			Path:        defaultDatabasePath,
			BusyTimeout: &timeout,
			JournalMode: defaultJournalMode,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.Database.BusyTimeout == nil {
		timeout := Duration(defaultBusyTimeout)
		c.Database.BusyTimeout = &timeout
	}
	if c.Database.JournalMode == "" {
		c.Database.JournalMode = defaultJournalMode
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate rejects values the rest of the program cannot act on
func (c *Config) Validate() error {
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.Log.Format)
	}
	switch strings.ToUpper(c.Database.JournalMode) {
	case "DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF":
	default:
		return fmt.Errorf("invalid journal mode %q", c.Database.JournalMode)
	}
	return nil
}

// Options converts the database section into handle options
func (d DatabaseConfig) Options(logger *slog.Logger) database.Options {
	opts := database.Options{
		JournalMode: d.JournalMode,
		ForeignKeys: d.ForeignKeys,
		Logger:      logger,
	}
	if d.BusyTimeout != nil {
		opts.BusyTimeout = d.BusyTimeout.Duration()
	}
	return opts
}

// NewLogger builds the diagnostic logger writing to w
func (l LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(l.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", l.Format)
	}
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Database: %s (journal=%s, foreign_keys=%t", c.Database.Path, c.Database.JournalMode, c.Database.ForeignKeys)
	if c.Database.BusyTimeout != nil {
		summary += fmt.Sprintf(", busy_timeout=%s", c.Database.BusyTimeout.Duration())
	}
	summary += ")\n"
	summary += fmt.Sprintf("Log: level=%s format=%s", c.Log.Level, c.Log.Format)
	return summary
}
