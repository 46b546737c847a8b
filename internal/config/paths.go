package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// EnvConfigPath names an explicit config file
	EnvConfigPath = "SQLRECORD_CONFIG"
	// ConfigFileName is looked up in the working directory
	ConfigFileName = "sqlrecord.yaml"
	// ConfigDirName is the per-user and system config directory name
	ConfigDirName = "sqlrecord"
)

// searchPaths lists config candidates in priority order. Unset variables
// contribute no candidate.
func searchPaths() []string {
	var paths []string
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, ConfigFileName)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the absolute path of the first existing candidate
// from searchPaths, or "" when none exists
func FindConfigPath() string {
	for _, p := range searchPaths() {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
		return p
	}
	return ""
}

// resolveDatabasePath anchors a relative database path to the directory of
// the config file that named it. In-memory databases, file: URIs and
// absolute paths are returned unchanged.
func resolveDatabasePath(dbPath, configPath string) string {
	switch {
	case dbPath == "", dbPath == ":memory:":
		return dbPath
	case strings.HasPrefix(dbPath, "file:"):
		return dbPath
	case filepath.IsAbs(dbPath):
		return dbPath
	}
	return filepath.Join(filepath.Dir(configPath), dbPath)
}

// EnsureConfigDir creates the directory that will hold configPath
func EnsureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}
