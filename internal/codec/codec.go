package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"sqlrecord/internal/domain"
)

// Importer interface for reading seed data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Seed, error)
	Format() string
}

// Exporter interface for writing table snapshots to various formats
type Exporter interface {
	Export(dataset *domain.Dataset, w io.Writer) error
	Format() string
}

// Codec both imports and exports
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec registered under name (json, yaml or yml)
func ForFormat(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", name)
	}
}

// ForPath picks a codec from a file's extension
func ForPath(path string) (Codec, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("cannot infer format of %s: no extension", path)
	}
	return ForFormat(ext)
}
