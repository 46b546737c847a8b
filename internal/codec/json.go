package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"sqlrecord/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports seed data from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Seed, error) {
	var seed domain.Seed
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &seed, nil
}

// Export writes a dataset as indented JSON
func (c *JSONCodec) Export(dataset *domain.Dataset, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(dataset); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
