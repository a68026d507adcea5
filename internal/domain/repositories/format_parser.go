package repositories

import "github.com/rios0rios0/gitprops/internal/domain/entities"

// FormatParser turns the content of a property file into flat key/value pairs.
// Nested documents are flattened into dotted keys.
type FormatParser interface {
	Format() entities.Format
	Parse(content []byte) (map[string]string, error)
}
