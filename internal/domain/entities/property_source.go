package entities

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// PropertySource describes one git-backed property source.
type PropertySource struct {
	Name      string
	Reference RepositoryReference

	// File is the property file for structured formats, or the directory whose
	// files are the keys for FormatPlain ("" means the repository root).
	File   string
	Format Format

	Refresh RefreshPolicy

	// Optional sources defer to the next source instead of failing when their
	// ref or file does not exist.
	Optional bool

	// Processors run in order on every value the source returns.
	Processors []Processor
}

// Validate checks the parts of a PropertySource not covered by its reference.
func (s PropertySource) Validate() error {
	if s.Name == "" {
		return errors.New("source name is required")
	}
	if s.Reference.Location() == "" {
		return fmt.Errorf("source %q: repository reference is required", s.Name)
	}
	if s.Format.IsStructured() && s.File == "" {
		return fmt.Errorf("source %q: file is required for format %s", s.Name, s.Format)
	}
	if err := s.Refresh.Validate(); err != nil {
		return fmt.Errorf("source %q: %w", s.Name, err)
	}
	return nil
}

// KeyPath maps a key to a repository path for FormatPlain sources. Keys that
// would escape the configured directory are rejected.
func (s PropertySource) KeyPath(key string) (string, bool) {
	if key == "" || strings.HasPrefix(key, "/") {
		return "", false
	}
	cleaned := path.Clean(key)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return path.Join(strings.Trim(s.File, "/"), cleaned), true
}
