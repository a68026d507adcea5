package formats

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// Registry manages the parsers of the structured formats.
type Registry struct {
	parsers map[entities.Format]repositories.FormatParser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		parsers: make(map[entities.Format]repositories.FormatParser),
	}
}

// NewDefaultRegistry creates a registry with every built-in parser.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(NewPropertiesParser())
	reg.Register(NewJSONParser())
	reg.Register(NewYAMLParser())
	reg.Register(NewTOMLParser())
	reg.Register(NewHCLParser())
	return reg
}

// Register adds a parser under its format.
func (r *Registry) Register(parser repositories.FormatParser) {
	r.parsers[parser.Format()] = parser
}

// Get returns the parser for the given format.
func (r *Registry) Get(format entities.Format) (repositories.FormatParser, error) {
	parser, ok := r.parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser registered for format %q", format)
	}
	return parser, nil
}

// Formats returns the registered formats, sorted.
func (r *Registry) Formats() []entities.Format {
	result := make([]entities.Format, 0, len(r.parsers))
	for format := range r.parsers {
		result = append(result, format)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
