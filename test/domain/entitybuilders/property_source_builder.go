//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/gitprops/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PropertySourceBuilder helps create test property sources with a fluent interface.
type PropertySourceBuilder struct {
	*testkit.BaseBuilder
	name       string
	location   string
	ref        string
	kind       entities.RefKind
	auth       entities.AuthConfig
	file       string
	format     entities.Format
	refresh    entities.RefreshPolicy
	optional   bool
	processors []entities.Processor
}

// NewPropertySourceBuilder creates a new property source builder with sensible defaults.
func NewPropertySourceBuilder() *PropertySourceBuilder {
	b := &PropertySourceBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *PropertySourceBuilder) defaults() {
	b.name = "shared"
	b.location = "https://example.com/org/config.git"
	b.ref = "main"
	b.kind = entities.RefKindBranch
	b.auth = entities.AuthConfig{Type: entities.AuthTypeNone}
	b.file = "application.properties"
	b.format = entities.FormatProperties
	b.refresh = entities.RefreshPolicy{Mode: entities.RefreshOnce}
	b.optional = false
	b.processors = nil
}

// WithName sets the source name.
func (b *PropertySourceBuilder) WithName(name string) *PropertySourceBuilder {
	b.name = name
	return b
}

// WithLocation sets the repository location.
func (b *PropertySourceBuilder) WithLocation(location string) *PropertySourceBuilder {
	b.location = location
	return b
}

// WithRef sets the ref and how it is interpreted.
func (b *PropertySourceBuilder) WithRef(ref string, kind entities.RefKind) *PropertySourceBuilder {
	b.ref = ref
	b.kind = kind
	return b
}

// WithAuth sets the authentication.
func (b *PropertySourceBuilder) WithAuth(auth entities.AuthConfig) *PropertySourceBuilder {
	b.auth = auth
	return b
}

// WithFile sets the property file, or the directory for plain sources.
func (b *PropertySourceBuilder) WithFile(file string) *PropertySourceBuilder {
	b.file = file
	return b
}

// WithFormat sets the file format.
func (b *PropertySourceBuilder) WithFormat(format entities.Format) *PropertySourceBuilder {
	b.format = format
	return b
}

// WithRefresh sets the refresh policy.
func (b *PropertySourceBuilder) WithRefresh(refresh entities.RefreshPolicy) *PropertySourceBuilder {
	b.refresh = refresh
	return b
}

// WithOptional marks the source optional.
func (b *PropertySourceBuilder) WithOptional(optional bool) *PropertySourceBuilder {
	b.optional = optional
	return b
}

// WithProcessors sets the processors run on every value.
func (b *PropertySourceBuilder) WithProcessors(processors ...entities.Processor) *PropertySourceBuilder {
	b.processors = processors
	return b
}

// Build creates the property source (satisfies testkit.Builder interface).
func (b *PropertySourceBuilder) Build() interface{} {
	return b.BuildPropertySource()
}

// BuildPropertySource creates the property source with a concrete return type.
// It panics on an invalid reference, which is a broken test setup.
func (b *PropertySourceBuilder) BuildPropertySource() entities.PropertySource {
	ref, err := entities.NewRepositoryReference(b.location, b.ref, b.kind, b.auth)
	if err != nil {
		panic(err)
	}
	return entities.PropertySource{
		Name:       b.name,
		Reference:  ref,
		File:       b.file,
		Format:     b.format,
		Refresh:    b.refresh,
		Optional:   b.optional,
		Processors: b.processors,
	}
}

// BuildSourceConfig creates the settings entry describing the same source.
func (b *PropertySourceBuilder) BuildSourceConfig() entities.SourceConfig {
	var processors []string
	for _, processor := range b.processors {
		processors = append(processors, string(processor))
	}
	return entities.SourceConfig{
		Name:       b.name,
		Location:   b.location,
		Ref:        b.ref,
		RefKind:    string(b.kind),
		File:       b.file,
		Format:     string(b.format),
		Refresh:    b.refresh,
		Optional:   b.optional,
		Processors: processors,
		Auth:       b.auth,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PropertySourceBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the PropertySourceBuilder.
func (b *PropertySourceBuilder) Clone() testkit.Builder {
	return &PropertySourceBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		location:    b.location,
		ref:         b.ref,
		kind:        b.kind,
		auth:        b.auth,
		file:        b.file,
		format:      b.format,
		refresh:     b.refresh,
		optional:    b.optional,
		processors:  append([]entities.Processor(nil), b.processors...),
	}
}
