//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	cacheDir    string
	sources     []entities.SourceConfig
	environment bool
	cacheTTL    time.Duration
	noExpansion bool
}

// NewSettingsBuilder creates a settings builder using in-memory clone storage
// and no sources.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		cacheDir:    entities.MemoryCacheDir,
	}
}

// WithCacheDir sets the clone cache directory.
func (b *SettingsBuilder) WithCacheDir(dir string) *SettingsBuilder {
	b.cacheDir = dir
	return b
}

// WithSource appends a source.
func (b *SettingsBuilder) WithSource(source entities.SourceConfig) *SettingsBuilder {
	b.sources = append(b.sources, source)
	return b
}

// WithEnvironment enables the environment fallback.
func (b *SettingsBuilder) WithEnvironment(enabled bool) *SettingsBuilder {
	b.environment = enabled
	return b
}

// WithCacheTTL enables the caching resolver.
func (b *SettingsBuilder) WithCacheTTL(ttl time.Duration) *SettingsBuilder {
	b.cacheTTL = ttl
	return b
}

// WithoutExpansion disables variable expansion.
func (b *SettingsBuilder) WithoutExpansion() *SettingsBuilder {
	b.noExpansion = true
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	return &entities.Settings{
		CacheDir:    b.cacheDir,
		Sources:     append([]entities.SourceConfig(nil), b.sources...),
		Environment: entities.EnvironmentConfig{Enabled: b.environment},
		Cache:       entities.CacheConfig{TTL: b.cacheTTL},
		Expansion:   entities.ExpansionConfig{Disabled: b.noExpansion},
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.cacheDir = entities.MemoryCacheDir
	b.sources = nil
	b.environment = false
	b.cacheTTL = 0
	b.noExpansion = false
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		cacheDir:    b.cacheDir,
		sources:     append([]entities.SourceConfig(nil), b.sources...),
		environment: b.environment,
		cacheTTL:    b.cacheTTL,
		noExpansion: b.noExpansion,
	}
}
