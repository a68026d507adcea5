package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// MemoryCacheDir selects in-memory clone storage instead of a cache directory.
const MemoryCacheDir = "memory"

// Settings is the top-level configuration for gitprops.
type Settings struct {
	CacheDir    string            `yaml:"cache_dir"`
	Sources     []SourceConfig    `yaml:"sources"`
	Environment EnvironmentConfig `yaml:"environment"`
	Cache       CacheConfig       `yaml:"cache"`
	Expansion   ExpansionConfig   `yaml:"expansion"`
}

// SourceConfig describes a single git property source.
type SourceConfig struct {
	Name     string        `yaml:"name"`
	Location string        `yaml:"location"` // Local path or remote URL
	Ref      string        `yaml:"ref"`
	RefKind  string        `yaml:"ref_kind"` // "auto", "branch", "tag", "commit", "latest-tag"
	File     string        `yaml:"file"`
	Format   string        `yaml:"format"`
	Refresh  RefreshPolicy `yaml:"refresh"`
	Optional bool          `yaml:"optional"`
	Auth     AuthConfig    `yaml:"auth"`

	// Processors: "base64-decode", "base64url-decode", "trim"
	Processors []string `yaml:"processors"`
}

// EnvironmentConfig enables the environment variable fallback resolver.
type EnvironmentConfig struct {
	Enabled bool `yaml:"enabled"`
}

// CacheConfig enables the caching resolver in front of the pipeline.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"` // Zero disables caching
}

// ExpansionConfig controls ${variable} expansion of resolved values.
type ExpansionConfig struct {
	Disabled bool `yaml:"disabled"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and parses a configuration file, expanding environment
// variables in the cache dir, source locations, refs, files and credentials,
// and resolving secret file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.CacheDir = expandEnv(settings.CacheDir)
	for i := range settings.Sources {
		source := &settings.Sources[i]
		source.Location = expandEnv(source.Location)
		source.Ref = expandEnv(source.Ref)
		source.File = expandEnv(source.File)

		auth := &source.Auth
		auth.Token = resolveSecret(auth.Token)
		auth.Password = resolveSecret(auth.Password)
		auth.SSHKey = resolveSecret(auth.SSHKey)
		auth.SSHKeyPassword = resolveSecret(auth.SSHKeyPassword)
	}

	if validateErr := validate(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".gitprops.yaml",
		".gitprops.yml",
		"gitprops.yaml",
		"gitprops.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// PropertySources converts the configured sources into validated definitions.
func (s *Settings) PropertySources() ([]PropertySource, error) {
	sources := make([]PropertySource, 0, len(s.Sources))
	for i, cfg := range s.Sources {
		format, err := ParseFormat(cfg.Format)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}

		ref, err := NewRepositoryReference(cfg.Location, cfg.Ref, RefKind(cfg.RefKind), cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}

		processors, err := ParseProcessors(cfg.Processors)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}

		refresh := cfg.Refresh
		if refresh.Mode == "" {
			refresh.Mode = RefreshOnce
		}

		source := PropertySource{
			Name:       cfg.Name,
			Reference:  ref,
			File:       cfg.File,
			Format:     format,
			Refresh:    refresh,
			Optional:   cfg.Optional,
			Processors: processors,
		}
		if validateErr := source.Validate(); validateErr != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, validateErr)
		}
		sources = append(sources, source)
	}
	return sources, nil
}

// ResolvedCacheDir returns the clone cache directory, defaulting to the user
// cache directory. It returns MemoryCacheDir unchanged.
func (s *Settings) ResolvedCacheDir() (string, error) {
	if s.CacheDir != "" {
		return s.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user cache dir: %w", err)
	}
	return filepath.Join(base, "gitprops"), nil
}

// expandEnv replaces ${VAR} references with the environment value. Unset
// variables expand to an empty string.
func expandEnv(raw string) string {
	if !strings.Contains(raw, "${") {
		return raw
	}
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

// resolveSecret expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the secret from the file.
func resolveSecret(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := expandEnv(raw)

	// PEM keys contain newlines and are never paths.
	if strings.Contains(resolved, "\n") {
		return resolved
	}

	// If the resolved value is a path to an existing file, read the secret from it
	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read secret file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read secret from file %q", resolved)
		if strings.HasPrefix(string(data), "-----BEGIN") {
			return string(data) // PEM keys keep their layout
		}
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	if len(settings.Sources) == 0 {
		return errors.New("at least one source must be configured")
	}

	names := make(map[string]struct{}, len(settings.Sources))
	for i, s := range settings.Sources {
		if s.Name == "" {
			return fmt.Errorf("sources[%d].name is required", i)
		}
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("sources[%d].name %q is used more than once", i, s.Name)
		}
		names[s.Name] = struct{}{}

		if s.Location == "" {
			return fmt.Errorf("sources[%d].location is required", i)
		}
		if err := s.Auth.Validate(); err != nil {
			return fmt.Errorf(
				"sources[%d].auth: %w (set inline, via ${ENV_VAR}, or as file path)",
				i, err,
			)
		}
		if err := s.Refresh.Validate(); err != nil {
			return fmt.Errorf("sources[%d].refresh: %w", i, err)
		}
	}

	if settings.Cache.TTL < 0 {
		return errors.New("cache.ttl must not be negative")
	}

	return nil
}
