package resolvers

import (
	"context"
	"os"
	"strings"

	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

const environmentResolverName = "environment"

// EnvironmentResolver resolves keys from environment variables. The key is
// tried as is, then in UPPER_SNAKE form ("app.db-url" -> "APP_DB_URL").
type EnvironmentResolver struct {
	lookup func(string) (string, bool)
}

var _ repositories.Resolver = (*EnvironmentResolver)(nil)

// NewEnvironmentResolver creates an EnvironmentResolver over os.LookupEnv.
func NewEnvironmentResolver() *EnvironmentResolver {
	return &EnvironmentResolver{lookup: os.LookupEnv}
}

func (e *EnvironmentResolver) Name() string { return environmentResolverName }

func (e *EnvironmentResolver) Resolve(_ context.Context, key string) (string, bool, error) {
	if value, ok := e.lookup(key); ok {
		return value, true, nil
	}
	if snake := toEnvName(key); snake != key {
		if value, ok := e.lookup(snake); ok {
			return value, true, nil
		}
	}
	return "", false, nil
}

func toEnvName(key string) string {
	return strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}
