//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// firstFound is a minimal chain used as the root of stub pipelines.
type firstFound struct {
	resolvers []repositories.Resolver
}

func (f *firstFound) Name() string { return "stub-pipeline" }

func (f *firstFound) Resolve(ctx context.Context, key string) (string, bool, error) {
	for _, resolver := range f.resolvers {
		value, found, err := resolver.Resolve(ctx, key)
		if err != nil || found {
			return value, found, err
		}
	}
	return "", false, nil
}
