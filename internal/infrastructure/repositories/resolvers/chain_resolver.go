package resolvers

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// ChainResolver asks its resolvers in order. The first resolver that finds
// the key wins; a resolver that does not know the key defers to the next one;
// an error stops the chain.
type ChainResolver struct {
	name      string
	resolvers []repositories.Resolver
}

var _ repositories.Resolver = (*ChainResolver)(nil)

// NewChainResolver creates a ChainResolver.
func NewChainResolver(name string, resolvers ...repositories.Resolver) *ChainResolver {
	return &ChainResolver{name: name, resolvers: resolvers}
}

func (c *ChainResolver) Name() string { return c.name }

func (c *ChainResolver) Resolve(ctx context.Context, key string) (string, bool, error) {
	for _, resolver := range c.resolvers {
		value, found, err := resolver.Resolve(ctx, key)
		if err != nil {
			return "", false, err
		}
		if found {
			logger.Debugf("Resolved %q from %q", key, resolver.Name())
			return value, true, nil
		}
	}
	return "", false, nil
}
