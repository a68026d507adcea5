package git

import (
	"fmt"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// ClientFactory creates go-git clients sharing one clone cache.
type ClientFactory struct {
	cache *CloneCache
	auth  AuthManager
}

var _ repositories.RepositoryClientFactory = (*ClientFactory)(nil)

// NewClientFactory creates a ClientFactory.
func NewClientFactory(cache *CloneCache, auth AuthManager) *ClientFactory {
	return &ClientFactory{cache: cache, auth: auth}
}

func (f *ClientFactory) NewClient(ref entities.RepositoryReference) (repositories.RepositoryClient, error) {
	method, err := f.auth.PrepareAuth(ref.Auth())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrAuthenticationFailed, err)
	}
	return NewClient(ref, f.cache, method), nil
}
