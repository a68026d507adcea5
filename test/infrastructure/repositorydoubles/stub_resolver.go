//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// StubResolver implements repositories.Resolver with a fixed set of values.
// It also satisfies PropertyLister and Refresher so commands can be tested
// without a repository.
type StubResolver struct {
	ResolverName string
	Values       map[string]string

	// ResolveErr is returned for every key; KeyErrs for specific keys.
	ResolveErr error
	KeyErrs    map[string]error

	// --- Properties ---
	PropertiesErr error

	// --- Refresh ---
	Revision   entities.Revision
	RefreshErr error

	mu            sync.Mutex
	resolvedKeys  []string
	refreshCalls  int
	propertyCalls int
}

var (
	_ repositories.Resolver       = (*StubResolver)(nil)
	_ repositories.PropertyLister = (*StubResolver)(nil)
	_ repositories.Refresher      = (*StubResolver)(nil)
)

func (s *StubResolver) Name() string { return s.ResolverName }

func (s *StubResolver) Resolve(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	s.resolvedKeys = append(s.resolvedKeys, key)
	s.mu.Unlock()

	if err, ok := s.KeyErrs[key]; ok {
		return "", false, err
	}
	if s.ResolveErr != nil {
		return "", false, s.ResolveErr
	}
	value, found := s.Values[key]
	return value, found, nil
}

func (s *StubResolver) Properties(_ context.Context) ([]entities.Property, error) {
	s.mu.Lock()
	s.propertyCalls++
	s.mu.Unlock()

	if s.PropertiesErr != nil {
		return nil, s.PropertiesErr
	}
	result := make([]entities.Property, 0, len(s.Values))
	for _, key := range sortedKeys(s.Values) {
		result = append(result, entities.Property{
			Key:    key,
			Value:  s.Values[key],
			Source: s.ResolverName,
			Commit: s.Revision.Commit,
		})
	}
	return result, nil
}

func (s *StubResolver) Refresh(_ context.Context) (entities.Revision, error) {
	s.mu.Lock()
	s.refreshCalls++
	s.mu.Unlock()

	if s.RefreshErr != nil {
		return entities.Revision{}, s.RefreshErr
	}
	revision := s.Revision
	if revision.Source == "" {
		revision.Source = s.ResolverName
	}
	return revision, nil
}

// ResolvedKeys returns the keys asked so far, in call order.
func (s *StubResolver) ResolvedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.resolvedKeys...)
}

// ResolveCallCount returns how many lookups reached the stub.
func (s *StubResolver) ResolveCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resolvedKeys)
}

// RefreshCallCount returns how many refreshes reached the stub.
func (s *StubResolver) RefreshCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

// PropertiesCallCount returns how many enumerations reached the stub.
func (s *StubResolver) PropertiesCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.propertyCalls
}
