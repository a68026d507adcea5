//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"sync/atomic"

	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// SpyInvalidator implements repositories.Invalidator and counts the calls.
type SpyInvalidator struct {
	calls atomic.Int32
}

var _ repositories.Invalidator = (*SpyInvalidator)(nil)

func (s *SpyInvalidator) Invalidate() { s.calls.Add(1) }

// InvalidateCallCount returns how often the cache was dropped.
func (s *SpyInvalidator) InvalidateCallCount() int { return int(s.calls.Load()) }
