//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitprops/internal/domain/commands"
	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// StubResolveCommand is a stub implementation of commands.Resolve.
type StubResolveCommand struct {
	ExecuteCallCount int
	ExecuteResult    *commands.ResolveResult
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.ResolveOptions
}

var _ commands.Resolve = (*StubResolveCommand)(nil)

func (s *StubResolveCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ResolveOptions,
) (*commands.ResolveResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	if s.ExecuteResult == nil && s.ExecuteErr == nil {
		return &commands.ResolveResult{}, nil
	}
	return s.ExecuteResult, s.ExecuteErr
}
