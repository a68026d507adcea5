//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitprops/internal/domain/commands"
	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// StubRefreshCommand is a stub implementation of commands.Refresh.
type StubRefreshCommand struct {
	ExecuteCallCount int
	ExecuteResult    []entities.Revision
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.RefreshOptions
}

var _ commands.Refresh = (*StubRefreshCommand)(nil)

func (s *StubRefreshCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.RefreshOptions,
) ([]entities.Revision, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteResult, s.ExecuteErr
}
