//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// SpyPipelineBuilder implements repositories.PipelineBuilder by returning a
// preset pipeline and recording the settings it was given.
type SpyPipelineBuilder struct {
	Pipeline *repositories.Pipeline
	BuildErr error

	BuildCallCount int
	LastSettings   *entities.Settings
}

var _ repositories.PipelineBuilder = (*SpyPipelineBuilder)(nil)

// NewSpyPipelineBuilder creates a builder whose pipeline chains the given
// sources in order; the root resolves through them, first found wins.
func NewSpyPipelineBuilder(sources ...*StubResolver) *SpyPipelineBuilder {
	resolvers := make([]repositories.Resolver, 0, len(sources))
	for _, source := range sources {
		resolvers = append(resolvers, source)
	}
	return &SpyPipelineBuilder{
		Pipeline: &repositories.Pipeline{
			Root:    &firstFound{resolvers: resolvers},
			Sources: resolvers,
		},
	}
}

func (b *SpyPipelineBuilder) Build(settings *entities.Settings) (*repositories.Pipeline, error) {
	b.BuildCallCount++
	b.LastSettings = settings
	if b.BuildErr != nil {
		return nil, b.BuildErr
	}
	return b.Pipeline, nil
}
