package commands

import (
	"context"
	"errors"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// Refresh is the interface for the refresh command.
type Refresh interface {
	Execute(ctx context.Context, settings *entities.Settings, opts RefreshOptions) ([]entities.Revision, error)
}

// RefreshOptions holds runtime options for the refresh command.
type RefreshOptions struct {
	SourceName string // Only refresh this source
}

// RefreshCommand fetches the git sources and reports the commit each is at.
type RefreshCommand struct {
	builder repositories.PipelineBuilder
}

// NewRefreshCommand creates a new RefreshCommand.
func NewRefreshCommand(builder repositories.PipelineBuilder) *RefreshCommand {
	return &RefreshCommand{builder: builder}
}

// Execute refreshes the sources concurrently. A failing source does not stop
// the others; all failures are returned joined. Cached answers of the pipeline
// are dropped once every refresh has finished.
func (it *RefreshCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts RefreshOptions,
) ([]entities.Revision, error) {
	pipeline, err := it.builder.Build(settings)
	if err != nil {
		return nil, err
	}

	sources, err := selectSources(pipeline, opts.SourceName)
	if err != nil {
		return nil, err
	}

	revisions := make([]*entities.Revision, len(sources))
	var (
		mu   sync.Mutex
		errs []error
	)

	var wg sync.WaitGroup
	for i, source := range sources {
		refresher, ok := source.(repositories.Refresher)
		if !ok {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			revision, refreshErr := refresher.Refresh(ctx)
			if refreshErr != nil {
				logger.Errorf("Failed to refresh source %q: %v", source.Name(), refreshErr)
				mu.Lock()
				errs = append(errs, refreshErr)
				mu.Unlock()
				return
			}
			revisions[i] = &revision
		}()
	}
	wg.Wait()
	pipeline.Invalidate()

	result := make([]entities.Revision, 0, len(revisions))
	for _, revision := range revisions {
		if revision != nil {
			result = append(result, *revision)
		}
	}
	return result, errors.Join(errs...)
}
