package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// List is the interface for the list command.
type List interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ListOptions) ([]entities.Property, error)
}

// ListOptions holds runtime options for the list command.
type ListOptions struct {
	SourceName string // Only list this source
}

// ListCommand enumerates the properties of the git sources.
type ListCommand struct {
	builder repositories.PipelineBuilder
}

// NewListCommand creates a new ListCommand.
func NewListCommand(builder repositories.PipelineBuilder) *ListCommand {
	return &ListCommand{builder: builder}
}

// Execute lists every property, source by source in priority order.
func (it *ListCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ListOptions,
) ([]entities.Property, error) {
	pipeline, err := it.builder.Build(settings)
	if err != nil {
		return nil, err
	}

	sources, err := selectSources(pipeline, opts.SourceName)
	if err != nil {
		return nil, err
	}

	var result []entities.Property
	for _, source := range sources {
		lister, ok := source.(repositories.PropertyLister)
		if !ok {
			continue
		}
		properties, listErr := lister.Properties(ctx)
		if listErr != nil {
			return nil, listErr
		}
		result = append(result, properties...)
	}
	return result, nil
}

func selectSources(pipeline *repositories.Pipeline, name string) ([]repositories.Resolver, error) {
	if name == "" {
		return pipeline.Sources, nil
	}
	source, ok := pipeline.Source(name)
	if !ok {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	return []repositories.Resolver{source}, nil
}
