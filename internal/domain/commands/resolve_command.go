package commands

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

const defaultConcurrency = 4

// Resolve is the interface for the resolve command.
type Resolve interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ResolveOptions) (*ResolveResult, error)
}

// ResolveOptions holds runtime options for the resolve command.
type ResolveOptions struct {
	Keys        []string
	Strict      bool // Fail with entities.ErrKeyNotFound when a key has no value
	Concurrency int
}

// ResolveResult holds the resolved properties, in the order the keys were
// requested, and the keys no source knows.
type ResolveResult struct {
	Properties []entities.Property
	Unresolved []string
}

// ResolveCommand resolves keys through the configured pipeline.
type ResolveCommand struct {
	builder repositories.PipelineBuilder
}

// NewResolveCommand creates a new ResolveCommand.
func NewResolveCommand(builder repositories.PipelineBuilder) *ResolveCommand {
	return &ResolveCommand{builder: builder}
}

// Execute builds the pipeline and resolves every requested key.
func (it *ResolveCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ResolveOptions,
) (*ResolveResult, error) {
	pipeline, err := it.builder.Build(settings)
	if err != nil {
		return nil, err
	}
	return resolveKeys(ctx, pipeline.Root, opts)
}

// resolveKeys resolves keys concurrently. The first source error cancels the
// remaining lookups.
func resolveKeys(ctx context.Context, resolver repositories.Resolver, opts ResolveOptions) (*ResolveResult, error) {
	type lookup struct {
		value string
		found bool
	}
	lookups := make([]lookup, len(opts.Keys))

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for i, key := range opts.Keys {
		group.Go(func() error {
			value, found, err := resolver.Resolve(groupCtx, key)
			if err != nil {
				return err
			}
			lookups[i] = lookup{value: value, found: found}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &ResolveResult{}
	for i, key := range opts.Keys {
		if !lookups[i].found {
			result.Unresolved = append(result.Unresolved, key)
			continue
		}
		result.Properties = append(result.Properties, entities.Property{
			Key:   key,
			Value: lookups[i].value,
		})
	}

	if opts.Strict && len(result.Unresolved) > 0 {
		return result, &entities.UnresolvedError{Keys: result.Unresolved}
	}
	return result, nil
}
