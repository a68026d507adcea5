package repositories

import (
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitprops/internal/domain/repositories"
	"github.com/rios0rios0/gitprops/internal/infrastructure/repositories/formats"
	gitRepo "github.com/rios0rios0/gitprops/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/gitprops/internal/infrastructure/repositories/resolvers"
)

const pipelineName = "pipeline"

// PipelineBuilder wires git property sources, the environment fallback and
// the processing, caching, expansion and metrics decorators out of settings.
type PipelineBuilder struct {
	formats *formats.Registry
	auth    gitRepo.AuthManager
	metrics *resolvers.Metrics
}

var _ domainRepos.PipelineBuilder = (*PipelineBuilder)(nil)

// NewPipelineBuilder creates a PipelineBuilder.
func NewPipelineBuilder(
	formatRegistry *formats.Registry,
	auth gitRepo.AuthManager,
	metrics *resolvers.Metrics,
) *PipelineBuilder {
	return &PipelineBuilder{
		formats: formatRegistry,
		auth:    auth,
		metrics: metrics,
	}
}

// Build creates the pipeline. All git sources share one clone cache.
func (b *PipelineBuilder) Build(settings *entities.Settings) (*domainRepos.Pipeline, error) {
	definitions, err := settings.PropertySources()
	if err != nil {
		return nil, err
	}

	cacheDir, err := settings.ResolvedCacheDir()
	if err != nil {
		return nil, err
	}
	cache, err := gitRepo.NewCloneCache(cacheDir)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Clone cache: %q", cacheDir)

	factory := gitRepo.NewClientFactory(cache, b.auth)

	sources := make([]domainRepos.Resolver, 0, len(definitions))
	chain := make([]domainRepos.Resolver, 0, len(definitions)+1)
	for _, definition := range definitions {
		source, sourceErr := b.buildSource(factory, definition)
		if sourceErr != nil {
			return nil, sourceErr
		}
		sources = append(sources, source)
		chain = append(chain, b.instrument(source))
	}

	if settings.Environment.Enabled {
		chain = append(chain, b.instrument(resolvers.NewEnvironmentResolver()))
	}

	pipeline := &domainRepos.Pipeline{Sources: sources}
	var root domainRepos.Resolver = resolvers.NewChainResolver(pipelineName, chain...)
	if settings.Cache.TTL > 0 {
		caching := resolvers.NewCachingResolver(root, settings.Cache.TTL)
		pipeline.Caches = append(pipeline.Caches, caching)
		root = caching
	}
	if !settings.Expansion.Disabled {
		root = resolvers.NewExpandingResolver(root)
	}
	pipeline.Root = root

	return pipeline, nil
}

// buildSource creates the git source of definition, behind its processors
// when it has any.
func (b *PipelineBuilder) buildSource(
	factory *gitRepo.ClientFactory,
	definition entities.PropertySource,
) (domainRepos.Resolver, error) {
	client, err := factory.NewClient(definition.Reference)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", definition.Name, err)
	}

	var parser domainRepos.FormatParser
	if definition.Format.IsStructured() {
		parser, err = b.formats.Get(definition.Format)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", definition.Name, err)
		}
	}

	source, err := gitRepo.NewPropertySource(definition, client, parser)
	if err != nil {
		return nil, err
	}
	if len(definition.Processors) == 0 {
		return source, nil
	}
	processing, err := resolvers.NewProcessingResolver(source, definition.Processors)
	if err != nil {
		return nil, err
	}
	return processing, nil
}

func (b *PipelineBuilder) instrument(resolver domainRepos.Resolver) domainRepos.Resolver {
	if b.metrics == nil {
		return resolver
	}
	return resolvers.NewInstrumentedResolver(resolver, b.metrics)
}
