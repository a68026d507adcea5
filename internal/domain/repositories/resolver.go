package repositories

import (
	"context"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// Resolver is the key/value lookup contract of the resolution pipeline.
// A missing key is reported as found == false with a nil error; errors are
// reserved for sources that cannot answer at all.
type Resolver interface {
	// Name identifies the resolver in logs, errors and metrics.
	Name() string

	// Resolve returns the value of key.
	Resolve(ctx context.Context, key string) (value string, found bool, err error)
}

// PropertyLister is implemented by resolvers that can enumerate their content.
type PropertyLister interface {
	Properties(ctx context.Context) ([]entities.Property, error)
}

// Refresher is implemented by resolvers backed by a repository that can be
// fetched again.
type Refresher interface {
	Refresh(ctx context.Context) (entities.Revision, error)
}

// Invalidator is implemented by resolvers holding cached answers.
type Invalidator interface {
	Invalidate()
}

// Pipeline is a built resolution pipeline: Root answers lookups, Sources are the
// individual git property sources in priority order. Caches hold the cached
// answers of Root, dropped by Invalidate once the sources have moved.
type Pipeline struct {
	Root    Resolver
	Sources []Resolver
	Caches  []Invalidator
}

// Invalidate drops every cached answer of the pipeline.
func (p *Pipeline) Invalidate() {
	for _, cache := range p.Caches {
		cache.Invalidate()
	}
}

// Source returns the source with the given name.
func (p *Pipeline) Source(name string) (Resolver, bool) {
	for _, s := range p.Sources {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// PipelineBuilder builds a Pipeline out of settings.
type PipelineBuilder interface {
	Build(settings *entities.Settings) (*Pipeline, error)
}
