package resolvers

import (
	"context"
	"time"

	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

// InstrumentedResolver records lookup outcomes and durations of the
// decorated resolver.
type InstrumentedResolver struct {
	decorated repositories.Resolver
	metrics   *Metrics
}

var _ repositories.Resolver = (*InstrumentedResolver)(nil)

// NewInstrumentedResolver creates an InstrumentedResolver.
func NewInstrumentedResolver(decorated repositories.Resolver, metrics *Metrics) *InstrumentedResolver {
	return &InstrumentedResolver{decorated: decorated, metrics: metrics}
}

func (i *InstrumentedResolver) Name() string { return i.decorated.Name() }

func (i *InstrumentedResolver) Resolve(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, found, err := i.decorated.Resolve(ctx, key)
	i.metrics.Duration.WithLabelValues(i.Name()).Observe(time.Since(start).Seconds())

	outcome := OutcomeNotFound
	switch {
	case err != nil:
		outcome = OutcomeError
	case found:
		outcome = OutcomeFound
	}
	i.metrics.Lookups.WithLabelValues(i.Name(), outcome).Inc()

	return value, found, err
}
