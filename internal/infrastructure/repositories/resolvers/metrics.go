package resolvers

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "gitprops"

// Outcome labels of the lookups counter.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors shared by instrumented resolvers.
type Metrics struct {
	Lookups  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on registerer.
// Collectors already registered by an earlier call are reused.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "lookups_total",
		Help:      "Property lookups by source and outcome.",
	}, []string{"source", "outcome"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "lookup_duration_seconds",
		Help:      "Duration of property lookups by source.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})

	var err error
	if lookups, err = register(registerer, lookups); err != nil {
		return nil, err
	}
	if duration, err = register(registerer, duration); err != nil {
		return nil, err
	}
	return &Metrics{Lookups: lookups, Duration: duration}, nil
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) (T, error) {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return collector, fmt.Errorf("failed to register metrics: %w", err)
	}
	return collector, nil
}
