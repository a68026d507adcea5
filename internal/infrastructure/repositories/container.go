package repositories

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/gitprops/internal/domain/repositories"
	"github.com/rios0rios0/gitprops/internal/infrastructure/repositories/formats"
	gitRepo "github.com/rios0rios0/gitprops/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/gitprops/internal/infrastructure/repositories/resolvers"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Metrics live on a private registry, exported on demand by the controllers
	if err := container.Provide(prometheus.NewRegistry); err != nil {
		return err
	}
	if err := container.Provide(func(reg *prometheus.Registry) prometheus.Registerer {
		return reg
	}); err != nil {
		return err
	}
	if err := container.Provide(func(reg *prometheus.Registry) prometheus.Gatherer {
		return reg
	}); err != nil {
		return err
	}
	if err := container.Provide(resolvers.NewMetrics); err != nil {
		return err
	}

	// Register format registry with all parsers
	if err := container.Provide(formats.NewDefaultRegistry); err != nil {
		return err
	}

	if err := container.Provide(func() gitRepo.AuthManager {
		return gitRepo.NewDefaultAuthManager()
	}); err != nil {
		return err
	}

	if err := container.Provide(NewPipelineBuilder); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PipelineBuilder) domainRepos.PipelineBuilder {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
