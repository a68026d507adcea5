package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewResolveController); err != nil {
		return err
	}
	if err := container.Provide(NewListController); err != nil {
		return err
	}
	if err := container.Provide(NewRefreshController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	resolveController *ResolveController,
	listController *ListController,
	refreshController *RefreshController,
) *[]entities.Controller {
	return &[]entities.Controller{
		resolveController,
		listController,
		refreshController,
	}
}
