package internal

import (
	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// AppInternal holds the controllers exposed as subcommands.
type AppInternal struct {
	controllers []entities.Controller
}

// NewAppInternal creates the application from the injected controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: *controllers}
}

// GetControllers returns the controllers in registration order.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}
