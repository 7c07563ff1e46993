package internal

import (
	"github.com/rios0rios0/unigit/internal/domain/entities"
)

// AppInternal holds the wired application, exposing the controllers
// the CLI binds to Cobra commands.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates a new AppInternal.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
