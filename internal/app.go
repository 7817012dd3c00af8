package internal

import (
	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// AppInternal aggregates the application's controllers for the CLI layer.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the application context.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns every registered controller.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
