package main

import (
	"github.com/rios0rios0/covgen/internal"
	"github.com/rios0rios0/covgen/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func injectAppContext() *internal.AppInternal {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectGenerateController() *controllers.GenerateController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var generateController *controllers.GenerateController
	if err := container.Invoke(func(gc *controllers.GenerateController) {
		generateController = gc
	}); err != nil {
		panic(err)
	}

	return generateController
}
