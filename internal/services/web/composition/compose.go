// Package composition builds the application handler from the module
// registry.
package composition

import (
	"net/http"

	webapp "github.com/louisbranch/retina.care/internal/services/web/app"
	"github.com/louisbranch/retina.care/internal/services/web/modules"
)

// ModuleRegistry builds web module sets from composition input.
type ModuleRegistry interface {
	Build(modules.BuildInput) modules.BuildOutput
}

// ComposeInput describes the contracts needed to compose the application mux.
type ComposeInput struct {
	Resolvers          modules.ModuleResolvers
	ModuleDependencies modules.Dependencies
	Gate               webapp.SessionGate

	Registry ModuleRegistry
}

// Composed is the application handler plus the ids of modules that came up
// without a backend.
type Composed struct {
	Handler  http.Handler
	Degraded []string
}

// ComposeAppHandler builds the web app handler with the registry's module
// sets.
func ComposeAppHandler(input ComposeInput) (Composed, error) {
	registry := input.Registry
	if registry == nil {
		registry = modules.NewRegistry()
	}

	built := registry.Build(modules.BuildInput{
		Dependencies: input.ModuleDependencies,
		Resolvers:    input.Resolvers,
	})

	handler, err := webapp.Compose(webapp.ComposeInput{
		Gate:             input.Gate,
		PublicModules:    built.Public,
		ProtectedModules: built.Protected,
		Policy:           input.Resolvers.Policy,
	})
	if err != nil {
		return Composed{}, err
	}
	return Composed{Handler: handler, Degraded: built.Degraded}, nil
}
