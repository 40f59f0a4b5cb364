// Package public serves the landing page and health probe.
package public

import (
	"net/http"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/publichandler"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// Module provides the site root.
type Module struct {
	base publichandler.Base
}

// New returns a public module.
func New(base publichandler.Base) Module {
	return Module{base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "public" }

// Mount wires the root routes. The root prefix also catches unknown paths.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.base))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
