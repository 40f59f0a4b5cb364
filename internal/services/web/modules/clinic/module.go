// Package clinic serves the clinic manager screens: clinic overview, assigned
// patients, clinic images, bulk uploads and analytics.
package clinic

import (
	"net/http"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// Module provides clinic routes.
type Module struct {
	gateway ClinicGateway
	base    modulehandler.Base
}

// New returns a clinic module with zero-value dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithGateway returns a clinic module with explicit gateway and handler dependencies.
func NewWithGateway(gateway ClinicGateway, base modulehandler.Base) Module {
	return Module{gateway: gateway, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "clinic" }

// RequiredRole restricts the module to clinic managers.
func (Module) RequiredRole() role.Role { return role.ClinicManager }

// Healthy reports whether the clinic module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires clinic route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.ClinicPrefix, Handler: mux}, nil
}
