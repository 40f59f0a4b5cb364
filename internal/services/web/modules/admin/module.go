// Package admin serves the administrator screens: platform statistics, the
// clinic verification queue and analytics reports.
package admin

import (
	"net/http"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// Module provides admin routes.
type Module struct {
	gateway AdminGateway
	base    modulehandler.Base
}

// New returns an admin module with zero-value dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithGateway returns an admin module with explicit gateway and handler dependencies.
func NewWithGateway(gateway AdminGateway, base modulehandler.Base) Module {
	return Module{gateway: gateway, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "admin" }

// RequiredRole restricts the module to administrators.
func (Module) RequiredRole() role.Role { return role.Admin }

// Healthy reports whether the admin module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires admin route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AdminPrefix, Handler: mux}, nil
}
