// Package doctor serves the doctor screens: the review queue, patient search,
// AI analysis reviews and medical reports.
package doctor

import (
	"net/http"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// Module provides doctor routes.
type Module struct {
	gateway DoctorGateway
	base    modulehandler.Base
}

// New returns a doctor module with zero-value dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithGateway returns a doctor module with explicit gateway and handler dependencies.
func NewWithGateway(gateway DoctorGateway, base modulehandler.Base) Module {
	return Module{gateway: gateway, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "doctor" }

// RequiredRole restricts the module to doctors.
func (Module) RequiredRole() role.Role { return role.Doctor }

// Healthy reports whether the doctor module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires doctor route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.DoctorPrefix, Handler: mux}, nil
}
