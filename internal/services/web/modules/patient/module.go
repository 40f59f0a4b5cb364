// Package patient serves the patient screens: dashboard, retinal images,
// uploads, reports and subscription credits.
package patient

import (
	"net/http"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// Module provides patient routes.
type Module struct {
	gateway PatientGateway
	base    modulehandler.Base
}

// New returns a patient module with zero-value dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithGateway returns a patient module with explicit gateway and handler dependencies.
func NewWithGateway(gateway PatientGateway, base modulehandler.Base) Module {
	return Module{gateway: gateway, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "patient" }

// RequiredRole restricts the module to patients.
func (Module) RequiredRole() role.Role { return role.Patient }

// Healthy reports whether the patient module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires patient route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.PatientPrefix, Handler: mux}, nil
}
