// Package messages serves patient-doctor conversations for both sides of a
// thread.
package messages

import (
	"net/http"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// Module provides messaging routes.
type Module struct {
	gateway MessagesGateway
	base    modulehandler.Base
}

// New returns a messages module with zero-value dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithGateway returns a messages module with explicit gateway and handler dependencies.
func NewWithGateway(gateway MessagesGateway, base modulehandler.Base) Module {
	return Module{gateway: gateway, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "messages" }

// Healthy reports whether the messages module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires messaging route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), m.base)
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.MessagesPrefix, Handler: mux}, nil
}
