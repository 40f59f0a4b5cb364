// Package publicauth serves the signed-out account pages: sign in,
// registration, password recovery and sign out.
package publicauth

import (
	"net/http"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/publichandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// Module provides the public account routes.
type Module struct {
	gateway  AuthGateway
	sessions SessionWriter
	limiter  *ratelimit.Limiter
	base     publichandler.Base
}

// Config carries the module collaborators. A nil Limiter disables rate
// limiting.
type Config struct {
	Gateway  AuthGateway
	Sessions SessionWriter
	Limiter  *ratelimit.Limiter
	Base     publichandler.Base
}

// New returns a publicauth module.
func New(cfg Config) Module {
	return Module{gateway: cfg.Gateway, sessions: cfg.Sessions, limiter: cfg.Limiter, base: cfg.Base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "publicauth" }

// Healthy reports whether the module has a backend gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires the account routes as exact top-level paths.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := newHandlers(newService(m.gateway), m.sessions, m.base)
	registerRoutes(mux, h, m.limiter)
	return module.Mount{
		Paths: []string{
			routepath.Login,
			routepath.Register,
			routepath.ForgotPassword,
			routepath.ResetPassword,
			routepath.Logout,
		},
		Handler: mux,
	}, nil
}
