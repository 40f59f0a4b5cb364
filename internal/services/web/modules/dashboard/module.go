// Package dashboard owns /app/ and sends each viewer to their role home.
package dashboard

import (
	"net/http"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

// Module provides the app entrypoint.
type Module struct {
	base modulehandler.Base
}

// New returns a dashboard module.
func New(base modulehandler.Base) Module {
	return Module{base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Mount wires /app/. Unknown app paths fall through to the app 404 page.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	h := handlers{Base: m.base}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppRoot+"{$}", h.handleIndex)
	mux.HandleFunc(routepath.AppPrefix, h.WriteNotFound)
	return module.Mount{Prefix: routepath.AppPrefix, Handler: mux}, nil
}

type handlers struct {
	modulehandler.Base
}

// handleIndex redirects by role. A session without a known role is expired
// and sent to login.
func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	current := h.ResolveRequestViewer(r).Role
	if !current.Valid() {
		if expire := h.Dependencies().ExpireSession; expire != nil {
			expire(w, r)
		}
		httpx.WriteRedirect(w, r, routepath.Login)
		return
	}
	httpx.WriteRedirect(w, r, current.DashboardPath())
}
