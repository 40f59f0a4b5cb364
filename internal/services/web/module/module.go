// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
)

// Viewer contains user-facing chrome data for authenticated app pages.
type Viewer struct {
	SignedIn  bool
	Email     string
	Role      role.Role
	AccountID apiclient.ID
	ClinicID  apiclient.ID
}

// ResolveViewer resolves app chrome viewer state for a request.
type ResolveViewer func(*http.Request) Viewer

// ResolveSignedIn reports whether a request carries a signed-in session.
type ResolveSignedIn func(*http.Request) bool

// ExpireSession drops the browser session after the backend rejected its
// token.
type ExpireSession func(http.ResponseWriter, *http.Request)

// Dependencies carries the request-scoped resolvers shared by page rendering
// and error handling.
type Dependencies struct {
	ResolveViewer ResolveViewer
	ExpireSession ExpireSession
	Policy        requestmeta.Policy
}

// ResolveRequestViewer resolves viewer state, or a zero Viewer.
func (d Dependencies) ResolveRequestViewer(r *http.Request) Viewer {
	if d.ResolveViewer == nil || r == nil {
		return Viewer{}
	}
	return d.ResolveViewer(r)
}

// RequestPolicy returns the proxy trust policy for cookies and origins.
func (d Dependencies) RequestPolicy() requestmeta.Policy {
	return d.Policy
}

// Mount describes a module route mount. Paths lists exact top-level routes
// served by Handler in addition to, or instead of, Prefix.
type Mount struct {
	Prefix  string
	Paths   []string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// RoleGated is implemented by protected modules that serve a single role.
type RoleGated interface {
	RequiredRole() role.Role
}

// HealthReporter is an optional interface for modules that can report their
// operational availability. Modules with gateway dependencies implement this
// so the registry can derive service health without centralizing client knowledge.
type HealthReporter interface {
	Healthy() bool
}
