// Package modules defines web module registry helpers.
package modules

import (
	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/modules/publicauth"
	"github.com/louisbranch/retina.care/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// ModuleResolvers carries request-scoped resolver functions derived from the
// session manager. The server builds these and passes them to the registry.
type ModuleResolvers struct {
	ResolveViewer   module.ResolveViewer
	ResolveSignedIn module.ResolveSignedIn
	ExpireSession   module.ExpireSession
	Policy          requestmeta.Policy
}

// Dependencies carries the shared collaborators required to compose the web
// module registry. A nil Backend leaves every data module in degraded mode.
type Dependencies struct {
	Backend *backendapi.Client

	// Sessions stores the browser session after sign in.
	Sessions publicauth.SessionWriter

	// LoginLimiter throttles account form posts; nil disables it.
	LoginLimiter *ratelimit.Limiter
}
