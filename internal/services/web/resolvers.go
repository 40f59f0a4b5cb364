package web

import (
	"log"
	"net/http"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/modules"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/retina.care/internal/services/web/platform/session"
)

// newResolvers derives the module resolvers from the browser session.
func newResolvers(sessions *session.Manager, policy requestmeta.Policy) modules.ModuleResolvers {
	return modules.ModuleResolvers{
		ResolveViewer: func(r *http.Request) module.Viewer {
			return resolveViewer(sessions, r)
		},
		ResolveSignedIn: sessions.Authenticated,
		ExpireSession: func(w http.ResponseWriter, r *http.Request) {
			if err := sessions.Clear(w, r); err != nil {
				log.Printf("expire web session: %v", err)
			}
		},
		Policy: policy,
	}
}

func resolveViewer(sessions *session.Manager, r *http.Request) module.Viewer {
	if r == nil || !sessions.Authenticated(r) {
		return module.Viewer{}
	}
	viewer := module.Viewer{SignedIn: true, Role: sessions.Role(r)}
	if user, ok := sessions.User(r); ok {
		viewer.Email = user.Email
		viewer.AccountID = user.AccountID
		viewer.ClinicID = user.ClinicID
	}
	return viewer
}
