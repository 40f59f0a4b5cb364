package modules

import (
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/modules/admin"
	"github.com/louisbranch/retina.care/internal/services/web/modules/clinic"
	"github.com/louisbranch/retina.care/internal/services/web/modules/dashboard"
	"github.com/louisbranch/retina.care/internal/services/web/modules/doctor"
	"github.com/louisbranch/retina.care/internal/services/web/modules/messages"
	"github.com/louisbranch/retina.care/internal/services/web/modules/notifications"
	"github.com/louisbranch/retina.care/internal/services/web/modules/patient"
	"github.com/louisbranch/retina.care/internal/services/web/modules/profile"
	"github.com/louisbranch/retina.care/internal/services/web/modules/public"
	"github.com/louisbranch/retina.care/internal/services/web/modules/publicauth"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/publichandler"
)

// BuildInput carries everything the registry needs to build module sets.
type BuildInput struct {
	Dependencies Dependencies
	Resolvers    ModuleResolvers
}

// BuildOutput is the composed module sets plus the ids of modules running
// without a backend.
type BuildOutput struct {
	Public    []Module
	Protected []Module
	Degraded  []string
}

// Registry builds the web module sets.
type Registry struct{}

// NewRegistry returns the default module registry.
func NewRegistry() Registry {
	return Registry{}
}

// Build composes public and protected modules from input.
func (Registry) Build(input BuildInput) BuildOutput {
	out := BuildOutput{
		Public:    DefaultPublicModules(input.Dependencies, input.Resolvers),
		Protected: DefaultProtectedModules(input.Dependencies, input.Resolvers),
	}
	for _, group := range [][]Module{out.Public, out.Protected} {
		for _, m := range group {
			if reporter, ok := m.(module.HealthReporter); ok && !reporter.Healthy() {
				out.Degraded = append(out.Degraded, m.ID())
			}
		}
	}
	return out
}

// DefaultPublicModules returns the signed-out modules.
func DefaultPublicModules(deps Dependencies, resolvers ModuleResolvers) []Module {
	base := publichandler.NewBase(
		publichandler.WithResolveViewer(resolvers.ResolveViewer),
		publichandler.WithResolveViewerSignedIn(resolvers.ResolveSignedIn),
		publichandler.WithPolicy(resolvers.Policy),
	)
	return []Module{
		publicauth.New(publicauth.Config{
			Gateway:  publicauth.NewAPIGateway(deps.Backend),
			Sessions: deps.Sessions,
			Limiter:  deps.LoginLimiter,
			Base:     base,
		}),
		public.New(base),
	}
}

// DefaultProtectedModules returns the signed-in modules mounted under /app/.
func DefaultProtectedModules(deps Dependencies, resolvers ModuleResolvers) []Module {
	base := modulehandler.NewBase(module.Dependencies{
		ResolveViewer: resolvers.ResolveViewer,
		ExpireSession: resolvers.ExpireSession,
		Policy:        resolvers.Policy,
	})
	return []Module{
		dashboard.New(base),
		patient.NewWithGateway(patient.NewAPIGateway(deps.Backend), base),
		doctor.NewWithGateway(doctor.NewAPIGateway(deps.Backend), base),
		clinic.NewWithGateway(clinic.NewAPIGateway(deps.Backend), base),
		admin.NewWithGateway(admin.NewAPIGateway(deps.Backend), base),
		messages.NewWithGateway(messages.NewAPIGateway(deps.Backend), base),
		notifications.NewWithGateway(notifications.NewAPIGateway(deps.Backend), base),
		profile.NewWithGateway(profile.NewAPIGateway(deps.Backend), base),
	}
}
