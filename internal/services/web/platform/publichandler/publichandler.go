// Package publichandler provides a shared base for unauthenticated web module handlers.
// It centralizes error handling, localization, and page rendering that would
// otherwise be duplicated across public modules.
package publichandler

import (
	"net/http"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/retina.care/internal/services/web/i18n"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/retina.care/internal/services/web/platform/flash"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/pagerender"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/retina.care/internal/services/web/platform/weberror"
)

// Base provides shared error handling and page rendering for public (unauthenticated)
// modules. Embed this in handler structs to get WritePublicPage, WriteNotFound,
// WriteError, and optional signed-in resolution for free.
type Base struct {
	deps                  module.Dependencies
	resolveViewerSignedIn module.ResolveSignedIn
}

// Option configures a Base.
type Option func(*Base)

// WithResolveViewer attaches a viewer resolver.
func WithResolveViewer(rv module.ResolveViewer) Option {
	return func(b *Base) { b.deps.ResolveViewer = rv }
}

// WithResolveViewerSignedIn attaches a direct signed-in resolver.
func WithResolveViewerSignedIn(resolver module.ResolveSignedIn) Option {
	return func(b *Base) { b.resolveViewerSignedIn = resolver }
}

// WithPolicy sets the proxy trust policy used for flash cookies.
func WithPolicy(policy requestmeta.Policy) Option {
	return func(b *Base) { b.deps.Policy = policy }
}

// NewBase builds a public handler base with the given options.
func NewBase(opts ...Option) Base {
	var b Base
	for _, o := range opts {
		o(&b)
	}
	return b
}

// ResolveRequestViewer resolves viewer state for the request.
// Returns a zero Viewer when no resolver is configured.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	return b.deps.ResolveRequestViewer(r)
}

// RequestPolicy returns the proxy trust policy.
func (b Base) RequestPolicy() requestmeta.Policy {
	return b.deps.Policy
}

// IsViewerSignedIn reports whether the current request is authenticated.
func (b Base) IsViewerSignedIn(r *http.Request) bool {
	if b.resolveViewerSignedIn != nil {
		return b.resolveViewerSignedIn(r)
	}
	return false
}

// PageLocalizer returns the localizer resolved for the request.
func (Base) PageLocalizer(r *http.Request) webi18n.Localizer {
	return webi18n.FromContext(httpx.RequestContext(r))
}

// WritePublicPage renders a full public page using the signed-out layout.
func (b Base) WritePublicPage(w http.ResponseWriter, r *http.Request, title string, metaDesc string, statusCode int, body templ.Component) {
	err := pagerender.WritePublicPage(w, r, b.deps, pagerender.PublicPage{
		Title:           title,
		MetaDescription: metaDesc,
		StatusCode:      statusCode,
		Body:            body,
	})
	if err != nil {
		b.WriteError(w, r, err)
	}
}

// Flash queues notice for the next rendered page.
func (b Base) Flash(w http.ResponseWriter, r *http.Request, notice flashnotice.Notice) {
	flashnotice.Write(w, r, notice, b.deps.Policy)
}

// WriteNotFound renders a localized 404 error page using the public layout.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WritePublicError(w, r, http.StatusNotFound, b.deps)
}

// WriteError renders a user-safe error response: app error pages for not-found
// and server errors, plain-text status messages for everything else.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if weberror.ShouldRenderAppError(statusCode) {
		weberror.WritePublicError(w, r, statusCode, b.deps)
		return
	}
	http.Error(w, weberror.PublicMessage(b.PageLocalizer(r), err), statusCode)
}
