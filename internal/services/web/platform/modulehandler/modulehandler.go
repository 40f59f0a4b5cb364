// Package modulehandler provides a composable base for protected web module handlers.
//
// Protected modules (those mounted under /app/) share common handler infrastructure
// for viewer resolution, localization, page rendering, and error handling. This package
// extracts that shared scaffold so modules embed it rather than duplicating it.
package modulehandler

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	webi18n "github.com/louisbranch/retina.care/internal/services/web/i18n"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/retina.care/internal/services/web/platform/flash"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/pagerender"
	"github.com/louisbranch/retina.care/internal/services/web/platform/weberror"
)

// Base carries the shared request-scoped resolvers used by protected module handlers.
// Embed this in module handler structs to get standard viewer resolution, localization,
// page rendering, and error writing without duplicating boilerplate.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies.
func NewBase(deps module.Dependencies) Base {
	return Base{deps: deps}
}

// NewTestBase builds a handler base with no-op resolvers suitable for tests
// that do not exercise viewer state.
func NewTestBase() Base {
	return Base{}
}

// Dependencies returns the resolvers the base was built with.
func (b Base) Dependencies() module.Dependencies {
	return b.deps
}

// ResolveRequestViewer resolves app chrome viewer state for a request.
func (b Base) ResolveRequestViewer(r *http.Request) module.Viewer {
	return b.deps.ResolveRequestViewer(r)
}

// PageLocalizer returns the localizer resolved for the request.
func (b Base) PageLocalizer(r *http.Request) webi18n.Localizer {
	return webi18n.FromContext(httpx.RequestContext(r))
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	weberror.WriteModuleError(w, r, err, b.deps)
}

// WriteNotFound renders a 404 error page within the app shell.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteAppError(w, r, http.StatusNotFound, b.deps)
}

// WritePage renders a full module page with the given title and body.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, body templ.Component) {
	b.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Body:       body,
	})
}

// WriteModulePage renders page, falling back to the error page when
// rendering fails.
func (b Base) WriteModulePage(w http.ResponseWriter, r *http.Request, page pagerender.ModulePage) {
	if err := pagerender.WriteModulePage(w, r, b.deps, page); err != nil {
		b.WriteError(w, r, err)
	}
}

// Flash queues notice for the next rendered page.
func (b Base) Flash(w http.ResponseWriter, r *http.Request, notice flashnotice.Notice) {
	flashnotice.Write(w, r, notice, b.deps.Policy)
}

// RedirectWithNotice queues notice and redirects to location.
func (b Base) RedirectWithNotice(w http.ResponseWriter, r *http.Request, location string, notice flashnotice.Notice) {
	b.Flash(w, r, notice)
	httpx.WriteRedirect(w, r, location)
}

// LoadFailure returns the inline banner text for a failed page fetch.
func (b Base) LoadFailure(r *http.Request, err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(weberror.PublicMessage(b.PageLocalizer(r), err))
}

// Unauthorized returns the first error reporting an expired session. Pages
// degrade on other fetch failures but must send the browser to sign in on
// this one.
func Unauthorized(errs ...error) error {
	for _, err := range errs {
		if err != nil && apperrors.KindOf(err) == apperrors.KindUnauthorized {
			return err
		}
	}
	return nil
}

// FirstError returns the first non-nil error.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// FinishCommand ends a POST handler with a redirect to location carrying a
// success or failure toast. An expired session goes to sign in instead.
func (b Base) FinishCommand(w http.ResponseWriter, r *http.Request, location string, err error, successKey string) {
	if err == nil {
		b.RedirectWithNotice(w, r, location, flashnotice.Success(successKey))
		return
	}
	if Unauthorized(err) != nil {
		b.WriteError(w, r, err)
		return
	}
	b.RedirectWithNotice(w, r, location, flashnotice.Error(b.LoadFailure(r, err)))
}
