// Package weberror renders shared app-shell error responses for web modules.
package weberror

import (
	stderrors "errors"
	"net/http"
	"strings"

	webi18n "github.com/louisbranch/retina.care/internal/services/web/i18n"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/retina.care/internal/services/web/platform/flash"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/pagerender"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

// ShouldRenderAppError reports whether status should use app error-page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized error message. Backend
// failures already carry a normalized message; other errors fall back to the
// status text so internal detail never reaches the page.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" && loc != nil {
		if localized := strings.TrimSpace(loc.T(key)); localized != "" {
			return localized
		}
	}
	var apiErr *apiclient.Error
	if stderrors.As(err, &apiErr) {
		return apiErr.Error()
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes a localized app-shell error page.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc := webi18n.FromContext(httpx.RequestContext(r))
	err := pagerender.WriteModulePage(w, r, deps, pagerender.ModulePage{
		Title:      webtemplates.AppErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Body:       webtemplates.AppErrorState(statusCode, loc),
	})
	if err != nil {
		http.Error(w, PublicMessage(loc, err), statusCode)
	}
}

// WritePublicError writes a localized error page in the signed-out shell.
func WritePublicError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc := webi18n.FromContext(httpx.RequestContext(r))
	err := pagerender.WritePublicPage(w, r, deps, pagerender.PublicPage{
		Title:      webtemplates.AppErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Body:       webtemplates.AppErrorState(statusCode, loc),
	})
	if err != nil {
		http.Error(w, PublicMessage(loc, err), statusCode)
	}
}

// WriteModuleError writes a module-safe localized error response. A backend
// that rejects the session token sends the browser back to sign in.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	loc := webi18n.FromContext(httpx.RequestContext(r))
	statusCode := apperrors.HTTPStatus(err)
	if statusCode == http.StatusUnauthorized {
		redirectToLogin(w, r, PublicMessage(loc, err), deps)
		return
	}
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	http.Error(w, PublicMessage(loc, err), statusCode)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request, message string, deps module.Dependencies) {
	if deps.ExpireSession != nil {
		deps.ExpireSession(w, r)
	}
	flashnotice.Write(w, r, flashnotice.Error(message), deps.Policy)
	next := ""
	if r != nil && r.URL != nil && r.Method == http.MethodGet {
		next = r.URL.RequestURI()
	}
	httpx.WriteRedirect(w, r, routepath.LoginWithNext(next))
}
