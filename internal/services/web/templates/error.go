package templates

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

const (
	appErrorPageTitleNotFoundKey  = "core.error.page_title_not_found"
	appErrorPageTitleServerErrKey = "core.error.page_title_server_error"
	appErrorHeadingNotFoundKey    = "core.error.title_not_found"
	appErrorHeadingServerErrKey   = "core.error.title_server_error"
	appErrorMessageNotFoundKey    = "core.error.message_not_found"
	appErrorMessageServerErrKey   = "core.error.message_server_error"
	appErrorBackHomeKey           = "core.error.action_back_home"
)

// AppErrorPageTitle returns the browser page title for app error pages.
func AppErrorPageTitle(statusCode int, loc Localizer) string {
	if normalizeAppErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, appErrorPageTitleNotFoundKey)
	}
	return T(loc, appErrorPageTitleServerErrKey)
}

// AppErrorState renders the body of an error page.
func AppErrorState(statusCode int, loc Localizer) templ.Component {
	return component(func(h *html) {
		h.raw(`<section id="app-error-state" class="error-state"><h2>`)
		h.text(appErrorHeading(statusCode, loc))
		h.raw(`</h2><p>`)
		h.text(appErrorMessage(statusCode, loc))
		h.raw(`</p>`)
		h.render(Link(LinkView{Label: T(loc, appErrorBackHomeKey), URL: routepath.Root, Primary: true}))
		h.raw(`</section>`)
	})
}

func appErrorHeading(statusCode int, loc Localizer) string {
	if normalizeAppErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, appErrorHeadingNotFoundKey)
	}
	return T(loc, appErrorHeadingServerErrKey)
}

func appErrorMessage(statusCode int, loc Localizer) string {
	if normalizeAppErrorStatus(statusCode) == http.StatusNotFound {
		return T(loc, appErrorMessageNotFoundKey)
	}
	return T(loc, appErrorMessageServerErrKey)
}

func normalizeAppErrorStatus(statusCode int) int {
	if statusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
