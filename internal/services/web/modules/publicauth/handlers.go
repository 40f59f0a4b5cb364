package publicauth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	flashnotice "github.com/louisbranch/retina.care/internal/services/web/platform/flash"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/publichandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/platform/session"
	"github.com/louisbranch/retina.care/internal/services/web/platform/weberror"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

// SessionWriter stores and drops the browser session.
type SessionWriter interface {
	SetAuthFromResponse(w http.ResponseWriter, r *http.Request, body []byte) (bool, error)
	Clear(w http.ResponseWriter, r *http.Request) error
	Role(r *http.Request) role.Role
}

type handlers struct {
	publichandler.Base
	service  service
	sessions SessionWriter
}

func newHandlers(s service, sessions SessionWriter, base publichandler.Base) handlers {
	return handlers{Base: base, service: s, sessions: sessions}
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if h.redirectSignedIn(w, r) {
		return
	}
	h.writeLogin(w, r, http.StatusOK, loginForm{Next: r.URL.Query().Get(routepath.NextQueryKey)}, nil, "")
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	form := loginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Next:     r.FormValue(routepath.NextQueryKey),
	}
	resp, errs, err := h.service.login(httpx.RequestContext(r), form)
	if len(errs) > 0 && err == nil {
		h.writeLogin(w, r, http.StatusUnprocessableEntity, form, errs, "")
		return
	}
	if err != nil {
		h.writeLogin(w, r, modulehandler.FailureStatus(err), form, errs, h.failureMessage(r, err))
		return
	}
	if failure := h.startSession(w, r, resp); failure != "" {
		h.writeLogin(w, r, http.StatusBadGateway, form, nil, webtemplates.T(h.PageLocalizer(r), failure))
		return
	}
	destination := safeNext(form.Next)
	if destination == "" {
		destination = h.sessions.Role(r).DashboardPath()
	}
	h.Flash(w, r, flashnotice.Success("web.auth.notice_signed_in"))
	httpx.WriteRedirect(w, r, destination)
}

func (h handlers) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	if h.redirectSignedIn(w, r) {
		return
	}
	h.writeRegister(w, r, http.StatusOK, registerForm{Role: string(role.Patient)}, nil, "")
}

func (h handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	form := registerForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Confirm:  r.FormValue("confirm"),
		Role:     r.FormValue("role"),
	}
	resp, errs, err := h.service.register(httpx.RequestContext(r), form)
	if len(errs) > 0 && err == nil {
		h.writeRegister(w, r, http.StatusUnprocessableEntity, form, errs, "")
		return
	}
	if err != nil {
		h.writeRegister(w, r, modulehandler.FailureStatus(err), form, errs, h.failureMessage(r, err))
		return
	}
	if h.startSession(w, r, resp) == "" {
		h.Flash(w, r, flashnotice.Success("web.auth.notice_registered"))
		httpx.WriteRedirect(w, r, h.sessions.Role(r).DashboardPath())
		return
	}
	h.Flash(w, r, flashnotice.Success("web.auth.notice_registered_sign_in"))
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) handleForgotPage(w http.ResponseWriter, r *http.Request) {
	h.writeForgot(w, r, http.StatusOK, forgotForm{}, nil, "", "")
}

func (h handlers) handleForgot(w http.ResponseWriter, r *http.Request) {
	form := forgotForm{Email: r.FormValue("email")}
	errs, err := h.service.forgotPassword(httpx.RequestContext(r), form)
	if len(errs) > 0 && err == nil {
		h.writeForgot(w, r, http.StatusUnprocessableEntity, form, errs, "", "")
		return
	}
	if err != nil {
		h.writeForgot(w, r, modulehandler.FailureStatus(err), form, errs, h.failureMessage(r, err), "")
		return
	}
	h.writeForgot(w, r, http.StatusOK, forgotForm{}, nil, "", webtemplates.T(h.PageLocalizer(r), "web.auth.forgot_sent"))
}

func (h handlers) handleResetPage(w http.ResponseWriter, r *http.Request) {
	h.writeReset(w, r, http.StatusOK, resetForm{Token: r.URL.Query().Get("token")}, nil, "")
}

func (h handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	form := resetForm{
		Token:    r.FormValue("token"),
		Password: r.FormValue("password"),
		Confirm:  r.FormValue("confirm"),
	}
	errs, err := h.service.resetPassword(httpx.RequestContext(r), form)
	if len(errs) > 0 && err == nil {
		h.writeReset(w, r, http.StatusUnprocessableEntity, form, errs, "")
		return
	}
	if err != nil {
		h.writeReset(w, r, modulehandler.FailureStatus(err), form, errs, h.failureMessage(r, err))
		return
	}
	h.Flash(w, r, flashnotice.Success("web.auth.notice_password_reset"))
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if h.sessions != nil {
		if err := h.sessions.Clear(w, r); err != nil {
			log.Printf("logout: clear session err=%v", err)
		}
	}
	h.Flash(w, r, flashnotice.Success("web.auth.notice_signed_out"))
	httpx.WriteRedirect(w, r, routepath.Login)
}

func (h handlers) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	message := webtemplates.T(h.PageLocalizer(r), "web.auth.error_rate_limited")
	w.Header().Set("Retry-After", "60")
	switch r.URL.Path {
	case routepath.Register:
		h.writeRegister(w, r, http.StatusTooManyRequests, registerForm{Email: r.FormValue("email"), Role: r.FormValue("role")}, nil, message)
	case routepath.ForgotPassword:
		h.writeForgot(w, r, http.StatusTooManyRequests, forgotForm{Email: r.FormValue("email")}, nil, message, "")
	case routepath.ResetPassword:
		h.writeReset(w, r, http.StatusTooManyRequests, resetForm{Token: r.FormValue("token")}, nil, message)
	default:
		h.writeLogin(w, r, http.StatusTooManyRequests, loginForm{Email: r.FormValue("email"), Next: r.FormValue(routepath.NextQueryKey)}, nil, message)
	}
}

// redirectSignedIn sends signed-in browsers to their dashboard. Without a
// known role there is no dashboard, so the form is shown.
func (h handlers) redirectSignedIn(w http.ResponseWriter, r *http.Request) bool {
	viewer := h.ResolveRequestViewer(r)
	if !h.IsViewerSignedIn(r) || !viewer.Role.Valid() {
		return false
	}
	httpx.WriteRedirect(w, r, viewer.Role.DashboardPath())
	return true
}

// startSession stores the sign-in reply and returns the localization key of
// the failure, or "" once a session is stored.
func (h handlers) startSession(w http.ResponseWriter, r *http.Request, resp apiclient.Response) string {
	if h.sessions == nil {
		return "web.auth.error_no_token"
	}
	ok, err := h.sessions.SetAuthFromResponse(w, r, resp.Body)
	switch {
	case errors.Is(err, session.ErrUnknownRole):
		log.Printf("sign-in refused err=%v", err)
		return "web.auth.error_unknown_role"
	case err != nil:
		log.Printf("store session failed err=%v", err)
		return "web.auth.error_no_token"
	case !ok:
		return "web.auth.error_no_token"
	}
	return ""
}

func (h handlers) failureMessage(r *http.Request, err error) string {
	return weberror.PublicMessage(h.PageLocalizer(r), err)
}

func (h handlers) writeLogin(w http.ResponseWriter, r *http.Request, status int, form loginForm, errs formvalidate.Errors, message string) {
	loc := h.PageLocalizer(r)
	h.WritePublicPage(w, r, webtemplates.T(loc, "web.auth.login_title"), webtemplates.T(loc, "web.auth.login_description"), status, loginPage(loc, form, errs, message))
}

func (h handlers) writeRegister(w http.ResponseWriter, r *http.Request, status int, form registerForm, errs formvalidate.Errors, message string) {
	loc := h.PageLocalizer(r)
	h.WritePublicPage(w, r, webtemplates.T(loc, "web.auth.register_title"), webtemplates.T(loc, "web.auth.register_description"), status, registerPage(loc, form, errs, message))
}

func (h handlers) writeForgot(w http.ResponseWriter, r *http.Request, status int, form forgotForm, errs formvalidate.Errors, message string, success string) {
	loc := h.PageLocalizer(r)
	h.WritePublicPage(w, r, webtemplates.T(loc, "web.auth.forgot_title"), "", status, forgotPage(loc, form, errs, message, success))
}

func (h handlers) writeReset(w http.ResponseWriter, r *http.Request, status int, form resetForm, errs formvalidate.Errors, message string) {
	loc := h.PageLocalizer(r)
	form.Password, form.Confirm = "", ""
	h.WritePublicPage(w, r, webtemplates.T(loc, "web.auth.reset_title"), "", status, resetPage(loc, form, errs, strings.TrimSpace(message)))
}
