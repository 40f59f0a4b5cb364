package publicauth

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers, limiter *ratelimit.Limiter) {
	if mux == nil {
		return
	}
	limit := func(next http.HandlerFunc) http.Handler {
		if limiter == nil {
			return next
		}
		key := func(r *http.Request) string {
			return r.URL.Path + "|" + requestmeta.ClientIP(r, h.RequestPolicy())
		}
		return limiter.Middleware(key, http.HandlerFunc(h.handleRateLimited))(next)
	}

	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginPage)
	mux.Handle(http.MethodPost+" "+routepath.Login, limit(h.handleLogin))
	mux.HandleFunc(http.MethodGet+" "+routepath.Register, h.handleRegisterPage)
	mux.Handle(http.MethodPost+" "+routepath.Register, limit(h.handleRegister))
	mux.HandleFunc(http.MethodGet+" "+routepath.ForgotPassword, h.handleForgotPage)
	mux.Handle(http.MethodPost+" "+routepath.ForgotPassword, limit(h.handleForgot))
	mux.HandleFunc(http.MethodGet+" "+routepath.ResetPassword, h.handleResetPage)
	mux.Handle(http.MethodPost+" "+routepath.ResetPassword, limit(h.handleReset))
	mux.HandleFunc(http.MethodGet+" "+routepath.Logout, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
}
