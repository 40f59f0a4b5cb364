// Package sessioncookie owns the browser cookie that carries the opaque web
// session ID.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/retina.care/internal/services/web/platform/basepath"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
)

// Name is the session cookie name.
const Name = "retina_session"

// Read returns the trimmed session ID when the cookie is present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

// Write sets the session cookie, scoped to the served base path and expiring
// with the session.
func Write(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time, policy requestmeta.Policy) {
	if w == nil {
		return
	}
	cookie := newCookie(r, policy)
	cookie.Value = strings.TrimSpace(sessionID)
	if !expiresAt.IsZero() {
		cookie.Expires = expiresAt.UTC()
	}
	http.SetCookie(w, cookie)
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy) {
	if w == nil {
		return
	}
	cookie := newCookie(r, policy)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

func newCookie(r *http.Request, policy requestmeta.Policy) *http.Cookie {
	path := "/"
	if r != nil {
		path = basepath.Resolve(r.Context(), "/")
	}
	return &http.Cookie{
		Name:     Name,
		Path:     path,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	}
}
