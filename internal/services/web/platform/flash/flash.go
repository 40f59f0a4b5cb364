// Package flash carries one toast notice across a redirect in a short-lived
// cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/platform/basepath"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
)

// CookieName is the toast notice cookie.
const CookieName = "retina_toast"

// maxMessageLen bounds literal messages so the cookie stays small.
const maxMessageLen = 300

// Kind selects toast styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Notice is one toast. Key names a catalog message; Message is literal text,
// typically a backend reply, used when Key is empty.
type Notice struct {
	Kind    Kind   `json:"k"`
	Key     string `json:"key,omitempty"`
	Message string `json:"msg,omitempty"`
}

// Success returns a success notice for a catalog key.
func Success(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

// Error returns an error notice with literal text.
func Error(message string) Notice {
	return Notice{Kind: KindError, Message: message}
}

// Write stores notice for the next page render.
func Write(w http.ResponseWriter, r *http.Request, notice Notice, policy requestmeta.Policy) {
	if w == nil {
		return
	}
	notice, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(notice)
	if err != nil {
		return
	}
	cookie := newCookie(r, policy)
	cookie.Value = base64.RawURLEncoding.EncodeToString(payload)
	http.SetCookie(w, cookie)
}

// ReadAndClear returns the pending notice, expiring the cookie whether or not
// it decodes.
func ReadAndClear(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	if w != nil {
		expired := newCookie(r, policy)
		expired.MaxAge = -1
		http.SetCookie(w, expired)
	}
	return decode(cookie.Value)
}

func newCookie(r *http.Request, policy requestmeta.Policy) *http.Cookie {
	path := "/"
	if r != nil {
		path = basepath.Resolve(r.Context(), "/")
	}
	return &http.Cookie{
		Name:     CookieName,
		Path:     path,
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	}
}

func decode(raw string) (Notice, bool) {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalize(notice)
}

func normalize(notice Notice) (Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	notice.Message = strings.TrimSpace(notice.Message)
	if len(notice.Message) > maxMessageLen {
		notice.Message = notice.Message[:maxMessageLen]
	}
	if notice.Key == "" && notice.Message == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindWarning, KindError:
		return notice, true
	}
	return Notice{}, false
}
