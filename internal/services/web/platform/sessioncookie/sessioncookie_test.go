package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/louisbranch/retina.care/internal/services/web/platform/basepath"
	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
)

func TestRead(t *testing.T) {
	t.Parallel()

	if _, ok := Read(nil); ok {
		t.Fatalf("expected nil request to have no session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "http://retina.example.test", nil)
	if _, ok := Read(req); ok {
		t.Fatalf("expected missing cookie")
	}

	req.AddCookie(&http.Cookie{Name: Name, Value: "  s-1  "})
	value, ok := Read(req)
	if !ok || value != "s-1" {
		t.Fatalf("Read() = %q, %v, want %q, true", value, ok, "s-1")
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	req := httptest.NewRequest(http.MethodGet, "https://retina.example.test/login", nil)
	rr := httptest.NewRecorder()
	Write(rr, req, "s-1", expires, requestmeta.Policy{})

	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != Name || cookie.Value != "s-1" {
		t.Fatalf("cookie = %s=%s", cookie.Name, cookie.Value)
	}
	if !cookie.Secure || !cookie.HttpOnly {
		t.Fatalf("expected secure http-only cookie, got secure=%v httponly=%v", cookie.Secure, cookie.HttpOnly)
	}
	if cookie.Path != "/" {
		t.Fatalf("path = %q, want /", cookie.Path)
	}
	if !cookie.Expires.Equal(expires) {
		t.Fatalf("expires = %s, want %s", cookie.Expires, expires)
	}

	plain := httptest.NewRequest(http.MethodGet, "http://retina.example.test/login", nil)
	plainRR := httptest.NewRecorder()
	Write(plainRR, plain, "s-1", time.Time{}, requestmeta.Policy{})
	plainCookie, err := http.ParseSetCookie(plainRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if plainCookie.Secure {
		t.Fatalf("expected non-secure cookie for http request")
	}
}

func TestWriteScopesCookieToBasePath(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://retina.example.test/login", nil)
	req = req.WithContext(basepath.WithBase(req.Context(), "/screening"))
	rr := httptest.NewRecorder()
	Write(rr, req, "s-1", time.Time{}, requestmeta.Policy{})

	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Path != "/screening/" {
		t.Fatalf("path = %q, want %q", cookie.Path, "/screening/")
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "https://retina.example.test/logout", nil)
	rr := httptest.NewRecorder()
	Clear(rr, req, requestmeta.Policy{})

	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != Name || cookie.MaxAge >= 0 {
		t.Fatalf("cookie = %+v, want expired %s", cookie, Name)
	}
}
