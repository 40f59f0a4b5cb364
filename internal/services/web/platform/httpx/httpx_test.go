package httpx

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/retina.care/internal/services/web/platform/basepath"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

func TestChainAppliesMiddlewareInOrder(t *testing.T) {
	t.Parallel()

	called := ""
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called += tag
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called += "h"
		w.WriteHeader(http.StatusNoContent)
	}), mw("1"), nil, mw("2"))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if called != "12h" {
		t.Fatalf("call order = %q, want %q", called, "12h")
	}
}

func TestChainHandlesNilHandler(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Chain(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/no-route", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestMethodNotAllowedWritesAllowHeaderAndStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	MethodNotAllowed(http.MethodPost).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/logout", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
	if got := rr.Header().Get("Allow"); got != http.MethodPost {
		t.Fatalf("Allow = %q, want %q", got, http.MethodPost)
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(RequestIDHeader)
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.HasPrefix(seen, "web-") {
		t.Fatalf("generated request id = %q, want web- prefix", seen)
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("response request id = %q, want %q", rr.Header().Get(RequestIDHeader), seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != "req-123" || rr.Header().Get(RequestIDHeader) != "req-123" {
		t.Fatalf("request id = %q / %q, want req-123", seen, rr.Header().Get(RequestIDHeader))
	}
}

func TestRecoverPanicLogsRequestContext(t *testing.T) {
	prevWriter := log.Writer()
	defer log.SetOutput(prevWriter)
	var buffer bytes.Buffer
	log.SetOutput(&buffer)

	h := RecoverPanic()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	logLine := buffer.String()
	for _, marker := range []string{"panic recovered", "path=/panic", "request_id=req-123"} {
		if !strings.Contains(logLine, marker) {
			t.Fatalf("panic log missing marker %q: %q", marker, logLine)
		}
	}
}

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	rec := NewStatusRecorder(rr)
	if rec.Status != http.StatusOK {
		t.Fatalf("default status = %d, want %d", rec.Status, http.StatusOK)
	}
	rec.WriteHeader(http.StatusTeapot)
	if rec.Status != http.StatusTeapot || rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d/%d, want %d", rec.Status, rr.Code, http.StatusTeapot)
	}
	if rec.Unwrap() != rr {
		t.Fatal("Unwrap() did not return the wrapped writer")
	}
}

func TestWriteJSONSetsContentTypeAndBody(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if err := WriteJSON(rr, http.StatusOK, map[string]string{"status": "ok"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if got := rr.Header().Get("Content-Type"); !strings.HasPrefix(got, "application/json") {
		t.Fatalf("content-type = %q", got)
	}
	if body := rr.Body.String(); !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("body = %q", body)
	}
	if err := WriteJSON(nil, http.StatusOK, nil); err == nil {
		t.Fatal("expected WriteJSON(nil) error")
	}
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	WriteError(rr, apperrors.E(apperrors.KindUnauthorized, "missing session"))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	rr = httptest.NewRecorder()
	WriteError(rr, errors.New("boom"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}

	WriteError(nil, errors.New("ignored"))
}

func TestWriteRedirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		method   string
		base     string
		location string
		wantCode int
		wantLoc  string
	}{
		{name: "get", method: http.MethodGet, location: "/app/patient/", wantCode: http.StatusFound, wantLoc: "/app/patient/"},
		{name: "post", method: http.MethodPost, location: "/app/patient/images", wantCode: http.StatusSeeOther, wantLoc: "/app/patient/images"},
		{name: "base path", method: http.MethodGet, base: "/screening", location: "/login", wantCode: http.StatusFound, wantLoc: "/screening/login"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tc.method, "/somewhere", nil)
			if tc.base != "" {
				req = req.WithContext(basepath.WithBase(req.Context(), tc.base))
			}
			rr := httptest.NewRecorder()
			WriteRedirect(rr, req, tc.location)
			if rr.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rr.Code, tc.wantCode)
			}
			if got := rr.Header().Get("Location"); got != tc.wantLoc {
				t.Fatalf("Location = %q, want %q", got, tc.wantLoc)
			}
		})
	}
}

func TestWriteRedirectNilSafety(t *testing.T) {
	t.Parallel()

	WriteRedirect(nil, nil, "/ignored")

	rr := httptest.NewRecorder()
	WriteRedirect(rr, nil, "/login")
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/login" {
		t.Fatalf("status/location = %d %q", rr.Code, rr.Header().Get("Location"))
	}
}
