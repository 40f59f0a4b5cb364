package public

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/publichandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

func serve(t *testing.T, base publichandler.Base, method string, path string) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := New(base).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != routepath.Root {
		t.Fatalf("Prefix = %q, want %q", mount.Prefix, routepath.Root)
	}
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func TestLandingRendersForSignedOutViewer(t *testing.T) {
	t.Parallel()

	rr := serve(t, publichandler.NewBase(), http.MethodGet, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{`id="landing"`, `href="/register"`, `href="/login"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q: %q", want, body)
		}
	}
}

func TestLandingRedirectsSignedInViewerByRole(t *testing.T) {
	t.Parallel()

	base := publichandler.NewBase(
		publichandler.WithResolveViewerSignedIn(func(*http.Request) bool { return true }),
		publichandler.WithResolveViewer(func(*http.Request) module.Viewer {
			return module.Viewer{SignedIn: true, Role: role.Admin}
		}),
	)
	rr := serve(t, base, http.MethodGet, "/")
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != routepath.AdminPrefix {
		t.Fatalf("Location = %q, want %q", got, routepath.AdminPrefix)
	}
}

func TestLandingRendersForSignedInViewerWithoutRole(t *testing.T) {
	t.Parallel()

	base := publichandler.NewBase(
		publichandler.WithResolveViewerSignedIn(func(*http.Request) bool { return true }),
		publichandler.WithResolveViewer(func(*http.Request) module.Viewer {
			return module.Viewer{SignedIn: true, Role: role.None}
		}),
	)
	rr := serve(t, base, http.MethodGet, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (Location %q)", rr.Code, http.StatusOK, rr.Header().Get("Location"))
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rr := serve(t, publichandler.NewBase(), http.MethodGet, routepath.Health)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	t.Parallel()

	rr := serve(t, publichandler.NewBase(), http.MethodGet, "/nope")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
