package modulehandler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/retina.care/internal/services/web/platform/flash"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/templates"
)

func TestResolveRequestViewerDelegatesToResolver(t *testing.T) {
	t.Parallel()

	want := module.Viewer{SignedIn: true, Email: "d@example.test", Role: role.Doctor}
	base := NewBase(module.Dependencies{ResolveViewer: func(*http.Request) module.Viewer { return want }})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := base.ResolveRequestViewer(r); got != want {
		t.Fatalf("ResolveRequestViewer() = %+v, want %+v", got, want)
	}
}

func TestResolveRequestViewerReturnsZeroWhenNil(t *testing.T) {
	t.Parallel()

	base := NewTestBase()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := base.ResolveRequestViewer(r); got != (module.Viewer{}) {
		t.Fatalf("ResolveRequestViewer() = %+v, want zero Viewer", got)
	}
}

func TestWritePageRendersAppShell(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{ResolveViewer: func(*http.Request) module.Viewer {
		return module.Viewer{SignedIn: true, Role: role.Doctor}
	}})
	r := httptest.NewRequest(http.MethodGet, "/app/doctor/reviews", nil)
	rr := httptest.NewRecorder()
	base.WritePage(rr, r, "Reviews", 0, templates.Paragraph("queue"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<p>queue</p>") || !strings.Contains(body, `href="/app/doctor/reviews" class="is-active"`) {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestWriteNotFoundRendersErrorState(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewTestBase().WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/app/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if !strings.Contains(rr.Body.String(), `id="app-error-state"`) {
		t.Fatalf("missing error state: %q", rr.Body.String())
	}
}

func TestWriteErrorMapsUnavailable(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewTestBase().WriteError(rr, httptest.NewRequest(http.MethodGet, "/app/", nil), apperrors.E(apperrors.KindUnavailable, "down"))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestRedirectWithNoticeSetsFlashAndSeeOther(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/app/notifications/read-all", nil)
	NewTestBase().RedirectWithNotice(rr, r, "/app/notifications/", flashnotice.Success("web.notifications.notice_all_read"))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != "/app/notifications/" {
		t.Fatalf("location = %q, want %q", got, "/app/notifications/")
	}
	if !strings.Contains(rr.Header().Get("Set-Cookie"), flashnotice.CookieName+"=") {
		t.Fatalf("missing flash cookie: %q", rr.Header().Get("Set-Cookie"))
	}
}
