package publicauth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	"github.com/louisbranch/retina.care/internal/services/web/platform/publichandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/ratelimit"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"github.com/louisbranch/retina.care/internal/services/web/platform/session"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

func mountForTest(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	mount, err := New(cfg).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return mount.Handler
}

func postForm(handler http.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "203.0.113.9:4000"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestMountServesExactAccountPaths(t *testing.T) {
	t.Parallel()

	mount, err := New(Config{}).Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "" {
		t.Fatalf("Prefix = %q, want empty", mount.Prefix)
	}
	want := []string{routepath.Login, routepath.Register, routepath.ForgotPassword, routepath.ResetPassword, routepath.Logout}
	if len(mount.Paths) != len(want) {
		t.Fatalf("Paths = %v, want %v", mount.Paths, want)
	}
	for i := range want {
		if mount.Paths[i] != want[i] {
			t.Fatalf("Paths[%d] = %q, want %q", i, mount.Paths[i], want[i])
		}
	}
}

func TestRegisterValidationReportsEveryFieldWithoutBackendCall(t *testing.T) {
	t.Parallel()

	calls := 0
	handler := mountForTest(t, Config{Gateway: fakeGateway{calls: &calls}, Sessions: &fakeSessions{}})
	rr := postForm(handler, routepath.Register, url.Values{
		"email":    {"ana@example.com"},
		"password": {"abc"},
		"confirm":  {"abcdef"},
		"role":     {"Patient"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnprocessableEntity)
	}
	if calls != 0 {
		t.Fatalf("backend calls = %d, want 0", calls)
	}
	body := rr.Body.String()
	for _, want := range []string{"Must be at least 6 characters.", "Passwords do not match.", `value="ana@example.com"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q: %q", want, body)
		}
	}
	if strings.Contains(body, `value="abc"`) {
		t.Fatalf("password echoed back: %q", body)
	}
}

func TestRegisterSendsRoleIDAndStartsSession(t *testing.T) {
	t.Parallel()

	sent := &backendapi.Registration{}
	gateway := fakeGateway{
		registerResp: apiclient.Response{Body: []byte(`{"data":{"access_token":"t"}}`)},
		lastRegister: sent,
	}
	sessions := &fakeSessions{role: role.Doctor}
	handler := mountForTest(t, Config{Gateway: gateway, Sessions: sessions})

	rr := postForm(handler, routepath.Register, url.Values{
		"email":    {"doc@example.com"},
		"password": {"secret1"},
		"confirm":  {"secret1"},
		"role":     {"Doctor"},
	})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != routepath.DoctorPrefix {
		t.Fatalf("Location = %q, want %q", got, routepath.DoctorPrefix)
	}
	if sent.RoleID != 2 {
		t.Fatalf("role_id = %d, want 2", sent.RoleID)
	}
	if !sessions.stored {
		t.Fatal("expected session to be stored")
	}
}

func TestLoginRedirectsToNextOrDashboard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		next string
		want string
	}{
		{name: "dashboard", next: "", want: routepath.PatientPrefix},
		{name: "safe next", next: "/app/patient/reports", want: "/app/patient/reports"},
		{name: "offsite next", next: "//evil.example", want: routepath.PatientPrefix},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sessions := &fakeSessions{role: role.Patient}
			handler := mountForTest(t, Config{
				Gateway:  fakeGateway{loginResp: apiclient.Response{Body: []byte(`{"data":{"access_token":"t","role_id":3}}`)}},
				Sessions: sessions,
			})
			rr := postForm(handler, routepath.Login, url.Values{
				"email":    {"p@example.com"},
				"password": {"secret1"},
				"next":     {tc.next},
			})
			if rr.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
			}
			if got := rr.Header().Get("Location"); got != tc.want {
				t.Fatalf("Location = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoginShowsBackendMessage(t *testing.T) {
	t.Parallel()

	handler := mountForTest(t, Config{
		Gateway:  fakeGateway{loginErr: &apiclient.Error{Status: http.StatusUnauthorized, Message: apiclient.MessageUnauthorized}},
		Sessions: &fakeSessions{},
	})
	rr := postForm(handler, routepath.Login, url.Values{"email": {"p@example.com"}, "password": {"wrong"}})
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rr.Body.String(), "Invalid email or password") {
		t.Fatalf("body missing backend message: %q", rr.Body.String())
	}
}

func TestForgotPasswordNotImplemented(t *testing.T) {
	t.Parallel()

	handler := mountForTest(t, Config{
		Gateway: fakeGateway{forgotErr: &apiclient.Error{Status: http.StatusNotImplemented, Message: apiclient.MessageNotImplemented}},
	})
	rr := postForm(handler, routepath.ForgotPassword, url.Values{"email": {"p@example.com"}})
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
	if !strings.Contains(rr.Body.String(), apiclient.MessageNotImplemented) {
		t.Fatalf("body missing not-implemented message: %q", rr.Body.String())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	t.Parallel()

	sessions := &fakeSessions{}
	handler := mountForTest(t, Config{Sessions: sessions})
	rr := postForm(handler, routepath.Logout, url.Values{})
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if got := rr.Header().Get("Location"); got != routepath.Login {
		t.Fatalf("Location = %q, want %q", got, routepath.Login)
	}
	if !sessions.cleared {
		t.Fatal("expected session to be cleared")
	}

	req := httptest.NewRequest(http.MethodGet, routepath.Logout, nil)
	get := httptest.NewRecorder()
	handler.ServeHTTP(get, req)
	if get.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status = %d, want %d", get.Code, http.StatusMethodNotAllowed)
	}
}

func TestLoginPageRedirectsSignedInViewer(t *testing.T) {
	t.Parallel()

	base := publichandler.NewBase(
		publichandler.WithResolveViewerSignedIn(func(*http.Request) bool { return true }),
		publichandler.WithResolveViewer(func(*http.Request) module.Viewer {
			return module.Viewer{SignedIn: true, Role: role.ClinicManager}
		}),
	)
	handler := mountForTest(t, Config{Base: base})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Login, nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != routepath.ClinicPrefix {
		t.Fatalf("Location = %q, want %q", got, routepath.ClinicPrefix)
	}
}

func TestLoginPageShownToSessionWithoutRole(t *testing.T) {
	t.Parallel()

	base := publichandler.NewBase(
		publichandler.WithResolveViewerSignedIn(func(*http.Request) bool { return true }),
		publichandler.WithResolveViewer(func(*http.Request) module.Viewer {
			return module.Viewer{SignedIn: true, Role: role.None}
		}),
	)
	handler := mountForTest(t, Config{Base: base})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Login, nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (Location %q)", rr.Code, http.StatusOK, rr.Header().Get("Location"))
	}
}

func TestLoginRefusesUnknownRole(t *testing.T) {
	t.Parallel()

	sessions := &fakeSessions{err: fmt.Errorf("%w: role_id 9", session.ErrUnknownRole)}
	handler := mountForTest(t, Config{
		Gateway:  fakeGateway{loginResp: apiclient.Response{Body: []byte(`{"data":{"access_token":"t","role_id":9}}`)}},
		Sessions: sessions,
	})
	rr := postForm(handler, routepath.Login, url.Values{"email": {"p@example.com"}, "password": {"secret1"}})
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadGateway)
	}
	if got := rr.Header().Get("Location"); got != "" {
		t.Fatalf("Location = %q, want no redirect", got)
	}
	if sessions.stored {
		t.Fatal("expected nothing stored")
	}
}

func TestAuthPostsAreRateLimited(t *testing.T) {
	t.Parallel()

	handler := mountForTest(t, Config{
		Gateway:  fakeGateway{loginErr: &apiclient.Error{Status: http.StatusUnauthorized, Message: apiclient.MessageUnauthorized}},
		Sessions: &fakeSessions{},
		Limiter:  ratelimit.PerMinute(1),
	})
	values := url.Values{"email": {"p@example.com"}, "password": {"wrong"}}
	if rr := postForm(handler, routepath.Login, values); rr.Code != http.StatusUnauthorized {
		t.Fatalf("first status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
	rr := postForm(handler, routepath.Login, values)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want %d", rr.Code, http.StatusTooManyRequests)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}
