package weberror

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/retina.care/internal/services/web/platform/flash"
)

func TestWriteModuleErrorRendersAppErrorPageForNotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/patient/images/9", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindNotFound, "missing"), module.Dependencies{})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	if body := rr.Body.String(); !strings.Contains(body, `id="app-error-state"`) {
		t.Fatalf("body missing app error state marker: %q", body)
	}
}

func TestWriteModuleErrorWritesPlainTextForBadRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/profile/", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindInvalidInput, "bad form"), module.Dependencies{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if !strings.Contains(body, http.StatusText(http.StatusBadRequest)) {
		t.Fatalf("body = %q, want generic bad-request message", body)
	}
	if strings.Contains(body, "bad form") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestWriteModuleErrorRedirectsExpiredSessionToLogin(t *testing.T) {
	t.Parallel()

	expired := false
	deps := module.Dependencies{ExpireSession: func(http.ResponseWriter, *http.Request) { expired = true }}
	req := httptest.NewRequest(http.MethodGet, "/app/patient/reports", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, &apiclient.Error{Status: http.StatusUnauthorized, Message: apiclient.MessageUnauthorized}, deps)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got, want := rr.Header().Get("Location"), "/login?next=%2Fapp%2Fpatient%2Freports"; got != want {
		t.Fatalf("location = %q, want %q", got, want)
	}
	if !expired {
		t.Fatal("expected session to be expired")
	}
	found := false
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == flashnotice.CookieName {
			found = true
		}
	}
	if !found {
		t.Fatal("expected flash notice cookie")
	}
}

func TestPublicMessageKeepsBackendMessage(t *testing.T) {
	t.Parallel()

	err := &apiclient.Error{Status: http.StatusBadRequest, Message: "Patient not found"}
	if got := PublicMessage(nil, err); got != "Patient not found" {
		t.Fatalf("PublicMessage() = %q, want backend message", got)
	}
	if got := PublicMessage(nil, nil); got != "" {
		t.Fatalf("PublicMessage(nil) = %q, want empty", got)
	}
}
