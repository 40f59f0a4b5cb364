package modulehandler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

func TestFieldErrorsLiftsBackendFields(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("create: %w", &apiclient.Error{
		Status:  http.StatusUnprocessableEntity,
		Message: "patient_name: too long",
		Fields:  map[string][]string{"patient_name": {"too long"}, "gender": {}},
	})
	got := FieldErrors(err)
	if !got.Has("patient_name") || got["patient_name"].Text != "too long" {
		t.Fatalf("FieldErrors() = %+v", got)
	}
	if got.Has("gender") {
		t.Fatal("empty field messages should be dropped")
	}
	if FieldErrors(errors.New("plain")) != nil {
		t.Fatal("non-api error should have no field errors")
	}
	if FieldErrors(nil) != nil {
		t.Fatal("nil error should have no field errors")
	}
}

func TestFailureStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "conflict", err: &apiclient.Error{Status: http.StatusConflict}, want: http.StatusConflict},
		{name: "invalid", err: &apiclient.Error{Status: http.StatusUnprocessableEntity}, want: http.StatusUnprocessableEntity},
		{name: "upstream failure", err: &apiclient.Error{Status: http.StatusInternalServerError}, want: http.StatusBadGateway},
		{name: "unreachable", err: &apiclient.Error{Status: 0}, want: http.StatusBadGateway},
		{name: "plain", err: errors.New("boom"), want: http.StatusBadGateway},
	}
	for _, tc := range tests {
		if got := FailureStatus(tc.err); got != tc.want {
			t.Fatalf("%s: FailureStatus() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestUnauthorizedAndFirstError(t *testing.T) {
	t.Parallel()

	down := apperrors.E(apperrors.KindUnavailable, "down")
	expired := apperrors.E(apperrors.KindUnauthorized, "expired")

	if got := Unauthorized(nil, down, expired); got != expired {
		t.Fatalf("Unauthorized() = %v, want %v", got, expired)
	}
	if got := Unauthorized(nil, down); got != nil {
		t.Fatalf("Unauthorized() = %v, want nil", got)
	}
	if got := FirstError(nil, down, expired); got != down {
		t.Fatalf("FirstError() = %v, want %v", got, down)
	}
	if got := FirstError(); got != nil {
		t.Fatalf("FirstError() = %v, want nil", got)
	}
}

func TestFinishCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		status   int
		location string
	}{
		{name: "success", status: http.StatusSeeOther, location: "/app/notifications/"},
		{name: "failure flashes", err: apperrors.E(apperrors.KindConflict, "busy"), status: http.StatusSeeOther, location: "/app/notifications/"},
		{name: "expired signs in", err: apperrors.E(apperrors.KindUnauthorized, "expired"), status: http.StatusSeeOther},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/app/notifications/read-all", nil)
		NewTestBase().FinishCommand(rr, r, "/app/notifications/", tc.err, "web.notifications.notice_all_read")
		if rr.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.name, rr.Code, tc.status)
		}
		if tc.location != "" && rr.Header().Get("Location") != tc.location {
			t.Fatalf("%s: location = %q, want %q", tc.name, rr.Header().Get("Location"), tc.location)
		}
	}
}
