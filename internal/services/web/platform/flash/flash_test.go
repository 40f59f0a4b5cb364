package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/louisbranch/retina.care/internal/services/web/platform/requestmeta"
)

func roundTrip(t *testing.T, notice Notice) (Notice, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/app/patient/images", nil)
	writeRR := httptest.NewRecorder()
	Write(writeRR, req, notice, requestmeta.Policy{})
	header := writeRR.Header().Get("Set-Cookie")
	if header == "" {
		return Notice{}, false
	}
	cookie, err := http.ParseSetCookie(header)
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	req.AddCookie(cookie)
	readRR := httptest.NewRecorder()
	got, ok := ReadAndClear(readRR, req, requestmeta.Policy{})
	if readRR.Header().Get("Set-Cookie") == "" {
		t.Fatalf("expected clear Set-Cookie header")
	}
	return got, ok
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		notice Notice
		want   Notice
	}{
		{name: "catalog key", notice: Success("toast.image_uploaded"), want: Notice{Kind: KindSuccess, Key: "toast.image_uploaded"}},
		{name: "literal message", notice: Error("Patient not found"), want: Notice{Kind: KindError, Message: "Patient not found"}},
		{name: "kind normalized", notice: Notice{Kind: " INFO ", Key: "toast.signed_out"}, want: Notice{Kind: KindInfo, Key: "toast.signed_out"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := roundTrip(t, tc.notice)
			if !ok {
				t.Fatal("ReadAndClear() ok = false, want true")
			}
			if got != tc.want {
				t.Fatalf("notice = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLongMessageIsTruncated(t *testing.T) {
	t.Parallel()

	got, ok := roundTrip(t, Error(strings.Repeat("x", 1000)))
	if !ok {
		t.Fatal("expected notice")
	}
	if len(got.Message) != maxMessageLen {
		t.Fatalf("len(Message) = %d, want %d", len(got.Message), maxMessageLen)
	}
}

func TestReadAndClearInvalidCookieValueStillClears(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/app/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-base64!"})
	rr := httptest.NewRecorder()

	if _, ok := ReadAndClear(rr, req, requestmeta.Policy{}); ok {
		t.Fatalf("ReadAndClear() ok = true, want false")
	}
	if rr.Header().Get("Set-Cookie") == "" {
		t.Fatalf("expected clear Set-Cookie header")
	}
}

func TestWriteIgnoresInvalidNotice(t *testing.T) {
	t.Parallel()

	for _, notice := range []Notice{
		{Kind: KindSuccess},
		{Kind: "shout", Key: "toast.saved"},
	} {
		req := httptest.NewRequest(http.MethodGet, "/app/", nil)
		rr := httptest.NewRecorder()
		Write(rr, req, notice, requestmeta.Policy{})
		if got := rr.Header().Get("Set-Cookie"); got != "" {
			t.Fatalf("Write(%+v) Set-Cookie = %q, want empty", notice, got)
		}
	}
}
