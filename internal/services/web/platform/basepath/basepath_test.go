package basepath

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":              "",
		"/":             "",
		"portal":        "/portal",
		"/portal/":      "/portal",
		" /a/b/ ":       "/a/b",
		"clinic/retina": "/clinic/retina",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	ctx := WithBase(context.Background(), "/portal/")
	tests := []struct {
		path string
		want string
	}{
		{path: "/login", want: "/portal/login"},
		{path: "/app/patient/", want: "/portal/app/patient/"},
		{path: "/portal/login", want: "/portal/login"},
		{path: "?page=2", want: "?page=2"},
		{path: "https://cdn.example/x.png", want: "https://cdn.example/x.png"},
		{path: "//cdn.example/x.png", want: "//cdn.example/x.png"},
	}
	for _, tc := range tests {
		if got := Resolve(ctx, tc.path); got != tc.want {
			t.Fatalf("Resolve(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
	if got := Resolve(context.Background(), "/login"); got != "/login" {
		t.Fatalf("Resolve without base = %q, want %q", got, "/login")
	}
}

func TestStripRoutesUnderBase(t *testing.T) {
	t.Parallel()

	var gotPath, gotBase string
	h := Strip("/portal", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBase = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portal/app/doctor/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotPath != "/app/doctor/" {
		t.Fatalf("path = %q, want %q", gotPath, "/app/doctor/")
	}
	if gotBase != "/portal" {
		t.Fatalf("base = %q, want %q", gotBase, "/portal")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/elsewhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("outside status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/portal", nil))
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("bare base status = %d, want %d", rec.Code, http.StatusMovedPermanently)
	}
}

func TestStripWithoutBaseIsPassthrough(t *testing.T) {
	t.Parallel()

	called := false
	h := Strip("", http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/login", nil))
	if !called {
		t.Fatal("expected passthrough")
	}
}
