// Package basepath lets the web frontend be served from a URL sub-path.
// The server strips the prefix before routing and every redirect or rendered
// link resolves app paths back through the request context.
package basepath

import (
	"context"
	"net/http"
	"strings"
)

type contextKey struct{}

// Normalize returns base as "/segment[/segment]" without a trailing slash,
// or "" for the site root.
func Normalize(base string) string {
	base = strings.TrimSpace(base)
	base = strings.Trim(base, "/")
	if base == "" {
		return ""
	}
	return "/" + base
}

// WithBase returns ctx carrying the normalized base path.
func WithBase(ctx context.Context, base string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, Normalize(base))
}

// FromContext returns the base path carried by ctx.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	base, _ := ctx.Value(contextKey{}).(string)
	return base
}

// Resolve prefixes an absolute app path with the base path from ctx.
// Relative paths, full URLs and query-only references are returned as is.
func Resolve(ctx context.Context, path string) string {
	return Join(FromContext(ctx), path)
}

// Join prefixes an absolute app path with base.
func Join(base string, path string) string {
	base = Normalize(base)
	if base == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return path
	}
	if path == base || strings.HasPrefix(path, base+"/") {
		return path
	}
	return base + path
}

// Strip serves next with base removed from the request path and recorded in
// the request context. Requests outside base receive 404.
func Strip(base string, next http.Handler) http.Handler {
	base = Normalize(base)
	if next == nil {
		next = http.NotFoundHandler()
	}
	if base == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == base {
			http.Redirect(w, r, base+"/", http.StatusMovedPermanently)
			return
		}
		if !strings.HasPrefix(r.URL.Path, base+"/") {
			http.NotFound(w, r)
			return
		}
		stripped := r.Clone(WithBase(r.Context(), base))
		stripped.URL.Path = strings.TrimPrefix(r.URL.Path, base)
		stripped.URL.RawPath = ""
		next.ServeHTTP(w, stripped)
	})
}
