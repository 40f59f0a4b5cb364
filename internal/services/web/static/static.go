// Package static embeds the stylesheet and the widget script of the web app.
package static

import (
	"embed"
	"net/http"
)

// FS exposes web static assets for HTTP serving.
//
//go:embed *.css *.js
var FS embed.FS

// Handler serves the embedded assets with a short shared cache lifetime.
// Mount it with the static prefix already stripped.
func Handler() http.Handler {
	files := http.FileServer(http.FS(FS))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || r.URL.Path == "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}
