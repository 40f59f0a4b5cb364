package profile

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.ProfilePrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.ProfileUpdate, h.handleUpdate)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProfileUpdate, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.ProfilePrefix, h.WriteNotFound)
}
