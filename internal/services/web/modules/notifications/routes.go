package notifications

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.NotificationsPrefix+"{$}", h.handleIndex)
	mux.HandleFunc(http.MethodPost+" "+routepath.NotificationsReadAll, h.handleReadAll)
	mux.HandleFunc(http.MethodGet+" "+routepath.NotificationsReadAll, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.NotificationReadPattern, h.handleReadRoute)
	mux.HandleFunc(http.MethodGet+" "+routepath.NotificationReadPattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.NotificationsPrefix, h.WriteNotFound)
}
