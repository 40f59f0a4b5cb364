package clinic

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.ClinicPrefix+"{$}", h.handleDashboard)
	mux.HandleFunc(http.MethodGet+" "+routepath.ClinicPatients, h.handlePatients)
	mux.HandleFunc(http.MethodGet+" "+routepath.ClinicImages, h.handleImages)
	mux.HandleFunc(http.MethodGet+" "+routepath.ClinicImageUpload, h.handleUploadPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.ClinicImageUpload, h.handleUpload)
	mux.HandleFunc(http.MethodGet+" "+routepath.ClinicAnalytics, h.handleAnalytics)
	mux.HandleFunc(http.MethodGet+" "+routepath.ClinicAnalyticsExport, h.handleAnalyticsExport)
	mux.HandleFunc(routepath.ClinicPrefix, h.WriteNotFound)
}
