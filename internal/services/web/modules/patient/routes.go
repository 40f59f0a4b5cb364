package patient

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.PatientPrefix+"{$}", h.handleDashboard)
	mux.HandleFunc(http.MethodGet+" "+routepath.PatientImages, h.handleImages)
	mux.HandleFunc(http.MethodGet+" "+routepath.PatientImagePattern, h.handleImageDetail)
	mux.HandleFunc(http.MethodGet+" "+routepath.PatientImageUpload, h.handleUploadPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.PatientImageUpload, h.handleUpload)
	mux.HandleFunc(http.MethodGet+" "+routepath.PatientReports, h.handleReports)
	mux.HandleFunc(http.MethodGet+" "+routepath.PatientSubscription, h.handleSubscription)
	mux.HandleFunc(http.MethodPost+" "+routepath.PatientSubscriptionCreate, h.handlePurchase)
	mux.HandleFunc(http.MethodGet+" "+routepath.PatientSubscriptionCreate, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.PatientPrefix, h.WriteNotFound)
}
