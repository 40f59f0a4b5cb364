package admin

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminPrefix+"{$}", h.handleDashboard)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminClinics, h.handleClinics)
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminClinicVerifyPattern, h.handleVerify)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminClinicVerifyPattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AdminClinicRejectPattern, h.handleReject)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminClinicRejectPattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminAnalytics, h.handleAnalytics)
	mux.HandleFunc(http.MethodGet+" "+routepath.AdminAnalyticsExport, h.handleAnalyticsExport)
	mux.HandleFunc(routepath.AdminPrefix, h.WriteNotFound)
}
