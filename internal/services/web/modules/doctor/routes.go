package doctor

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.DoctorPrefix+"{$}", h.handleDashboard)
	mux.HandleFunc(http.MethodGet+" "+routepath.DoctorPatients, h.handlePatients)
	mux.HandleFunc(http.MethodGet+" "+routepath.DoctorReviews, h.handleReviews)
	mux.HandleFunc(http.MethodGet+" "+routepath.DoctorAnalysisReviewPattern, h.handleReviewPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.DoctorAnalysisReviewPattern, h.handleReviewSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.DoctorReports, h.handleReports)
	mux.HandleFunc(http.MethodGet+" "+routepath.DoctorReportCreate, h.handleReportPage)
	mux.HandleFunc(http.MethodPost+" "+routepath.DoctorReportCreate, h.handleReportCreate)
	mux.HandleFunc(routepath.DoctorPrefix, h.WriteNotFound)
}
