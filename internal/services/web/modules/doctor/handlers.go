package doctor

import (
	"net/http"
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/pagerender"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

// searchQueryKey carries the patient name filter.
const searchQueryKey = "name"

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

func (h handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	data := h.service.dashboard(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	errs := data.errs()
	if err := modulehandler.Unauthorized(errs...); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:         webtemplates.T(loc, "web.doctor.dashboard.title"),
		Heading:       webtemplates.T(loc, "web.doctor.dashboard.heading"),
		HeadingAction: searchAction(loc),
		StatusCode:    http.StatusOK,
		Body: dashboardBody(dashboardView{
			Data:   data,
			Banner: h.LoadFailure(r, modulehandler.FirstError(errs...)),
			Page:   paging.FromRequest(r, routepath.PageQueryKey),
			Query:  r.URL.RawQuery,
		}, loc),
	})
}

func (h handlers) handlePatients(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	name := strings.TrimSpace(r.URL.Query().Get(searchQueryKey))
	patients, err := h.service.searchPatients(httpx.RequestContext(r), name)
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.doctor.patients.title"),
		Heading:    webtemplates.T(loc, "web.doctor.patients.heading"),
		StatusCode: http.StatusOK,
		Body: patientsBody(patientsView{
			Banner:   h.LoadFailure(r, err),
			Name:     name,
			Patients: patients,
			Page:     paging.FromRequest(r, routepath.PageQueryKey),
			Query:    r.URL.RawQuery,
		}, loc),
	})
}

func (h handlers) handleReviews(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	reviews, err := h.service.reviews(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.doctor.reviews.title"),
		Heading:    webtemplates.T(loc, "web.doctor.reviews.heading"),
		StatusCode: http.StatusOK,
		Body: webtemplates.Group(
			webtemplates.Banner("error", h.LoadFailure(r, err)),
			webtemplates.Section(webtemplates.SectionView{ID: "doctor-reviews"},
				reviewsTable(reviews, paging.FromRequest(r, routepath.PageQueryKey), func(n int) string {
					return routepath.WithPage(routepath.DoctorReviews, r.URL.RawQuery, n)
				}, loc)),
		),
	})
}

func (h handlers) handleReviewPage(w http.ResponseWriter, r *http.Request) {
	h.writeReview(w, r, http.StatusOK, reviewForm{Status: reviewStatuses[0]}, nil, "")
}

func (h handlers) handleReviewSubmit(w http.ResponseWriter, r *http.Request) {
	form := reviewForm{
		Status:  r.FormValue("validation_status"),
		Comment: r.FormValue("comment"),
	}
	errs, err := h.service.submitReview(httpx.RequestContext(r), h.ResolveRequestViewer(r), r.PathValue("analysisID"), form)
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	if err == nil && len(errs) == 0 {
		h.FinishCommand(w, r, routepath.DoctorPrefix, nil, "web.doctor.review.notice_submitted")
		return
	}
	status := http.StatusUnprocessableEntity
	message := ""
	if err != nil {
		status = modulehandler.FailureStatus(err)
		message = h.LoadFailure(r, err)
	}
	h.writeReview(w, r, status, form, errs, message)
}

func (h handlers) writeReview(w http.ResponseWriter, r *http.Request, status int, form reviewForm, errs formvalidate.Errors, message string) {
	loc := h.PageLocalizer(r)
	target, err := h.service.reviewTarget(httpx.RequestContext(r), r.PathValue("analysisID"))
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.doctor.review.title"),
		Heading:    webtemplates.T(loc, "web.doctor.review.heading"),
		StatusCode: status,
		Body: reviewBody(reviewView{
			Target:  target,
			Banner:  h.LoadFailure(r, err),
			Form:    form,
			Errors:  errs,
			Message: message,
		}, loc),
	})
}

func (h handlers) handleReports(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	reports, err := h.service.reports(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:         webtemplates.T(loc, "web.doctor.reports.title"),
		Heading:       webtemplates.T(loc, "web.doctor.reports.heading"),
		HeadingAction: newReportAction(loc),
		StatusCode:    http.StatusOK,
		Body: reportsBody(reportsView{
			Banner:  h.LoadFailure(r, err),
			Reports: reports,
			Page:    paging.FromRequest(r, routepath.PageQueryKey),
			Query:   r.URL.RawQuery,
		}, loc),
	})
}

func (h handlers) handleReportPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	h.writeReport(w, r, http.StatusOK, reportForm{
		PatientID:  query.Get("patient_id"),
		AnalysisID: query.Get("analysis_id"),
	}, nil, "")
}

func (h handlers) handleReportCreate(w http.ResponseWriter, r *http.Request) {
	form := reportForm{
		PatientID:  r.FormValue("patient_id"),
		AnalysisID: r.FormValue("analysis_id"),
		ReportURL:  r.FormValue("report_url"),
	}
	errs, err := h.service.createReport(httpx.RequestContext(r), h.ResolveRequestViewer(r), form)
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	if err == nil && len(errs) == 0 {
		h.FinishCommand(w, r, routepath.DoctorReports, nil, "web.doctor.reports.notice_created")
		return
	}
	status := http.StatusUnprocessableEntity
	message := ""
	if err != nil {
		status = modulehandler.FailureStatus(err)
		message = h.LoadFailure(r, err)
	}
	h.writeReport(w, r, status, form, errs, message)
}

func (h handlers) writeReport(w http.ResponseWriter, r *http.Request, status int, form reportForm, errs formvalidate.Errors, message string) {
	loc := h.PageLocalizer(r)
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.doctor.report_create.title"),
		Heading:    webtemplates.T(loc, "web.doctor.report_create.heading"),
		StatusCode: status,
		Body:       reportFormBody(form, errs, message, loc),
	})
}
