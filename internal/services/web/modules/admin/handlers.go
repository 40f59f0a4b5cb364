package admin

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/retina.care/internal/services/web/platform/csvexport"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/pagerender"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
	now     func() time.Time
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s, now: time.Now}
}

func (h handlers) handleDashboard(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	metrics, err := h.service.dashboard(httpx.RequestContext(r))
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:         webtemplates.T(loc, "web.admin.dashboard.title"),
		Heading:       webtemplates.T(loc, "web.admin.dashboard.heading"),
		HeadingAction: webtemplates.Link(webtemplates.LinkView{Label: webtemplates.T(loc, "web.admin.clinics.heading"), URL: routepath.AdminClinics, Primary: true}),
		StatusCode:    http.StatusOK,
		Body:          dashboardBody(metrics, h.LoadFailure(r, err), loc),
	})
}

func (h handlers) handleClinics(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	clinics, err := h.service.pendingClinics(httpx.RequestContext(r))
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.admin.clinics.title"),
		Heading:    webtemplates.T(loc, "web.admin.clinics.heading"),
		StatusCode: http.StatusOK,
		Body: clinicsBody(clinicsView{
			Banner:  h.LoadFailure(r, err),
			Clinics: clinics,
			Page:    paging.FromRequest(r, routepath.PageQueryKey),
			Query:   r.URL.RawQuery,
		}, loc),
	})
}

func (h handlers) handleVerify(w http.ResponseWriter, r *http.Request) {
	err := h.service.verifyClinic(httpx.RequestContext(r), r.PathValue("clinicID"))
	h.FinishCommand(w, r, h.clinicsReturn(r), err, "web.admin.clinics.notice_verified")
}

func (h handlers) handleReject(w http.ResponseWriter, r *http.Request) {
	err := h.service.rejectClinic(httpx.RequestContext(r), r.PathValue("clinicID"))
	h.FinishCommand(w, r, h.clinicsReturn(r), err, "web.admin.clinics.notice_rejected")
}

// clinicsReturn keeps the queue page the command was posted from.
func (h handlers) clinicsReturn(r *http.Request) string {
	page, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(routepath.PageQueryKey)))
	return routepath.WithPage(routepath.AdminClinics, "", page)
}

func (h handlers) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	query := r.URL.Query()
	q := parseAnalyticsQuery(query.Get("report"), query.Get("days"))
	rows, err := h.service.analytics(httpx.RequestContext(r), q)
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:         webtemplates.T(loc, "web.admin.analytics.title"),
		Heading:       webtemplates.T(loc, "web.admin.analytics.heading"),
		HeadingAction: exportAction(q, loc),
		StatusCode:    http.StatusOK,
		Body:          analyticsBody(q, rows, h.LoadFailure(r, err), loc),
	})
}

func (h handlers) handleAnalyticsExport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := parseAnalyticsQuery(query.Get("report"), query.Get("days"))
	rows, err := h.service.analytics(httpx.RequestContext(r), q)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{row.Key, row.Value})
	}
	filename := "analytics-" + q.Report + "-" + h.now().UTC().Format("20060102") + ".csv"
	if err := csvexport.Write(w, filename, []string{"metric", "value"}, records); err != nil {
		log.Printf("admin analytics export: %v", err)
	}
}
