package clinic

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/csvexport"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	flashnotice "github.com/louisbranch/retina.care/internal/services/web/platform/flash"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/imageupload"
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
	data := h.service.overview(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	errs := data.errs()
	if err := modulehandler.Unauthorized(errs...); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:         webtemplates.T(loc, "web.clinic.dashboard.title"),
		Heading:       webtemplates.T(loc, "web.clinic.dashboard.heading"),
		HeadingAction: uploadAction(loc),
		StatusCode:    http.StatusOK,
		Body:          dashboardBody(data, h.LoadFailure(r, modulehandler.FirstError(errs...)), loc),
	})
}

func (h handlers) handlePatients(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	patients, err := h.service.patients(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	page := paging.FromRequest(r, routepath.PageQueryKey)
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.clinic.patients.title"),
		Heading:    webtemplates.T(loc, "web.clinic.patients.heading"),
		StatusCode: http.StatusOK,
		Body: webtemplates.Group(
			webtemplates.Banner("error", h.LoadFailure(r, err)),
			webtemplates.Section(webtemplates.SectionView{ID: "clinic-patients"},
				patientsTable(patients, page, func(n int) string {
					return routepath.WithPage(routepath.ClinicPatients, r.URL.RawQuery, n)
				}, loc)),
		),
	})
}

func (h handlers) handleImages(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	images, err := h.service.images(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	page := paging.FromRequest(r, routepath.PageQueryKey)
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:         webtemplates.T(loc, "web.clinic.images.title"),
		Heading:       webtemplates.T(loc, "web.clinic.images.heading"),
		HeadingAction: uploadAction(loc),
		StatusCode:    http.StatusOK,
		Body: webtemplates.Group(
			webtemplates.Banner("error", h.LoadFailure(r, err)),
			webtemplates.Section(webtemplates.SectionView{ID: "clinic-images"},
				imagesTable("images-table", images, page, func(n int) string {
					return routepath.WithPage(routepath.ClinicImages, r.URL.RawQuery, n)
				}, loc)),
		),
	})
}

func (h handlers) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	h.writeUpload(w, r, http.StatusOK, bulkForm{ImageType: backendapi.ImageTypes[0], EyeSide: backendapi.EyeSides[0]}, nil, "")
}

func (h handlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := imageupload.ParseForm(r); err != nil {
		h.writeUpload(w, r, http.StatusBadRequest, bulkForm{}, nil, h.LoadFailure(r, imageupload.ErrTooLarge))
		return
	}
	form := bulkForm{
		PatientID: r.FormValue("patient_id"),
		ImageType: r.FormValue("image_type"),
		EyeSide:   r.FormValue("eye_side"),
		Notes:     r.FormValue("notes"),
	}
	dataURLs, err := imageupload.DataURLs(r, "image_files")
	if err != nil {
		if !imageupload.IsUploadError(err) {
			h.writeUpload(w, r, http.StatusBadRequest, form, nil, h.LoadFailure(r, err))
			return
		}
		errs := formvalidate.Errors{}
		errs.Add("image_files", formvalidate.Message{Key: apperrors.LocalizationKey(err)})
		h.writeUpload(w, r, http.StatusUnprocessableEntity, form, errs, "")
		return
	}
	names := imageupload.FileNames(r, "image_files")
	files := make([]bulkFile, len(dataURLs))
	for i, dataURL := range dataURLs {
		files[i] = bulkFile{Name: names[i], DataURL: dataURL}
	}

	result, errs, err := h.service.bulkUpload(httpx.RequestContext(r), h.ResolveRequestViewer(r), form, files)
	if expired := modulehandler.Unauthorized(err, result.Err); expired != nil {
		h.WriteError(w, r, expired)
		return
	}
	if err != nil {
		h.writeUpload(w, r, modulehandler.FailureStatus(err), form, nil, h.LoadFailure(r, err))
		return
	}
	if len(errs) > 0 {
		h.writeUpload(w, r, http.StatusUnprocessableEntity, form, errs, "")
		return
	}
	if result.Uploaded == 0 {
		h.writeUpload(w, r, modulehandler.FailureStatus(result.Err), form, nil, h.LoadFailure(r, result.Err))
		return
	}
	h.RedirectWithNotice(w, r, routepath.ClinicImages, h.uploadNotice(r, result))
}

// uploadNotice summarizes a bulk upload that sent at least one file.
func (h handlers) uploadNotice(r *http.Request, result bulkResult) flashnotice.Notice {
	loc := h.PageLocalizer(r)
	if len(result.Failed) == 0 {
		return flashnotice.Notice{Kind: flashnotice.KindSuccess, Message: webtemplates.T(loc, "web.clinic.upload.notice_uploaded", result.Uploaded)}
	}
	return flashnotice.Notice{
		Kind:    flashnotice.KindWarning,
		Message: webtemplates.T(loc, "web.clinic.upload.notice_partial", result.Uploaded, result.Total, strings.Join(result.Failed, ", ")),
	}
}

func (h handlers) writeUpload(w http.ResponseWriter, r *http.Request, status int, form bulkForm, errs formvalidate.Errors, message string) {
	loc := h.PageLocalizer(r)
	patients, err := h.service.patients(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	if message == "" {
		message = h.LoadFailure(r, err)
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.clinic.upload.title"),
		Heading:    webtemplates.T(loc, "web.clinic.upload.heading"),
		StatusCode: status,
		Body:       uploadBody(form, patients, errs, message, loc),
	})
}

func (h handlers) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	data, err := h.service.analytics(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if expired := modulehandler.Unauthorized(err, data.ImagesErr, data.StatsErr); expired != nil {
		h.WriteError(w, r, expired)
		return
	}
	banner := h.LoadFailure(r, modulehandler.FirstError(err, data.ImagesErr, data.StatsErr))
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:         webtemplates.T(loc, "web.clinic.analytics.title"),
		Heading:       webtemplates.T(loc, "web.clinic.analytics.heading"),
		HeadingAction: exportAction(loc),
		StatusCode:    http.StatusOK,
		Body:          analyticsBody(data.Rows, banner, loc),
	})
}

func (h handlers) handleAnalyticsExport(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.analytics(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if err == nil {
		err = modulehandler.FirstError(data.ImagesErr, data.StatsErr)
	}
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	rows := make([][]string, 0, len(data.Rows))
	for _, row := range data.Rows {
		rows = append(rows, []string{row.Key, row.Value})
	}
	filename := "clinic-analytics-" + h.now().UTC().Format("20060102") + ".csv"
	if err := csvexport.Write(w, filename, []string{"metric", "value"}, rows); err != nil {
		log.Printf("clinic analytics export: %v", err)
	}
}
