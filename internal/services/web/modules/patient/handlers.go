package patient

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
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
		Title:         webtemplates.T(loc, "web.patient.dashboard.title"),
		Heading:       webtemplates.T(loc, "web.patient.dashboard.heading"),
		HeadingAction: uploadAction(loc),
		StatusCode:    http.StatusOK,
		Body:          dashboardBody(data, h.LoadFailure(r, modulehandler.FirstError(errs...)), loc),
	})
}

func (h handlers) handleImages(w http.ResponseWriter, r *http.Request) {
	h.writeImages(w, r, nil)
}

func (h handlers) handleImageDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.imageDetail(httpx.RequestContext(r), h.ResolveRequestViewer(r), r.PathValue("imageID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeImages(w, r, &detail)
}

// writeImages renders the paged image list, with detail open in the modal
// when set.
func (h handlers) writeImages(w http.ResponseWriter, r *http.Request, detail *imageDetail) {
	loc := h.PageLocalizer(r)
	images, err := h.service.images(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	view := imagesView{
		Banner: h.LoadFailure(r, err),
		Images: images,
		Page:   paging.FromRequest(r, routepath.PageQueryKey),
		Query:  r.URL.RawQuery,
		Detail: detail,
	}
	if detail != nil {
		view.DetailBanner = h.LoadFailure(r, detail.AnalysesErr)
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:         webtemplates.T(loc, "web.patient.images.title"),
		Heading:       webtemplates.T(loc, "web.patient.images.heading"),
		HeadingAction: uploadAction(loc),
		StatusCode:    http.StatusOK,
		Body:          imagesBody(view, loc),
	})
}

func (h handlers) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	h.writeUpload(w, r, http.StatusOK, uploadForm{ImageType: backendapi.ImageTypes[0], EyeSide: backendapi.EyeSides[0]}, nil, "")
}

func (h handlers) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := imageupload.ParseForm(r); err != nil {
		h.writeUpload(w, r, http.StatusBadRequest, uploadForm{}, nil, h.LoadFailure(r, imageupload.ErrTooLarge))
		return
	}
	form := uploadForm{
		ImageType: r.FormValue("image_type"),
		EyeSide:   r.FormValue("eye_side"),
		ImageURL:  r.FormValue("image_url"),
		Notes:     r.FormValue("notes"),
	}
	dataURL, err := imageupload.DataURL(r, "image_file")
	if err != nil {
		if !imageupload.IsUploadError(err) {
			h.writeUpload(w, r, http.StatusBadRequest, form, nil, h.LoadFailure(r, err))
			return
		}
		errs := formvalidate.Errors{}
		errs.Add("image_file", formvalidate.Message{Key: apperrors.LocalizationKey(err)})
		h.writeUpload(w, r, http.StatusUnprocessableEntity, form, errs, "")
		return
	}
	if dataURL != "" {
		form.ImageURL = dataURL
	}

	image, errs, err := h.service.upload(httpx.RequestContext(r), h.ResolveRequestViewer(r), form)
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	if err == nil && len(errs) > 0 {
		h.writeUpload(w, r, http.StatusUnprocessableEntity, form, errs, "")
		return
	}
	if err != nil {
		h.writeUpload(w, r, modulehandler.FailureStatus(err), form, errs, h.LoadFailure(r, err))
		return
	}
	location := routepath.PatientImages
	if id := image.ImageID.String(); id != "" {
		location = routepath.PatientImage(id)
	}
	h.FinishCommand(w, r, location, nil, "web.patient.upload.notice_uploaded")
}

func (h handlers) writeUpload(w http.ResponseWriter, r *http.Request, status int, form uploadForm, errs formvalidate.Errors, message string) {
	loc := h.PageLocalizer(r)
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.patient.upload.title"),
		Heading:    webtemplates.T(loc, "web.patient.upload.heading"),
		StatusCode: status,
		Body:       uploadBody(form, errs, message, loc),
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
		Title:      webtemplates.T(loc, "web.patient.reports.title"),
		Heading:    webtemplates.T(loc, "web.patient.reports.heading"),
		StatusCode: http.StatusOK,
		Body: reportsBody(reportsView{
			Banner:  h.LoadFailure(r, err),
			Reports: reports,
			Page:    paging.FromRequest(r, routepath.PageQueryKey),
			Query:   r.URL.RawQuery,
		}, loc),
	})
}

func (h handlers) handleSubscription(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	data, err := h.service.subscription(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if err == nil {
		err = modulehandler.Unauthorized(data.SubscriptionErr, data.CreditsErr, data.PackagesErr)
	}
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.patient.subscription.title"),
		Heading:    webtemplates.T(loc, "web.patient.subscription.heading"),
		StatusCode: http.StatusOK,
		Body:       subscriptionBody(data, h.LoadFailure(r, modulehandler.FirstError(data.SubscriptionErr, data.CreditsErr, data.PackagesErr)), loc),
	})
}

func (h handlers) handlePurchase(w http.ResponseWriter, r *http.Request) {
	err := h.service.purchase(httpx.RequestContext(r), h.ResolveRequestViewer(r), r.FormValue("package_id"))
	h.FinishCommand(w, r, routepath.PatientSubscription, err, "web.patient.subscription.notice_purchased")
}
