package profile

import (
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/pagerender"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
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

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	viewer := h.ResolveRequestViewer(r)
	data := h.service.load(httpx.RequestContext(r), viewer)
	if err := modulehandler.Unauthorized(data.AccountErr, data.ProfileErr); err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.writeIndex(w, r, http.StatusOK, profileView{
		Role:    viewer.Role,
		Data:    data,
		Patient: patientFormFrom(data.Patient),
		Doctor:  doctorFormFrom(data.Doctor),
	})
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	viewer := h.ResolveRequestViewer(r)
	ctx := httpx.RequestContext(r)
	view := profileView{Role: viewer.Role}

	var errs formvalidate.Errors
	var err error
	switch viewer.Role {
	case role.Patient:
		view.Patient = patientForm{
			Name:           r.FormValue("patient_name"),
			DateOfBirth:    r.FormValue("date_of_birth"),
			Gender:         r.FormValue("gender"),
			MedicalHistory: r.FormValue("medical_history"),
		}
		errs, err = h.service.savePatient(ctx, viewer.AccountID, view.Patient)
	case role.Doctor:
		view.Doctor = doctorForm{
			Name:           r.FormValue("doctor_name"),
			Specialization: r.FormValue("specialization"),
			LicenseNumber:  r.FormValue("license_number"),
		}
		errs, err = h.service.saveDoctor(ctx, viewer.AccountID, view.Doctor)
	default:
		h.WriteNotFound(w, r)
		return
	}

	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	if err == nil && len(errs) == 0 {
		h.FinishCommand(w, r, routepath.ProfilePrefix, nil, "web.profile.notice_saved")
		return
	}
	status := http.StatusUnprocessableEntity
	if err != nil {
		status = modulehandler.FailureStatus(err)
		view.Message = h.LoadFailure(r, err)
	}
	view.Errors = errs
	view.Data = h.service.load(ctx, viewer)
	h.writeIndex(w, r, status, view)
}

func (h handlers) writeIndex(w http.ResponseWriter, r *http.Request, status int, view profileView) {
	loc := h.PageLocalizer(r)
	view.Banner = h.LoadFailure(r, modulehandler.FirstError(view.Data.AccountErr, view.Data.ProfileErr))
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.profile.title"),
		Heading:    webtemplates.T(loc, "web.profile.heading"),
		StatusCode: status,
		Body:       profileBody(view, loc),
	})
}
