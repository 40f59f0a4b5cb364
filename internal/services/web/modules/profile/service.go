package profile

import (
	"context"
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
	"golang.org/x/sync/errgroup"
)

// ProfileGateway loads and saves the signed-in account's profile.
type ProfileGateway interface {
	Me(ctx context.Context) (backendapi.Account, error)
	PatientByAccount(ctx context.Context, accountID apiclient.ID) (backendapi.Patient, error)
	CreatePatient(ctx context.Context, in backendapi.PatientInput) (backendapi.Patient, error)
	UpdatePatient(ctx context.Context, patientID apiclient.ID, in backendapi.PatientInput) (backendapi.Patient, error)
	DoctorByAccount(ctx context.Context, accountID apiclient.ID) (backendapi.Doctor, error)
	UpdateDoctor(ctx context.Context, doctorID apiclient.ID, in backendapi.DoctorInput) (backendapi.Doctor, error)
}

// Gender values accepted by the backend.
var genders = []string{"male", "female", "other", "prefer_not_to_say"}

type patientForm struct {
	Name           string `form:"patient_name" validate:"required,min=2,max=255"`
	DateOfBirth    string `form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender         string `form:"gender" validate:"omitempty,oneof=male female other prefer_not_to_say"`
	MedicalHistory string `form:"medical_history" validate:"max=2000"`
}

type doctorForm struct {
	Name           string `form:"doctor_name" validate:"required,min=2,max=255"`
	Specialization string `form:"specialization" validate:"max=255"`
	LicenseNumber  string `form:"license_number" validate:"max=100"`
}

// profileData is everything the profile page shows. A nil Patient or
// Doctor means the account has no role profile yet.
type profileData struct {
	Account    backendapi.Account
	AccountErr error
	Patient    *backendapi.Patient
	Doctor     *backendapi.Doctor
	ProfileErr error
}

type service struct {
	gateway ProfileGateway
}

func newService(gateway ProfileGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

// load fetches the account and its role profile concurrently.
func (s service) load(ctx context.Context, viewer module.Viewer) profileData {
	var data profileData
	var g errgroup.Group
	g.Go(func() error {
		data.Account, data.AccountErr = s.gateway.Me(ctx)
		return nil
	})
	accountID := apiclient.ID(strings.TrimSpace(viewer.AccountID.String()))
	switch viewer.Role {
	case role.Patient:
		g.Go(func() error {
			patient, err := s.gateway.PatientByAccount(ctx, accountID)
			data.Patient, data.ProfileErr = found(patient, err)
			return nil
		})
	case role.Doctor:
		g.Go(func() error {
			doctor, err := s.gateway.DoctorByAccount(ctx, accountID)
			data.Doctor, data.ProfileErr = found(doctor, err)
			return nil
		})
	}
	_ = g.Wait()
	return data
}

// found treats a missing profile as absent rather than failed.
func found[T any](value T, err error) (*T, error) {
	if apperrors.KindOf(err) == apperrors.KindNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// savePatient updates the patient profile, creating it on first save.
func (s service) savePatient(ctx context.Context, accountID apiclient.ID, form patientForm) (formvalidate.Errors, error) {
	form = form.normalized()
	if errs := formvalidate.Struct(form); errs != nil {
		return errs, nil
	}
	if strings.TrimSpace(accountID.String()) == "" {
		return nil, apperrors.EK(apperrors.KindUnauthorized, "core.error.session_required", "account id is required")
	}
	input := backendapi.PatientInput{
		PatientName:    form.Name,
		DateOfBirth:    form.DateOfBirth,
		Gender:         form.Gender,
		MedicalHistory: form.MedicalHistory,
	}
	existing, err := found(s.gateway.PatientByAccount(ctx, accountID))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		input.AccountID = accountID
		_, err = s.gateway.CreatePatient(ctx, input)
	} else {
		_, err = s.gateway.UpdatePatient(ctx, existing.PatientID, input)
	}
	return modulehandler.FieldErrors(err), err
}

func (s service) saveDoctor(ctx context.Context, accountID apiclient.ID, form doctorForm) (formvalidate.Errors, error) {
	form = form.normalized()
	if errs := formvalidate.Struct(form); errs != nil {
		return errs, nil
	}
	if strings.TrimSpace(accountID.String()) == "" {
		return nil, apperrors.EK(apperrors.KindUnauthorized, "core.error.session_required", "account id is required")
	}
	existing, err := found(s.gateway.DoctorByAccount(ctx, accountID))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.EK(apperrors.KindNotFound, "web.profile.error_no_doctor", "doctor profile not found")
	}
	_, err = s.gateway.UpdateDoctor(ctx, existing.DoctorID, backendapi.DoctorInput{
		DoctorName:     form.Name,
		Specialization: form.Specialization,
		LicenseNumber:  form.LicenseNumber,
	})
	return modulehandler.FieldErrors(err), err
}

func (f patientForm) normalized() patientForm {
	f.Name = strings.TrimSpace(f.Name)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)
	f.Gender = strings.ToLower(strings.TrimSpace(f.Gender))
	f.MedicalHistory = strings.TrimSpace(f.MedicalHistory)
	return f
}

func (f doctorForm) normalized() doctorForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Specialization = strings.TrimSpace(f.Specialization)
	f.LicenseNumber = strings.TrimSpace(f.LicenseNumber)
	return f
}

func patientFormFrom(p *backendapi.Patient) patientForm {
	if p == nil {
		return patientForm{}
	}
	dob := p.DateOfBirth
	if t, ok := backendapi.ParseTime(dob); ok {
		dob = t.Format("2006-01-02")
	}
	return patientForm{Name: p.PatientName, DateOfBirth: dob, Gender: p.Gender, MedicalHistory: p.MedicalHistory}
}

func doctorFormFrom(d *backendapi.Doctor) doctorForm {
	if d == nil {
		return doctorForm{}
	}
	return doctorForm{Name: d.DoctorName, Specialization: d.Specialization, LicenseNumber: d.LicenseNumber}
}
