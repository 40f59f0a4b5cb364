package profile

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

// fakeGateway implements ProfileGateway with canned replies and records the
// writes it receives.
type fakeGateway struct {
	account    backendapi.Account
	accountErr error
	patient    backendapi.Patient
	patientErr error
	doctor     backendapi.Doctor
	doctorErr  error
	saveErr    error

	created      *backendapi.PatientInput
	updated      *backendapi.PatientInput
	updatedID    *apiclient.ID
	doctorUpdate *backendapi.DoctorInput
}

var _ ProfileGateway = fakeGateway{}

func (f fakeGateway) Me(context.Context) (backendapi.Account, error) {
	return f.account, f.accountErr
}

func (f fakeGateway) PatientByAccount(context.Context, apiclient.ID) (backendapi.Patient, error) {
	return f.patient, f.patientErr
}

func (f fakeGateway) CreatePatient(_ context.Context, in backendapi.PatientInput) (backendapi.Patient, error) {
	if f.created != nil {
		*f.created = in
	}
	return backendapi.Patient{PatientID: "new"}, f.saveErr
}

func (f fakeGateway) UpdatePatient(_ context.Context, patientID apiclient.ID, in backendapi.PatientInput) (backendapi.Patient, error) {
	if f.updated != nil {
		*f.updated = in
	}
	if f.updatedID != nil {
		*f.updatedID = patientID
	}
	return f.patient, f.saveErr
}

func (f fakeGateway) DoctorByAccount(context.Context, apiclient.ID) (backendapi.Doctor, error) {
	return f.doctor, f.doctorErr
}

func (f fakeGateway) UpdateDoctor(_ context.Context, _ apiclient.ID, in backendapi.DoctorInput) (backendapi.Doctor, error) {
	if f.doctorUpdate != nil {
		*f.doctorUpdate = in
	}
	return f.doctor, f.saveErr
}
