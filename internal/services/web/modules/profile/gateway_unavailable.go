package profile

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "profile service is not configured")
}

func (unavailableGateway) Me(context.Context) (backendapi.Account, error) {
	return backendapi.Account{}, errUnavailable()
}

func (unavailableGateway) PatientByAccount(context.Context, apiclient.ID) (backendapi.Patient, error) {
	return backendapi.Patient{}, errUnavailable()
}

func (unavailableGateway) CreatePatient(context.Context, backendapi.PatientInput) (backendapi.Patient, error) {
	return backendapi.Patient{}, errUnavailable()
}

func (unavailableGateway) UpdatePatient(context.Context, apiclient.ID, backendapi.PatientInput) (backendapi.Patient, error) {
	return backendapi.Patient{}, errUnavailable()
}

func (unavailableGateway) DoctorByAccount(context.Context, apiclient.ID) (backendapi.Doctor, error) {
	return backendapi.Doctor{}, errUnavailable()
}

func (unavailableGateway) UpdateDoctor(context.Context, apiclient.ID, backendapi.DoctorInput) (backendapi.Doctor, error) {
	return backendapi.Doctor{}, errUnavailable()
}
