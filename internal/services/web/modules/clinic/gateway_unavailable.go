package clinic

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "clinic service is not configured")
}

func (unavailableGateway) Clinic(context.Context, apiclient.ID) (backendapi.Clinic, error) {
	return backendapi.Clinic{}, errUnavailable()
}

func (unavailableGateway) ImagesByClinic(context.Context, apiclient.ID) ([]backendapi.RetinalImage, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) PatientsByClinic(context.Context, apiclient.ID) ([]backendapi.Patient, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) ImageStats(context.Context) (backendapi.ImageStats, error) {
	return backendapi.ImageStats{}, errUnavailable()
}

func (unavailableGateway) UploadImage(context.Context, backendapi.ImageInput) (backendapi.RetinalImage, error) {
	return backendapi.RetinalImage{}, errUnavailable()
}
