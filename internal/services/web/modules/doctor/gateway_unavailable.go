package doctor

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "doctor service is not configured")
}

func (unavailableGateway) DoctorByAccount(context.Context, apiclient.ID) (backendapi.Doctor, error) {
	return backendapi.Doctor{}, errUnavailable()
}

func (unavailableGateway) PendingReviews(context.Context) ([]backendapi.PendingAnalysis, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) ImagesPendingAnalysis(context.Context) ([]backendapi.RetinalImage, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) Image(context.Context, apiclient.ID) (backendapi.RetinalImage, error) {
	return backendapi.RetinalImage{}, errUnavailable()
}

func (unavailableGateway) ReviewsByDoctor(context.Context, apiclient.ID) ([]backendapi.Review, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) SubmitReview(context.Context, backendapi.ReviewInput) (backendapi.Review, error) {
	return backendapi.Review{}, errUnavailable()
}

func (unavailableGateway) SearchPatients(context.Context, backendapi.PatientSearch) ([]backendapi.Patient, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) ReportsByDoctor(context.Context, apiclient.ID) ([]backendapi.Report, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) CreateReport(context.Context, backendapi.ReportInput) (backendapi.Report, error) {
	return backendapi.Report{}, errUnavailable()
}
