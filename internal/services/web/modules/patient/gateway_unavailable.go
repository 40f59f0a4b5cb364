package patient

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "patient service is not configured")
}

func (unavailableGateway) PatientByAccount(context.Context, apiclient.ID) (backendapi.Patient, error) {
	return backendapi.Patient{}, errUnavailable()
}

func (unavailableGateway) CreatePatient(context.Context, backendapi.PatientInput) (backendapi.Patient, error) {
	return backendapi.Patient{}, errUnavailable()
}

func (unavailableGateway) ImagesByPatient(context.Context, apiclient.ID) ([]backendapi.RetinalImage, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) Image(context.Context, apiclient.ID) (backendapi.RetinalImage, error) {
	return backendapi.RetinalImage{}, errUnavailable()
}

func (unavailableGateway) AnalysesByImage(context.Context, apiclient.ID) ([]backendapi.Analysis, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) UploadImage(context.Context, backendapi.ImageInput) (backendapi.RetinalImage, error) {
	return backendapi.RetinalImage{}, errUnavailable()
}

func (unavailableGateway) ReportsByPatient(context.Context, apiclient.ID) ([]backendapi.Report, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) UnreadNotifications(context.Context, apiclient.ID) ([]backendapi.Notification, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) ActiveSubscription(context.Context, apiclient.ID) (backendapi.Subscription, error) {
	return backendapi.Subscription{}, errUnavailable()
}

func (unavailableGateway) Credits(context.Context, apiclient.ID) (backendapi.Credits, error) {
	return backendapi.Credits{}, errUnavailable()
}

func (unavailableGateway) ServicePackages(context.Context) ([]backendapi.ServicePackage, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) Subscribe(context.Context, backendapi.SubscriptionInput) (backendapi.Subscription, error) {
	return backendapi.Subscription{}, errUnavailable()
}
