package admin

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "admin service is not configured")
}

func (unavailableGateway) AdminDashboard(context.Context) (backendapi.Metrics, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) PendingClinics(context.Context) ([]backendapi.Clinic, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) VerifyClinic(context.Context, apiclient.ID) error {
	return errUnavailable()
}

func (unavailableGateway) RejectClinic(context.Context, apiclient.ID) error {
	return errUnavailable()
}

func (unavailableGateway) Analytics(context.Context, string, int) (backendapi.Metrics, error) {
	return nil, errUnavailable()
}
