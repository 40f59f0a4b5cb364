package publicauth

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) Login(context.Context, backendapi.Credentials) (apiclient.Response, error) {
	return apiclient.Response{}, apperrors.E(apperrors.KindUnavailable, "auth service is not configured")
}

func (unavailableGateway) Register(context.Context, backendapi.Registration) (apiclient.Response, error) {
	return apiclient.Response{}, apperrors.E(apperrors.KindUnavailable, "auth service is not configured")
}

func (unavailableGateway) ForgotPassword(context.Context, string) error {
	return apperrors.E(apperrors.KindUnavailable, "auth service is not configured")
}

func (unavailableGateway) ResetPassword(context.Context, string, string) error {
	return apperrors.E(apperrors.KindUnavailable, "auth service is not configured")
}
