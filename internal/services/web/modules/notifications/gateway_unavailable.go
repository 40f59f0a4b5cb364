package notifications

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func (unavailableGateway) Notifications(context.Context, apiclient.ID) ([]backendapi.Notification, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "notifications service is not configured")
}

func (unavailableGateway) MarkNotificationRead(context.Context, apiclient.ID) error {
	return apperrors.E(apperrors.KindUnavailable, "notifications service is not configured")
}

func (unavailableGateway) MarkAllNotificationsRead(context.Context, apiclient.ID) error {
	return apperrors.E(apperrors.KindUnavailable, "notifications service is not configured")
}
