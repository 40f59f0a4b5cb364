package notifications

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

type fakeGateway struct {
	items   []backendapi.Notification
	listErr error
	readErr error
	allErr  error

	lastRead    *apiclient.ID
	lastAccount *apiclient.ID
}

var _ NotificationGateway = fakeGateway{}

func (f fakeGateway) Notifications(_ context.Context, accountID apiclient.ID) ([]backendapi.Notification, error) {
	if f.lastAccount != nil {
		*f.lastAccount = accountID
	}
	return f.items, f.listErr
}

func (f fakeGateway) MarkNotificationRead(_ context.Context, notificationID apiclient.ID) error {
	if f.lastRead != nil {
		*f.lastRead = notificationID
	}
	return f.readErr
}

func (f fakeGateway) MarkAllNotificationsRead(_ context.Context, accountID apiclient.ID) error {
	if f.lastAccount != nil {
		*f.lastAccount = accountID
	}
	return f.allErr
}
