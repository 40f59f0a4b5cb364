package notifications

import (
	"context"
	"sort"
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

// NotificationGateway loads and updates notifications for web handlers.
type NotificationGateway interface {
	Notifications(ctx context.Context, accountID apiclient.ID) ([]backendapi.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID apiclient.ID) error
	MarkAllNotificationsRead(ctx context.Context, accountID apiclient.ID) error
}

// requireAccountID validates and returns a trimmed account ID, or returns an
// unauthorized error if it is blank.
func requireAccountID(accountID apiclient.ID) (apiclient.ID, error) {
	accountID = apiclient.ID(strings.TrimSpace(accountID.String()))
	if accountID == "" {
		return "", apperrors.EK(apperrors.KindUnauthorized, "core.error.session_required", "account id is required")
	}
	return accountID, nil
}

type service struct {
	gateway NotificationGateway
}

func newService(gateway NotificationGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

// listNotifications returns notifications newest first with unread ones
// ahead of read ones of the same age.
func (s service) listNotifications(ctx context.Context, accountID apiclient.ID) ([]backendapi.Notification, error) {
	resolved, err := requireAccountID(accountID)
	if err != nil {
		return nil, err
	}
	items, err := s.gateway.Notifications(ctx, resolved)
	if err != nil {
		return []backendapi.Notification{}, err
	}
	if items == nil {
		return []backendapi.Notification{}, nil
	}
	sort.SliceStable(items, func(i, j int) bool {
		ti, _ := backendapi.ParseTime(items[i].CreatedAt)
		tj, _ := backendapi.ParseTime(items[j].CreatedAt)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return !items[i].IsRead && items[j].IsRead
	})
	return items, nil
}

func (s service) markRead(ctx context.Context, notificationID string) error {
	resolved := strings.TrimSpace(notificationID)
	if resolved == "" {
		return apperrors.E(apperrors.KindNotFound, "notification not found")
	}
	return s.gateway.MarkNotificationRead(ctx, apiclient.ID(resolved))
}

func (s service) markAllRead(ctx context.Context, accountID apiclient.ID) error {
	resolved, err := requireAccountID(accountID)
	if err != nil {
		return err
	}
	return s.gateway.MarkAllNotificationsRead(ctx, resolved)
}

func unreadCount(items []backendapi.Notification) int {
	n := 0
	for _, item := range items {
		if !item.IsRead {
			n++
		}
	}
	return n
}
