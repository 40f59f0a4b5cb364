package notifications

import (
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

type notificationRow struct {
	ID           string
	Content      string
	TypeLabel    string
	CreatedLabel string
	Read         bool
}

type notificationsView struct {
	Banner string
	Rows   []notificationRow
	Unread int
	Page   int
	Query  string
}

func (h handlers) now() time.Time {
	if h.nowFunc != nil {
		return h.nowFunc()
	}
	return time.Now()
}

func (h handlers) notificationRows(items []backendapi.Notification, loc webtemplates.Localizer) []notificationRow {
	rows := make([]notificationRow, 0, len(items))
	for _, item := range items {
		itemID := strings.TrimSpace(item.NotificationID.String())
		if itemID == "" {
			continue
		}
		createdAt, _ := backendapi.ParseTime(item.CreatedAt)
		rows = append(rows, notificationRow{
			ID:           itemID,
			Content:      notificationBody(item.Content, loc),
			TypeLabel:    notificationTypeLabel(item.NotificationType, loc),
			CreatedLabel: notificationCreatedLabel(createdAt, h.now(), loc),
			Read:         item.IsRead,
		})
	}
	return rows
}

func notificationsBody(view notificationsView, loc webtemplates.Localizer) templ.Component {
	table := webtemplates.Table(webtemplates.TableView[notificationRow]{
		ID: "notifications-table",
		Columns: []webtemplates.Column[notificationRow]{
			{Header: webtemplates.T(loc, "web.notifications.column_status"), Cell: func(row notificationRow) templ.Component {
				if row.Read {
					return webtemplates.Badge(webtemplates.T(loc, "web.notifications.status_read"), "muted")
				}
				return webtemplates.Badge(webtemplates.T(loc, "web.notifications.status_unread"), "info")
			}},
			webtemplates.ColumnText(webtemplates.T(loc, "web.notifications.column_type"), func(row notificationRow) string { return row.TypeLabel }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.notifications.column_content"), func(row notificationRow) string { return row.Content }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.notifications.column_received"), func(row notificationRow) string { return row.CreatedLabel }),
			{Header: "", Class: "table-actions", Cell: func(row notificationRow) templ.Component {
				if row.Read {
					return nil
				}
				return webtemplates.PostButton(webtemplates.PostButtonView{
					Action: routepath.NotificationRead(row.ID),
					Label:  webtemplates.T(loc, "web.notifications.mark_read"),
					Hidden: map[string]string{routepath.PageQueryKey: strconv.Itoa(view.Page)},
				})
			}},
		},
		Rows:         view.Rows,
		PageSize:     paging.Size(),
		CurrentPage:  view.Page,
		PageURL:      func(page int) string { return routepath.WithPage(routepath.NotificationsPrefix, view.Query, page) },
		EmptyMessage: webtemplates.T(loc, "web.notifications.empty"),
	}, loc)
	return webtemplates.Group(
		webtemplates.Banner("error", view.Banner),
		webtemplates.Section(webtemplates.SectionView{ID: "notifications-root", Title: webtemplates.T(loc, "web.notifications.unread_count", view.Unread)}, table),
	)
}

func readAllAction(view notificationsView, page int, loc webtemplates.Localizer) templ.Component {
	if view.Unread == 0 {
		return nil
	}
	return webtemplates.PostButton(webtemplates.PostButtonView{
		Action: routepath.NotificationsReadAll,
		Label:  webtemplates.T(loc, "web.notifications.mark_all_read"),
		Tone:   "primary",
		Hidden: map[string]string{routepath.PageQueryKey: strconv.Itoa(page)},
	})
}

func notificationBody(value string, loc webtemplates.Localizer) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return webtemplates.T(loc, "web.notifications.detail_empty")
	}
	return value
}

func notificationTypeLabel(kind string, loc webtemplates.Localizer) string {
	switch kind = strings.ToLower(strings.TrimSpace(kind)); kind {
	case "analysis", "review", "report", "message", "payment", "system":
		return webtemplates.T(loc, "web.notifications.type_"+kind)
	case "":
		return webtemplates.T(loc, "web.notifications.type_system")
	default:
		return kind
	}
}

func notificationCreatedLabel(createdAt time.Time, now time.Time, loc webtemplates.Localizer) string {
	if createdAt.IsZero() {
		return webtemplates.T(loc, "web.notifications.time.just_now")
	}
	delta := now.Sub(createdAt.UTC())
	if delta < 0 {
		delta = 0
	}
	if delta < time.Minute {
		return webtemplates.T(loc, "web.notifications.time.just_now")
	}
	if delta < time.Hour {
		minutes := int(delta / time.Minute)
		if minutes <= 1 {
			return webtemplates.T(loc, "web.notifications.time.minute_ago")
		}
		return webtemplates.T(loc, "web.notifications.time.minutes_ago", minutes)
	}
	if delta < 24*time.Hour {
		hours := int(delta / time.Hour)
		if hours <= 1 {
			return webtemplates.T(loc, "web.notifications.time.hour_ago")
		}
		return webtemplates.T(loc, "web.notifications.time.hours_ago", hours)
	}
	days := int(delta / (24 * time.Hour))
	if days <= 1 {
		return webtemplates.T(loc, "web.notifications.time.day_ago")
	}
	return webtemplates.T(loc, "web.notifications.time.days_ago", days)
}
