package notifications

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/platform/pagerender"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
	nowFunc func() time.Time
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s, nowFunc: time.Now}
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	loc := h.PageLocalizer(r)
	viewer := h.ResolveRequestViewer(r)
	items, err := h.service.listNotifications(httpx.RequestContext(r), viewer.AccountID)
	if modulehandler.Unauthorized(err) != nil {
		h.WriteError(w, r, err)
		return
	}
	page := paging.FromRequest(r, routepath.PageQueryKey)
	view := notificationsView{
		Banner: h.LoadFailure(r, err),
		Rows:   h.notificationRows(items, loc),
		Unread: unreadCount(items),
		Page:   page,
		Query:  r.URL.RawQuery,
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:         webtemplates.T(loc, "web.notifications.title"),
		Heading:       webtemplates.T(loc, "web.notifications.heading"),
		HeadingAction: readAllAction(view, page, loc),
		StatusCode:    http.StatusOK,
		Body:          notificationsBody(view, loc),
	})
}

func (h handlers) handleReadRoute(w http.ResponseWriter, r *http.Request) {
	notificationID := strings.TrimSpace(r.PathValue("notificationID"))
	if notificationID == "" {
		h.WriteNotFound(w, r)
		return
	}
	err := h.service.markRead(httpx.RequestContext(r), notificationID)
	h.FinishCommand(w, r, returnURL(r), err, "web.notifications.notice_read")
}

func (h handlers) handleReadAll(w http.ResponseWriter, r *http.Request) {
	err := h.service.markAllRead(httpx.RequestContext(r), h.ResolveRequestViewer(r).AccountID)
	h.FinishCommand(w, r, routepath.NotificationsPrefix, err, "web.notifications.notice_all_read")
}

// returnURL keeps the list page the command was issued from.
func returnURL(r *http.Request) string {
	page, _ := strconv.Atoi(strings.TrimSpace(r.FormValue(routepath.PageQueryKey)))
	return routepath.WithPage(routepath.NotificationsPrefix, "", page)
}
