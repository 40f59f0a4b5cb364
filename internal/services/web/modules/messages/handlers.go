package messages

import (
	"net/http"

	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/httpx"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/pagerender"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s}
}

// fatal reports errors that replace the whole page instead of a banner.
func fatal(err error) bool {
	switch apperrors.KindOf(err) {
	case apperrors.KindUnauthorized, apperrors.KindForbidden:
		return true
	}
	return false
}

func (h handlers) handleConversations(w http.ResponseWriter, r *http.Request) {
	h.writeConversations(w, r, http.StatusOK, startForm{}, nil, "")
}

func (h handlers) writeConversations(w http.ResponseWriter, r *http.Request, status int, form startForm, errs formvalidate.Errors, message string) {
	loc := h.PageLocalizer(r)
	p, conversations, err := h.service.conversations(httpx.RequestContext(r), h.ResolveRequestViewer(r))
	if fatal(err) {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      webtemplates.T(loc, "web.messages.title"),
		Heading:    webtemplates.T(loc, "web.messages.heading"),
		StatusCode: status,
		Body: conversationsBody(conversationsView{
			Banner:        h.LoadFailure(r, err),
			Participant:   p,
			Conversations: conversations,
			Page:          paging.FromRequest(r, routepath.PageQueryKey),
			Query:         r.URL.RawQuery,
			Form:          form,
			Errors:        errs,
			Message:       message,
		}, loc),
	})
}

func (h handlers) handleStart(w http.ResponseWriter, r *http.Request) {
	form := startForm{DoctorID: r.FormValue("doctor_id")}
	conversation, errs, err := h.service.start(httpx.RequestContext(r), h.ResolveRequestViewer(r), form)
	if fatal(err) {
		h.WriteError(w, r, err)
		return
	}
	if err == nil && len(errs) == 0 {
		httpx.WriteRedirect(w, r, routepath.Conversation(conversation.ConversationID.String()))
		return
	}
	status := http.StatusUnprocessableEntity
	message := ""
	if err != nil {
		status = modulehandler.FailureStatus(err)
		message = h.LoadFailure(r, err)
	}
	h.writeConversations(w, r, status, form, errs, message)
}

func (h handlers) handleThread(w http.ResponseWriter, r *http.Request) {
	h.writeThread(w, r, http.StatusOK, sendForm{}, nil, "")
}

func (h handlers) writeThread(w http.ResponseWriter, r *http.Request, status int, form sendForm, errs formvalidate.Errors, message string) {
	loc := h.PageLocalizer(r)
	conversationID := r.PathValue("conversationID")
	data, err := h.service.thread(httpx.RequestContext(r), h.ResolveRequestViewer(r), conversationID)
	if fatal(err) || apperrors.KindOf(err) == apperrors.KindNotFound {
		h.WriteError(w, r, err)
		return
	}
	h.WriteModulePage(w, r, pagerender.ModulePage{
		Title:         webtemplates.T(loc, "web.messages.thread.title"),
		Heading:       threadHeading(data, loc),
		HeadingAction: webtemplates.Link(webtemplates.LinkView{Label: webtemplates.T(loc, "web.messages.back"), URL: routepath.MessagesPrefix}),
		StatusCode:    status,
		Body: threadBody(threadView{
			ID:      conversationID,
			Data:    data,
			Banner:  h.LoadFailure(r, err),
			Form:    form,
			Errors:  errs,
			Message: message,
		}, loc),
	})
}

func (h handlers) handleSend(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("conversationID")
	form := sendForm{Content: r.FormValue("content")}
	errs, err := h.service.send(httpx.RequestContext(r), h.ResolveRequestViewer(r), conversationID, form)
	if fatal(err) || apperrors.KindOf(err) == apperrors.KindNotFound {
		h.WriteError(w, r, err)
		return
	}
	if err == nil && len(errs) == 0 {
		httpx.WriteRedirect(w, r, routepath.Conversation(conversationID)+"#latest")
		return
	}
	status := http.StatusUnprocessableEntity
	message := ""
	if err != nil {
		status = modulehandler.FailureStatus(err)
		message = h.LoadFailure(r, err)
	}
	h.writeThread(w, r, status, form, errs, message)
}
