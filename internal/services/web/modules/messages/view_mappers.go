package messages

import (
	"github.com/a-h/templ"
	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/paging"
	"github.com/louisbranch/retina.care/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/retina.care/internal/services/web/templates"
)

type conversationsView struct {
	Banner        string
	Participant   participant
	Conversations []backendapi.Conversation
	Page          int
	Query         string
	Form          startForm
	Errors        formvalidate.Errors
	Message       string
}

type threadView struct {
	ID      string
	Data    threadData
	Banner  string
	Form    sendForm
	Errors  formvalidate.Errors
	Message string
}

func counterpartLabel(p participant, c backendapi.Conversation, loc webtemplates.Localizer) string {
	if p.Kind == senderDoctor {
		return webtemplates.T(loc, "web.messages.with_patient", p.counterpart(c).String())
	}
	return webtemplates.T(loc, "web.messages.with_doctor", p.counterpart(c).String())
}

func conversationsBody(view conversationsView, loc webtemplates.Localizer) templ.Component {
	p := view.Participant
	table := webtemplates.Table(webtemplates.TableView[backendapi.Conversation]{
		ID: "conversations-table",
		Columns: []webtemplates.Column[backendapi.Conversation]{
			webtemplates.ColumnText(webtemplates.T(loc, "web.messages.column_with"), func(c backendapi.Conversation) string { return counterpartLabel(p, c, loc) }),
			webtemplates.ColumnText(webtemplates.T(loc, "web.messages.column_started"), func(c backendapi.Conversation) string { return backendapi.DisplayTime(c.CreatedAt) }),
			{Header: webtemplates.T(loc, "web.messages.column_status"), Cell: func(c backendapi.Conversation) templ.Component {
				return webtemplates.StatusBadge(c.Status, loc)
			}},
			{Header: "", Class: "table-actions", Cell: func(c backendapi.Conversation) templ.Component {
				return webtemplates.Link(webtemplates.LinkView{Label: webtemplates.T(loc, "web.messages.open"), URL: routepath.Conversation(c.ConversationID.String())})
			}},
		},
		Rows:         view.Conversations,
		PageSize:     paging.Size(),
		CurrentPage:  view.Page,
		PageURL:      func(n int) string { return routepath.WithPage(routepath.MessagesPrefix, view.Query, n) },
		EmptyMessage: webtemplates.T(loc, "web.messages.empty"),
	}, loc)

	var start templ.Component
	if p.Kind == senderPatient {
		fields := []webtemplates.FieldView{
			{Name: "doctor_id", Label: webtemplates.T(loc, "web.messages.start.field_doctor"), Kind: webtemplates.FieldText, Value: view.Form.DoctorID, Hint: webtemplates.T(loc, "web.messages.start.doctor_hint"), Required: true},
		}
		start = webtemplates.Section(webtemplates.SectionView{ID: "start-conversation", Title: webtemplates.T(loc, "web.messages.start.heading")},
			webtemplates.Form(webtemplates.FormView{
				ID:          "start-form",
				Action:      routepath.MessagesStart,
				Fields:      webtemplates.ApplyErrors(fields, view.Errors, loc),
				SubmitLabel: webtemplates.T(loc, "web.messages.start.submit"),
				Error:       view.Message,
				Inline:      true,
			}),
		)
	}
	return webtemplates.Group(
		webtemplates.Banner("error", view.Banner),
		start,
		webtemplates.Section(webtemplates.SectionView{ID: "conversations"}, table),
	)
}

func threadHeading(data threadData, loc webtemplates.Localizer) string {
	if data.Conversation.ConversationID == "" {
		return webtemplates.T(loc, "web.messages.thread.heading")
	}
	return counterpartLabel(data.Participant, data.Conversation, loc)
}

func threadBody(view threadView, loc webtemplates.Localizer) templ.Component {
	own := view.Data.Participant.Kind
	messages := make([]webtemplates.MessageView, 0, len(view.Data.Messages))
	for _, m := range view.Data.Messages {
		messages = append(messages, webtemplates.MessageView{
			Author: m.SenderName,
			Body:   m.Content,
			SentAt: backendapi.DisplayTime(m.SentAt),
			Own:    m.SenderType == own,
		})
	}
	fields := []webtemplates.FieldView{
		{Name: "content", Label: webtemplates.T(loc, "web.messages.thread.field_content"), Kind: webtemplates.FieldTextarea, Value: view.Form.Content, Required: true},
	}
	return webtemplates.Group(
		webtemplates.Banner("error", view.Banner),
		webtemplates.Section(webtemplates.SectionView{ID: "thread"},
			webtemplates.MessageThread(messages, webtemplates.T(loc, "web.messages.thread.empty")),
		),
		webtemplates.Section(webtemplates.SectionView{ID: "reply"},
			webtemplates.Form(webtemplates.FormView{
				ID:          "send-form",
				Action:      routepath.ConversationSend(view.ID),
				Fields:      webtemplates.ApplyErrors(fields, view.Errors, loc),
				SubmitLabel: webtemplates.T(loc, "web.messages.thread.send"),
				Error:       view.Message,
			}),
		),
	)
}
