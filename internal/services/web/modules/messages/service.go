package messages

import (
	"context"
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	module "github.com/louisbranch/retina.care/internal/services/web/module"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
)

// MessagesGateway performs the backend calls behind the messaging screens.
type MessagesGateway interface {
	PatientByAccount(ctx context.Context, accountID apiclient.ID) (backendapi.Patient, error)
	DoctorByAccount(ctx context.Context, accountID apiclient.ID) (backendapi.Doctor, error)
	ConversationsByPatient(ctx context.Context, patientID apiclient.ID) ([]backendapi.Conversation, error)
	ConversationsByDoctor(ctx context.Context, doctorID apiclient.ID) ([]backendapi.Conversation, error)
	StartConversation(ctx context.Context, in backendapi.ConversationInput) (backendapi.Conversation, error)
	Messages(ctx context.Context, conversationID apiclient.ID) ([]backendapi.Message, error)
	SendMessage(ctx context.Context, conversationID apiclient.ID, in backendapi.MessageInput) (backendapi.Message, error)
}

// Sender types recorded on messages.
const (
	senderPatient = "patient"
	senderDoctor  = "doctor"
)

// participant is the viewer's side of a conversation.
type participant struct {
	Kind string
	ID   apiclient.ID
	Name string
}

// counterpart returns the id of the other side of c.
func (p participant) counterpart(c backendapi.Conversation) apiclient.ID {
	if p.Kind == senderDoctor {
		return c.PatientID
	}
	return c.DoctorID
}

type sendForm struct {
	Content string `form:"content" validate:"required,max=2000"`
}

type startForm struct {
	DoctorID string `form:"doctor_id" validate:"required,max=64"`
}

type threadData struct {
	Participant  participant
	Conversation backendapi.Conversation
	Messages     []backendapi.Message
}

type service struct {
	gateway MessagesGateway
}

func newService(gateway MessagesGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func requireAccountID(viewer module.Viewer) (apiclient.ID, error) {
	accountID := apiclient.ID(strings.TrimSpace(viewer.AccountID.String()))
	if accountID == "" {
		return "", apperrors.EK(apperrors.KindUnauthorized, "core.error.session_required", "account id is required")
	}
	return accountID, nil
}

// participant resolves the viewer's patient or doctor profile. Other roles
// have no conversations.
func (s service) participant(ctx context.Context, viewer module.Viewer) (participant, error) {
	accountID, err := requireAccountID(viewer)
	if err != nil {
		return participant{}, err
	}
	switch viewer.Role {
	case role.Patient:
		patient, err := s.gateway.PatientByAccount(ctx, accountID)
		if err != nil {
			return participant{}, noProfile(err)
		}
		return participant{Kind: senderPatient, ID: patient.PatientID, Name: patient.PatientName}, nil
	case role.Doctor:
		doctor, err := s.gateway.DoctorByAccount(ctx, accountID)
		if err != nil {
			return participant{}, noProfile(err)
		}
		return participant{Kind: senderDoctor, ID: doctor.DoctorID, Name: doctor.DoctorName}, nil
	default:
		return participant{}, apperrors.EK(apperrors.KindForbidden, "web.messages.error_role", "role has no conversations")
	}
}

func noProfile(err error) error {
	if apperrors.KindOf(err) == apperrors.KindNotFound {
		return apperrors.EK(apperrors.KindNotFound, "web.messages.error_no_profile", "profile not found")
	}
	return err
}

func (s service) listFor(ctx context.Context, p participant) ([]backendapi.Conversation, error) {
	var (
		conversations []backendapi.Conversation
		err           error
	)
	if p.Kind == senderDoctor {
		conversations, err = s.gateway.ConversationsByDoctor(ctx, p.ID)
	} else {
		conversations, err = s.gateway.ConversationsByPatient(ctx, p.ID)
	}
	if err != nil {
		return []backendapi.Conversation{}, err
	}
	backendapi.NewestFirst(conversations, func(c backendapi.Conversation) string { return c.CreatedAt })
	return conversations, nil
}

func (s service) conversations(ctx context.Context, viewer module.Viewer) (participant, []backendapi.Conversation, error) {
	p, err := s.participant(ctx, viewer)
	if err != nil {
		return participant{}, []backendapi.Conversation{}, err
	}
	conversations, err := s.listFor(ctx, p)
	return p, conversations, err
}

// owned returns the viewer's conversation with the given id. A conversation
// the viewer is not part of is reported as missing.
func (s service) owned(ctx context.Context, viewer module.Viewer, conversationID string) (participant, backendapi.Conversation, error) {
	id := strings.TrimSpace(conversationID)
	if id == "" {
		return participant{}, backendapi.Conversation{}, errConversationNotFound()
	}
	p, err := s.participant(ctx, viewer)
	if err != nil {
		return participant{}, backendapi.Conversation{}, err
	}
	conversations, err := s.listFor(ctx, p)
	if err != nil {
		return p, backendapi.Conversation{}, err
	}
	for _, c := range conversations {
		if c.ConversationID.String() == id {
			return p, c, nil
		}
	}
	return p, backendapi.Conversation{}, errConversationNotFound()
}

func errConversationNotFound() error {
	return apperrors.EK(apperrors.KindNotFound, "web.messages.error_not_found", "conversation not found")
}

func (s service) thread(ctx context.Context, viewer module.Viewer, conversationID string) (threadData, error) {
	p, conversation, err := s.owned(ctx, viewer, conversationID)
	if err != nil {
		return threadData{Participant: p}, err
	}
	data := threadData{Participant: p, Conversation: conversation}
	data.Messages, err = s.gateway.Messages(ctx, conversation.ConversationID)
	if err != nil {
		data.Messages = []backendapi.Message{}
	}
	return data, err
}

func (s service) send(ctx context.Context, viewer module.Viewer, conversationID string, form sendForm) (formvalidate.Errors, error) {
	form.Content = strings.TrimSpace(form.Content)
	if errs := formvalidate.Struct(form); errs != nil {
		return errs, nil
	}
	p, conversation, err := s.owned(ctx, viewer, conversationID)
	if err != nil {
		return nil, err
	}
	_, err = s.gateway.SendMessage(ctx, conversation.ConversationID, backendapi.MessageInput{
		SenderType: p.Kind,
		SenderName: p.Name,
		Content:    form.Content,
	})
	return modulehandler.FieldErrors(err), err
}

// start opens a conversation with a doctor, or returns the patient's
// existing one with that doctor.
func (s service) start(ctx context.Context, viewer module.Viewer, form startForm) (backendapi.Conversation, formvalidate.Errors, error) {
	if viewer.Role != role.Patient {
		return backendapi.Conversation{}, nil, apperrors.EK(apperrors.KindForbidden, "web.messages.error_start_role", "only patients start conversations")
	}
	form.DoctorID = strings.TrimSpace(form.DoctorID)
	if errs := formvalidate.Struct(form); errs != nil {
		return backendapi.Conversation{}, errs, nil
	}
	p, err := s.participant(ctx, viewer)
	if err != nil {
		return backendapi.Conversation{}, nil, err
	}
	doctorID := apiclient.ID(form.DoctorID)
	existing, err := s.listFor(ctx, p)
	if err != nil {
		return backendapi.Conversation{}, nil, err
	}
	for _, c := range existing {
		if c.DoctorID == doctorID {
			return c, nil, nil
		}
	}
	conversation, err := s.gateway.StartConversation(ctx, backendapi.ConversationInput{PatientID: p.ID, DoctorID: doctorID})
	return conversation, modulehandler.FieldErrors(err), err
}
