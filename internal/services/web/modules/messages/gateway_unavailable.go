package messages

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	apperrors "github.com/louisbranch/retina.care/internal/services/web/platform/errors"
)

type unavailableGateway struct{}

func errUnavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "messaging service is not configured")
}

func (unavailableGateway) PatientByAccount(context.Context, apiclient.ID) (backendapi.Patient, error) {
	return backendapi.Patient{}, errUnavailable()
}

func (unavailableGateway) DoctorByAccount(context.Context, apiclient.ID) (backendapi.Doctor, error) {
	return backendapi.Doctor{}, errUnavailable()
}

func (unavailableGateway) ConversationsByPatient(context.Context, apiclient.ID) ([]backendapi.Conversation, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) ConversationsByDoctor(context.Context, apiclient.ID) ([]backendapi.Conversation, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) StartConversation(context.Context, backendapi.ConversationInput) (backendapi.Conversation, error) {
	return backendapi.Conversation{}, errUnavailable()
}

func (unavailableGateway) Messages(context.Context, apiclient.ID) ([]backendapi.Message, error) {
	return nil, errUnavailable()
}

func (unavailableGateway) SendMessage(context.Context, apiclient.ID, backendapi.MessageInput) (backendapi.Message, error) {
	return backendapi.Message{}, errUnavailable()
}
