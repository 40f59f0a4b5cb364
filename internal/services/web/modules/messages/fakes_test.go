package messages

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

type fakeGateway struct {
	patient       backendapi.Patient
	patientErr    error
	doctor        backendapi.Doctor
	doctorErr     error
	conversations []backendapi.Conversation
	listErr       error
	messages      []backendapi.Message
	messagesErr   error
	startErr      error
	sendErr       error

	started *[]backendapi.ConversationInput
	sent    *[]backendapi.MessageInput
}

var _ MessagesGateway = fakeGateway{}

func (f fakeGateway) PatientByAccount(context.Context, apiclient.ID) (backendapi.Patient, error) {
	return f.patient, f.patientErr
}

func (f fakeGateway) DoctorByAccount(context.Context, apiclient.ID) (backendapi.Doctor, error) {
	return f.doctor, f.doctorErr
}

func (f fakeGateway) ConversationsByPatient(_ context.Context, patientID apiclient.ID) ([]backendapi.Conversation, error) {
	var out []backendapi.Conversation
	for _, c := range f.conversations {
		if c.PatientID == patientID {
			out = append(out, c)
		}
	}
	return out, f.listErr
}

func (f fakeGateway) ConversationsByDoctor(_ context.Context, doctorID apiclient.ID) ([]backendapi.Conversation, error) {
	var out []backendapi.Conversation
	for _, c := range f.conversations {
		if c.DoctorID == doctorID {
			out = append(out, c)
		}
	}
	return out, f.listErr
}

func (f fakeGateway) StartConversation(_ context.Context, in backendapi.ConversationInput) (backendapi.Conversation, error) {
	if f.started != nil {
		*f.started = append(*f.started, in)
	}
	if f.startErr != nil {
		return backendapi.Conversation{}, f.startErr
	}
	return backendapi.Conversation{ConversationID: "conv-new", PatientID: in.PatientID, DoctorID: in.DoctorID, Status: "active"}, nil
}

func (f fakeGateway) Messages(context.Context, apiclient.ID) ([]backendapi.Message, error) {
	return f.messages, f.messagesErr
}

func (f fakeGateway) SendMessage(_ context.Context, conversationID apiclient.ID, in backendapi.MessageInput) (backendapi.Message, error) {
	if f.sent != nil {
		*f.sent = append(*f.sent, in)
	}
	if f.sendErr != nil {
		return backendapi.Message{}, f.sendErr
	}
	return backendapi.Message{MessageID: "m-new", ConversationID: conversationID, SenderType: in.SenderType, SenderName: in.SenderName, Content: in.Content}, nil
}
