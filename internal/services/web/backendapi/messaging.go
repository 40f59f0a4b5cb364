package backendapi

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

// ConversationsByPatient lists a patient's conversations.
func (c *Client) ConversationsByPatient(ctx context.Context, patientID apiclient.ID) ([]Conversation, error) {
	if err := requireID("patient", patientID); err != nil {
		return nil, err
	}
	return getList[Conversation](ctx, c, resource("/conversations/patient", patientID.String()), "conversations")
}

// ConversationsByDoctor lists a doctor's conversations.
func (c *Client) ConversationsByDoctor(ctx context.Context, doctorID apiclient.ID) ([]Conversation, error) {
	if err := requireID("doctor", doctorID); err != nil {
		return nil, err
	}
	return getList[Conversation](ctx, c, resource("/conversations/doctor", doctorID.String()), "conversations")
}

// StartConversation opens a conversation between a patient and a doctor.
func (c *Client) StartConversation(ctx context.Context, in ConversationInput) (Conversation, error) {
	return postOne[Conversation](ctx, c, "/conversations", struct {
		ConversationInput
		Status string `json:"status"`
	}{ConversationInput: in, Status: "active"})
}

// Messages lists a conversation's messages, oldest first.
func (c *Client) Messages(ctx context.Context, conversationID apiclient.ID) ([]Message, error) {
	if err := requireID("conversation", conversationID); err != nil {
		return nil, err
	}
	return getList[Message](ctx, c, resource("/conversations", conversationID.String(), "messages"), "messages")
}

// SendMessage appends a message to a conversation.
func (c *Client) SendMessage(ctx context.Context, conversationID apiclient.ID, in MessageInput) (Message, error) {
	if err := requireID("conversation", conversationID); err != nil {
		return Message{}, err
	}
	return postOne[Message](ctx, c, resource("/conversations", conversationID.String(), "messages"), in)
}

// Notifications lists an account's notifications.
func (c *Client) Notifications(ctx context.Context, accountID apiclient.ID) ([]Notification, error) {
	if err := requireID("account", accountID); err != nil {
		return nil, err
	}
	return getList[Notification](ctx, c, resource("/notifications/account", accountID.String()), "notifications")
}

// UnreadNotifications lists an account's unread notifications.
func (c *Client) UnreadNotifications(ctx context.Context, accountID apiclient.ID) ([]Notification, error) {
	if err := requireID("account", accountID); err != nil {
		return nil, err
	}
	return getList[Notification](ctx, c, resource("/notifications/account", accountID.String(), "unread"), "notifications")
}

// MarkNotificationRead marks one notification read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID apiclient.ID) error {
	if err := requireID("notification", notificationID); err != nil {
		return err
	}
	_, err := c.put(ctx, resource("/notifications", notificationID.String(), "read"), nil)
	return err
}

// MarkAllNotificationsRead marks every notification of an account read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, accountID apiclient.ID) error {
	if err := requireID("account", accountID); err != nil {
		return err
	}
	_, err := c.put(ctx, resource("/notifications/account", accountID.String(), "read-all"), nil)
	return err
}
