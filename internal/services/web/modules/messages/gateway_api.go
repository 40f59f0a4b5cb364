package messages

import "github.com/louisbranch/retina.care/internal/services/web/backendapi"

var _ MessagesGateway = (*backendapi.Client)(nil)

// NewAPIGateway returns the backend-backed gateway, or the unavailable
// fallback when client is nil.
func NewAPIGateway(client *backendapi.Client) MessagesGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return client
}
