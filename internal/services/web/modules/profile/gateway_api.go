package profile

import "github.com/louisbranch/retina.care/internal/services/web/backendapi"

var _ ProfileGateway = (*backendapi.Client)(nil)

// NewAPIGateway returns the backend-backed gateway, or the unavailable
// fallback when client is nil.
func NewAPIGateway(client *backendapi.Client) ProfileGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return client
}
