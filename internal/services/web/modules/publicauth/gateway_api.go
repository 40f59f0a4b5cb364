package publicauth

import "github.com/louisbranch/retina.care/internal/services/web/backendapi"

var _ AuthGateway = (*backendapi.Client)(nil)

// NewAPIGateway returns the backend-backed gateway, or the unavailable
// fallback when client is nil.
func NewAPIGateway(client *backendapi.Client) AuthGateway {
	if client == nil {
		return unavailableGateway{}
	}
	return client
}
