package modulehandler

import (
	"errors"
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
)

// FieldErrors lifts backend 422 field messages onto a form.
func FieldErrors(err error) formvalidate.Errors {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return nil
	}
	return formvalidate.FromFields(apiErr.Fields)
}

// FailureStatus is the status for re-rendering a form after a backend
// failure. Upstream statuses outside the client range become 502.
func FailureStatus(err error) int {
	var carrier interface{ HTTPStatus() int }
	if errors.As(err, &carrier) {
		if s := carrier.HTTPStatus(); s >= 400 && s < 500 {
			return s
		}
	}
	return http.StatusBadGateway
}
