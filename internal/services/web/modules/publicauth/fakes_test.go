package publicauth

import (
	"context"
	"net/http"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
)

// fakeGateway implements AuthGateway for tests with configurable replies and
// call counting.
type fakeGateway struct {
	loginResp    apiclient.Response
	loginErr     error
	registerResp apiclient.Response
	registerErr  error
	forgotErr    error
	resetErr     error

	calls        *int
	lastRegister *backendapi.Registration
}

var _ AuthGateway = fakeGateway{}

func (f fakeGateway) count() {
	if f.calls != nil {
		*f.calls++
	}
}

func (f fakeGateway) Login(context.Context, backendapi.Credentials) (apiclient.Response, error) {
	f.count()
	return f.loginResp, f.loginErr
}

func (f fakeGateway) Register(_ context.Context, reg backendapi.Registration) (apiclient.Response, error) {
	f.count()
	if f.lastRegister != nil {
		*f.lastRegister = reg
	}
	return f.registerResp, f.registerErr
}

func (f fakeGateway) ForgotPassword(context.Context, string) error {
	f.count()
	return f.forgotErr
}

func (f fakeGateway) ResetPassword(context.Context, string, string) error {
	f.count()
	return f.resetErr
}

// fakeSessions records what the handlers stored.
type fakeSessions struct {
	stored  bool
	cleared bool
	role    role.Role
	err     error
}

func (f *fakeSessions) SetAuthFromResponse(_ http.ResponseWriter, _ *http.Request, body []byte) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if len(body) == 0 {
		return false, nil
	}
	f.stored = true
	return true, nil
}

func (f *fakeSessions) Clear(http.ResponseWriter, *http.Request) error {
	f.cleared = true
	return nil
}

func (f *fakeSessions) Role(*http.Request) role.Role {
	return f.role
}
