package publicauth

import (
	"context"
	"strings"

	"github.com/louisbranch/retina.care/internal/services/web/backendapi"
	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
	"github.com/louisbranch/retina.care/internal/services/web/platform/formvalidate"
	"github.com/louisbranch/retina.care/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/retina.care/internal/services/web/platform/role"
)

// AuthGateway performs the backend account calls.
type AuthGateway interface {
	Login(context.Context, backendapi.Credentials) (apiclient.Response, error)
	Register(context.Context, backendapi.Registration) (apiclient.Response, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, password string) error
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

type registerForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6"`
	Confirm  string `form:"confirm" validate:"required,eqfield=Password"`
	Role     string `form:"role" validate:"required,oneof=Patient Doctor ClinicManager"`
}

type forgotForm struct {
	Email string `form:"email" validate:"required,email"`
}

type resetForm struct {
	Token    string `form:"token" validate:"required"`
	Password string `form:"password" validate:"required,min=6"`
	Confirm  string `form:"confirm" validate:"required,eqfield=Password"`
}

type service struct {
	gateway AuthGateway
}

func newService(gateway AuthGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) login(ctx context.Context, form loginForm) (apiclient.Response, formvalidate.Errors, error) {
	form.Email = strings.TrimSpace(form.Email)
	if errs := formvalidate.Struct(form); errs != nil {
		return apiclient.Response{}, errs, nil
	}
	resp, err := s.gateway.Login(ctx, backendapi.Credentials{Email: form.Email, Password: form.Password})
	return resp, modulehandler.FieldErrors(err), err
}

func (s service) register(ctx context.Context, form registerForm) (apiclient.Response, formvalidate.Errors, error) {
	form.Email = strings.TrimSpace(form.Email)
	if errs := formvalidate.Struct(form); errs != nil {
		return apiclient.Response{}, errs, nil
	}
	selected, _ := role.Parse(form.Role)
	resp, err := s.gateway.Register(ctx, backendapi.Registration{
		Email:    form.Email,
		Password: form.Password,
		RoleID:   selected.ID(),
	})
	return resp, modulehandler.FieldErrors(err), err
}

func (s service) forgotPassword(ctx context.Context, form forgotForm) (formvalidate.Errors, error) {
	form.Email = strings.TrimSpace(form.Email)
	if errs := formvalidate.Struct(form); errs != nil {
		return errs, nil
	}
	err := s.gateway.ForgotPassword(ctx, form.Email)
	return modulehandler.FieldErrors(err), err
}

func (s service) resetPassword(ctx context.Context, form resetForm) (formvalidate.Errors, error) {
	form.Token = strings.TrimSpace(form.Token)
	if errs := formvalidate.Struct(form); errs != nil {
		return errs, nil
	}
	err := s.gateway.ResetPassword(ctx, form.Token, form.Password)
	return modulehandler.FieldErrors(err), err
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	return next
}
