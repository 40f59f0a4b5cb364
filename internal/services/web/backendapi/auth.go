package backendapi

import (
	"context"

	"github.com/louisbranch/retina.care/internal/services/web/platform/apiclient"
)

// Credentials signs an account in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration creates an account.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int    `json:"role_id"`
}

// Login returns the raw auth response so the session layer can read the
// token and account from it.
func (c *Client) Login(ctx context.Context, creds Credentials) (apiclient.Response, error) {
	return c.post(ctx, "/auth/login", creds, apiclient.WithoutAuth())
}

// Register creates an account and returns the raw auth response.
func (c *Client) Register(ctx context.Context, reg Registration) (apiclient.Response, error) {
	return c.post(ctx, "/auth/register", reg, apiclient.WithoutAuth())
}

// ForgotPassword requests a reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, apiclient.WithoutAuth())
	return err
}

// ResetPassword sets a new password with a reset token.
func (c *Client) ResetPassword(ctx context.Context, token string, password string) error {
	_, err := c.post(ctx, "/auth/reset-password", map[string]string{
		"token":        token,
		"new_password": password,
	}, apiclient.WithoutAuth())
	return err
}

// Me returns the signed-in account.
func (c *Client) Me(ctx context.Context) (Account, error) {
	return getOne[Account](ctx, c, "/auth/me")
}
