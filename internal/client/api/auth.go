package api

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/x3alone/01blog/internal/client/transport"
	"github.com/x3alone/01blog/internal/models"
)

// Login exchanges credentials for a bearer token and stores it in the
// session, so IsAuthenticated reflects the login before this call returns.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}

	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/login", models.Credentials{Username: username, Password: password}, &resp)
	if err != nil {
		return err
	}
	if resp.Token == "" {
		return &transport.Error{Kind: transport.KindServer, Message: "login response carried no token"}
	}
	if err := c.session.SetToken(resp.Token); err != nil {
		return err
	}
	c.log.Info("logged in", zap.String("username", c.session.Username()))
	return nil
}

// Register creates a new account. The backend answers 409 for a duplicate
// username, surfaced inline as a Conflict error.
func (c *Client) Register(ctx context.Context, username, password string) error {
	if err := validateCredentials(username, password); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/register", models.Credentials{Username: username, Password: password}, nil)
}

// Logout destroys the local session. There is no server-side call: the token
// is simply discarded.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// validateCredentials enforces the backend's length limits locally, so bad
// input never reaches the network.
func validateCredentials(username, password string) error {
	if len(username) < 4 {
		return transport.Invalid("username must be at least 4 characters long")
	}
	if len(password) < 8 {
		return transport.Invalid("password must be at least 8 characters long")
	}
	return nil
}
