// Package api provides typed access to the 01blog REST endpoints. Session
// semantics (bearer attachment, 401/403 handling) live in the transport
// authenticator; methods here only shape requests and normalize responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/x3alone/01blog/internal/client/session"
	"github.com/x3alone/01blog/internal/client/transport"
)

// Client performs JSON requests against the backend API namespace.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Publisher
	log     *zap.Logger
}

// New builds a client for the backend at baseURL. hc must carry the
// transport.Authenticator; sess receives the token on successful login.
func New(baseURL string, hc *http.Client, sess *session.Publisher, log *zap.Logger) *Client {
	return &Client{baseURL: baseURL, http: hc, session: sess, log: log}
}

// do issues one JSON request and decodes the response into out (nil for
// no-content endpoints). All failures come back as *transport.Error.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transport.WrapTransport(err)
	}
	return transport.Decode(resp, out)
}
