// Package transport decorates outgoing API calls with the bearer credential
// and reacts to authorization failures centrally, so call sites never
// duplicate that logic.
package transport

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/x3alone/01blog/internal/client/session"
)

// Navigator routes the user to the error surface. The shell implements it by
// rendering the error view for the given status code (0 for unreachable).
type Navigator interface {
	ToError(code int)
}

// Authenticator is an http.RoundTripper that attaches the bearer credential
// to requests under the API namespace and converges every authorization
// failure shape onto the same session-clearing behavior:
//
//	401        → clear the session and stop, no retry
//	403        → mark banned, clear the session, navigate to the error view
//	2xx + body {status:403,...} → same as a hard 403
//	5xx / no response → navigate to the error view, session untouched
//
// Session is required; Base, Nav and Log may be left nil.
type Authenticator struct {
	Base    http.RoundTripper
	Session *session.Publisher
	Nav     Navigator
	Log     *zap.Logger
}

func (a *Authenticator) base() http.RoundTripper {
	if a.Base != nil {
		return a.Base
	}
	return http.DefaultTransport
}

func (a *Authenticator) log() *zap.Logger {
	if a.Log != nil {
		return a.Log
	}
	return zap.NewNop()
}

// RoundTrip implements http.RoundTripper.
func (a *Authenticator) RoundTrip(req *http.Request) (*http.Response, error) {
	api := strings.Contains(req.URL.Path, "/api/")
	if api {
		req = req.Clone(req.Context())
		req.Header.Set("X-Request-Id", uuid.NewString())
		if token := a.Session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := a.base().RoundTrip(req)
	if err != nil {
		if api {
			a.log().Warn("api request failed", zap.String("path", req.URL.Path), zap.Error(err))
			a.toError(0)
		}
		return nil, err
	}
	if !api {
		return resp, nil
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		a.log().Info("authentication rejected, clearing session", zap.String("path", req.URL.Path))
		_ = a.Session.Clear()

	case resp.StatusCode == http.StatusForbidden:
		a.terminateBanned(req.URL.Path)

	case resp.StatusCode >= 500:
		a.log().Warn("server fault", zap.String("path", req.URL.Path), zap.Int("status", resp.StatusCode))
		a.toError(resp.StatusCode)

	case resp.StatusCode < 300 && isJSON(resp):
		// The backend reports some authorization failures as 200 responses
		// with the real code embedded in the body. Peek and restore.
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, WrapTransport(readErr)
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))
		if env, ok := sniffEnvelope(body); ok && env.Status == http.StatusForbidden {
			a.terminateBanned(req.URL.Path)
		}
	}
	return resp, nil
}

func (a *Authenticator) terminateBanned(path string) {
	a.log().Info("account banned or forbidden, terminating session", zap.String("path", path))
	_ = a.Session.SetBanned(true)
	_ = a.Session.Clear()
	a.toError(http.StatusForbidden)
}

func (a *Authenticator) toError(code int) {
	if a.Nav != nil {
		a.Nav.ToError(code)
	}
}

func isJSON(resp *http.Response) bool {
	return strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json")
}
