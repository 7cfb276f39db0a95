package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Kind tags the normalized failure categories of an API call. Both hard
// transport-level errors and error envelopes embedded in 2xx bodies are
// mapped onto the same set before any business logic sees them.
type Kind int

const (
	// KindInvalid is a local validation failure rejected before any network call.
	KindInvalid Kind = iota
	// KindUnauthenticated is a 401: the local session is no longer valid.
	KindUnauthenticated
	// KindForbidden is a 403: the account is banned or lacks permissions.
	KindForbidden
	// KindNotFound is a 404, surfaced inline with no session impact.
	KindNotFound
	// KindConflict is a 409, e.g. a duplicate username.
	KindConflict
	// KindServer is any 5xx fault.
	KindServer
	// KindTransport means no response was reachable at all.
	KindTransport
)

// Error is the single tagged error-result type for API failures.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return "request failed"
}

// KindOf classifies err; ok is false for errors that are not API errors.
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// Invalid builds a local validation error that never reached the network.
func Invalid(msg string) *Error {
	return &Error{Kind: KindInvalid, Message: msg}
}

// WrapTransport normalizes a connection-level failure.
func WrapTransport(err error) *Error {
	return &Error{Kind: KindTransport, Message: fmt.Sprintf("server unreachable: %v", err)}
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthenticated
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500:
		return KindServer
	default:
		return KindInvalid
	}
}

// envelope mirrors the backend's JSON error body. Some endpoints return it
// with a 200 transport status and the real code in the "status" field.
type envelope struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func fromStatus(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: kindForStatus(status), Status: status, Message: message}
}

// sniffEnvelope reports the embedded error envelope of body, if any.
func sniffEnvelope(body []byte) (envelope, bool) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, false
	}
	return env, env.Status >= 400
}

// Decode consumes resp, normalizing every failure shape into *Error. On
// success the body is unmarshalled into out when out is non-nil; empty bodies
// and 204 responses are fine with a nil out.
func Decode(resp *http.Response, out any) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return WrapTransport(err)
	}

	if resp.StatusCode >= 400 {
		env, _ := sniffEnvelope(body)
		msg := env.Message
		if msg == "" {
			msg = string(bytes.TrimSpace(body))
		}
		return fromStatus(resp.StatusCode, msg)
	}

	if env, ok := sniffEnvelope(body); ok {
		return fromStatus(env.Status, env.Message)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}
