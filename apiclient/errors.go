package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// DefaultErrorMessage is used when a failure envelope carries no msg.
const DefaultErrorMessage = "api returned an error"

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid api client configuration")
	// ErrUnexpectedStatus indicates a non-2xx response without a failure envelope
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

// TransportError represents a failure below the envelope layer: the request
// could not be sent, timed out, or came back with a non-2xx status and no
// failure envelope. The raw body is logged, never included here.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transport error: %s %s: status %d: %v", e.Method, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether the failure was a timeout
func (e *TransportError) IsTimeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// RemoteError is an application failure reported through the envelope.
type RemoteError struct {
	Code          int
	StatusMessage string
	Payload       *Envelope
}

// Error returns the backend's failure message
func (e *RemoteError) Error() string {
	return e.StatusMessage
}

func newRemoteError(env *Envelope) *RemoteError {
	msg := env.Msg
	if msg == "" {
		msg = DefaultErrorMessage
	}
	return &RemoteError{
		Code:          env.Code,
		StatusMessage: msg,
		Payload:       env,
	}
}

// MalformedResponseError indicates a successful envelope whose data could
// not be decoded into the expected type.
type MalformedResponseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s: %v", e.Path, e.Reason, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsRemote checks if err is, or wraps, a *RemoteError
func IsRemote(err error) bool {
	var remote *RemoteError
	return errors.As(err, &remote)
}

// IsTransport checks if err is, or wraps, a *TransportError
func IsTransport(err error) bool {
	var transport *TransportError
	return errors.As(err, &transport)
}
