package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthorized reports a missing, expired, or rejected credential.
// Callers must treat it as "clear the session and re-authenticate".
var ErrUnauthorized = errors.New("unauthorized")

// Kind classifies a failed request.
type Kind string

const (
	// KindNetwork: no usable response reached the client (transient).
	KindNetwork Kind = "network"
	// KindProtocol: a response arrived but could not be understood.
	KindProtocol Kind = "protocol"
	// KindServer: the service answered with a non-2xx status.
	KindServer Kind = "server"
)

// StatusError is the Failed(reason) outcome of a gateway call. Message is
// the server-supplied message when one was present, else a generic reason.
type StatusError struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *StatusError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s error (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *StatusError) Unwrap() error { return e.cause }

func networkError(msg string, cause error) *StatusError {
	return &StatusError{Kind: KindNetwork, Message: msg, cause: cause}
}

func protocolError(msg string, cause error) *StatusError {
	return &StatusError{Kind: KindProtocol, Message: msg, cause: cause}
}
