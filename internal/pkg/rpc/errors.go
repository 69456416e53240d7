package rpc

import (
	"errors"
	"fmt"

	"github.com/piresc/tuitionpay/internal/pkg/constants"
)

// Transport failures. A call that returns one of these never reached a handler
// or never got a usable reply, so the remote side effect is unknown.
var (
	ErrTimeout        = errors.New("rpc: request timed out")
	ErrNoResponders   = errors.New("rpc: no responders available")
	ErrMalformedReply = errors.New("rpc: malformed reply")
	ErrConnection     = errors.New("rpc: broker connection error")
	ErrCircuitOpen    = errors.New("rpc: circuit open")
)

// Retryable reports whether another attempt of the call may succeed. An open
// circuit or a malformed reply will not change on retry.
func Retryable(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrNoResponders) ||
		errors.Is(err, ErrConnection)
}

// Error is a business failure returned by a handler and carried in the reply envelope
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a handler failure with a code the caller can branch on
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// BadRequest is returned by handlers for undecodable or invalid payloads
func BadRequest(message string) *Error {
	return NewError(constants.CodeBadRequest, message)
}
