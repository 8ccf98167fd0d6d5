package simplybook

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMockMode is returned when a real provider call is attempted while the
// process runs in mock mode. It indicates a caller or config bug, not a
// transient condition, and must not be retried.
var ErrMockMode = errors.New("mock mode enabled, real SimplyBook calls are disabled")

// AuthError means the provider rejected the credentials, or the login call
// itself timed out.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("simplybook auth: %s: %v", e.Reason, e.Err)
	}
	return "simplybook auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// RPCError carries the error envelope the provider returned for one call.
type RPCError struct {
	Method  string
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("simplybook rpc %s: %d %s", e.Method, e.Code, e.Message)
}

// TransportError is a network or timeout failure before any provider answer.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("simplybook transport %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
