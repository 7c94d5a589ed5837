// Package errs defines the failure taxonomy shared by both transports.
//
// Every operation failure is one of three kinds: Validation (caller input
// malformed), Service (upstream rejected the call or returned nothing
// usable) or Unexpected (everything else). Normalize converts any error
// into one stable wire shape so the MCP and HTTP surfaces render failures
// identically.
package errs

import (
	"fmt"
	"net/http"
)

// Validation signals that caller input failed schema validation.
type Validation struct {
	Message string
	Details any // field-level diagnostics, safe to return to the caller
}

func (e *Validation) Error() string { return e.Message }

func NewValidation(msg string) *Validation {
	return &Validation{Message: msg}
}

func Validationf(format string, args ...any) *Validation {
	return &Validation{Message: fmt.Sprintf(format, args...)}
}

// Service signals that the upstream API returned an explicit error object
// or no usable payload at all.
type Service struct {
	Message string
	Status  int    // HTTP-style status from upstream, 0 => 500
	Code    string // upstream error code, optional
	Details any    // upstream error payload, for diagnostics
}

func (e *Service) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}

// Unexpected wraps failures outside the first two kinds (network errors,
// programming defects). The wrapped error is never shown to callers.
type Unexpected struct {
	Err error
}

func (e *Unexpected) Error() string {
	if e.Err == nil {
		return "unexpected error"
	}
	return e.Err.Error()
}

func (e *Unexpected) Unwrap() error { return e.Err }

// Normalized is the stable error shape carried by both transports:
// the HTTP surface renders it as {error: {...}}, the MCP surface as the
// structured payload of a failed tool result.
type Normalized struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Status  int    `json:"status"`
	Details any    `json:"details,omitempty"`
}

// Normalize classifies any error into a Normalized shape. It is total:
// it never panics and always produces a usable result, including for nil.
// Unexpected errors come back with a generic message so internal detail
// never reaches the caller.
func Normalize(err error) Normalized {
	switch e := err.(type) {
	case nil:
		return Normalized{Message: "unknown error", Status: http.StatusInternalServerError}
	case *Validation:
		return Normalized{
			Message: e.Message,
			Status:  http.StatusBadRequest,
			Details: e.Details,
		}
	case *Service:
		status := e.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		msg := e.Message
		if msg == "" {
			msg = "upstream error"
		}
		return Normalized{
			Message: msg,
			Code:    e.Code,
			Status:  status,
			Details: e.Details,
		}
	case *Unexpected:
		return Normalized{Message: "internal server error", Status: http.StatusInternalServerError}
	default:
		return Normalized{Message: "internal server error", Status: http.StatusInternalServerError}
	}
}
