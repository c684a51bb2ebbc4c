// Package domainerrors carries machine-readable error codes from services to
// transports. Services construct coded errors; handlers translate the code to a
// status without inspecting messages.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies an error kind.
type Code string

const (
	CodeInvalidTransition Code = "invalid_transition"
	CodeNotFound          Code = "not_found"
	CodeAlreadyLinked     Code = "already_linked"
	CodeStoreUnavailable  Code = "store_unavailable"
	CodeValidation        Code = "validation_error"
	CodeBadRequest        Code = "bad_request"
	CodeUnauthorized      Code = "unauthorized"
	CodeTimeout           Code = "timeout"
	CodeInternal          Code = "internal_error"
)

// Error is a coded domain error. Err keeps the underlying cause for logs and
// errors.Is/As chains; it is never rendered to clients.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may retry the same call unchanged.
func (e *Error) Retryable() bool {
	switch e.Code {
	case CodeStoreUnavailable, CodeTimeout:
		return true
	default:
		return false
	}
}

// New creates a coded error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// As extracts the outermost coded error from err.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Is reports whether the outermost coded error in err has the given code.
func Is(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// HasCode reports whether any coded error in the chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// IsRetryable reports whether err is a coded error that may be retried.
func IsRetryable(err error) bool {
	de, ok := As(err)
	return ok && de.Retryable()
}

// ToHTTPStatus maps a code to the HTTP status used by handlers.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyLinked, CodeInvalidTransition:
		return http.StatusConflict
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
