// Package domainerrors defines the stable, machine-readable error contract of
// the service. Services return *Error values (usually via New or Wrap) and the
// transport layer translates the Code into an HTTP status and envelope.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is the machine-readable error code surfaced to API callers.
type Code string

const (
	CodeMissingParameter     Code = "MISSING_PARAMETER"
	CodeInvalidAddress       Code = "INVALID_ADDRESS"
	CodeInvalidParameter     Code = "INVALID_PARAMETER"
	CodeAddressNotFound      Code = "ADDRESS_NOT_FOUND"
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"
	CodeTooManyRequests      Code = "TOO_MANY_REQUESTS"
	CodeInternal             Code = "INTERNAL_ERROR"
)

// Error is a domain error carrying a Code, a user-facing message and optional
// details. Err holds the underlying cause and is never rendered to callers.
type Error struct {
	Code    Code
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of the error with details attached.
func (e *Error) WithDetails(details string) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// New creates a domain error without an underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// As extracts the outermost domain error from err.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err is (or wraps) a domain error with the given code.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// CodeOf returns the code of err, or CodeInternal for anything that is not a
// domain error.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}

// Is is errors.Is re-exported so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
