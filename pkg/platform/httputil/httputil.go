// Package httputil centralizes JSON response writing and the translation of
// domain errors into the public error envelope.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "represent/pkg/domain-errors"
)

// ErrorBody is the single error object every failed request returns.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorResponse wraps ErrorBody under the "error" key.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into the error envelope. Errors that are not
// domain errors, and internal domain errors, are rendered without their cause.
func WriteError(w http.ResponseWriter, err error) {
	de, ok := dErrors.As(err)
	if !ok {
		de = dErrors.New(dErrors.CodeInternal, "an unexpected error occurred")
	}

	body := ErrorBody{
		Code:    string(de.Code),
		Message: de.Message,
		Details: de.Details,
	}
	if de.Code == dErrors.CodeInternal {
		body.Message = "an unexpected error occurred"
		body.Details = ""
	}

	WriteJSON(w, StatusFor(de.Code), ErrorResponse{Error: body})
}

// StatusFor maps a domain error code to its HTTP status.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeMissingParameter, dErrors.CodeInvalidAddress, dErrors.CodeInvalidParameter:
		return http.StatusBadRequest
	case dErrors.CodeAddressNotFound:
		return http.StatusNotFound
	case dErrors.CodeExternalServiceError, dErrors.CodeRateLimitExceeded:
		return http.StatusServiceUnavailable
	case dErrors.CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
