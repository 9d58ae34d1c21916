package providers

import (
	"errors"
	"fmt"

	"represent/pkg/platform/sentinel"
)

// ErrorCategory defines the normalized failure taxonomy
type ErrorCategory string

const (
	// ErrorTimeout indicates the provider took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the provider returned a body we could not decode
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates a rejected or missing API key
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorProviderOutage indicates the provider is unavailable (5xx, network)
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorNotFound indicates the provider could not resolve the input
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates the provider throttled us (HTTP 429)
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// Provider IDs used in errors, logs and metric labels.
const (
	ProviderCivic      = "google_civic"
	ProviderOpenStates = "openstates"
)

// ProviderError wraps provider failures with normalized categorization
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	StatusCode int // upstream HTTP status, 0 when no response was received
	Underlying error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.ProviderID, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.ProviderID, e.Category, e.Message)
}

// Unwrap supports error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// Is matches the infrastructure sentinel for the error's category.
func (e *ProviderError) Is(target error) bool {
	switch target {
	case sentinel.ErrNotFound:
		return e.Category == ErrorNotFound
	case sentinel.ErrRateLimited:
		return e.Category == ErrorRateLimited
	case sentinel.ErrTimeout:
		return e.Category == ErrorTimeout
	case sentinel.ErrUnavailable:
		return e.Category == ErrorProviderOutage
	}
	return false
}

// NewProviderError creates a new normalized provider error
func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
	}
}

// WithStatus records the upstream HTTP status on the error.
func (e *ProviderError) WithStatus(code int) *ProviderError {
	e.StatusCode = code
	return e
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// ErrAllProvidersFailed marks a lookup in which every jurisdiction fetch failed.
var ErrAllProvidersFailed = errors.New("all providers failed")
