package providers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"represent/pkg/platform/sentinel"
)

func TestProviderError(t *testing.T) {
	root := errors.New("connection reset")
	err := NewProviderError(ErrorProviderOutage, ProviderCivic, "request failed", root)

	assert.Equal(t, "provider google_civic [provider_outage]: request failed: connection reset", err.Error())
	assert.ErrorIs(t, err, root)
	assert.Equal(t, ErrorProviderOutage, GetCategory(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, ErrorInternal, GetCategory(root))
}

func TestProviderErrorMatchesSentinels(t *testing.T) {
	limited := fmt.Errorf("fetch: %w", NewProviderError(ErrorRateLimited, ProviderOpenStates, "429", nil))
	assert.ErrorIs(t, limited, sentinel.ErrRateLimited)
	assert.NotErrorIs(t, limited, sentinel.ErrUnavailable)

	assert.ErrorIs(t, NewProviderError(ErrorNotFound, ProviderCivic, "404", nil), sentinel.ErrNotFound)
	assert.ErrorIs(t, NewProviderError(ErrorTimeout, ProviderCivic, "slow", nil), sentinel.ErrTimeout)
	assert.ErrorIs(t, NewProviderError(ErrorProviderOutage, ProviderCivic, "502", nil), sentinel.ErrUnavailable)
	assert.NotErrorIs(t, NewProviderError(ErrorBadData, ProviderCivic, "json", nil), sentinel.ErrUnavailable)
}

func TestCategorizeStatus(t *testing.T) {
	tests := map[int]ErrorCategory{
		http.StatusNotFound:            ErrorNotFound,
		http.StatusTooManyRequests:     ErrorRateLimited,
		http.StatusUnauthorized:        ErrorAuthentication,
		http.StatusForbidden:           ErrorAuthentication,
		http.StatusGatewayTimeout:      ErrorTimeout,
		http.StatusInternalServerError: ErrorProviderOutage,
		http.StatusBadRequest:          ErrorProviderOutage,
	}
	for status, want := range tests {
		assert.Equal(t, want, CategorizeStatus(status), "status %d", status)
	}
}
