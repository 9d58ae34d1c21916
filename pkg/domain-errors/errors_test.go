package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("direct domain error", func(t *testing.T) {
		err := New(CodeAddressNotFound, "no divisions")
		assert.True(t, HasCode(err, CodeAddressNotFound))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("wrapped by fmt", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", New(CodeRateLimitExceeded, "slow down"))
		assert.True(t, HasCode(err, CodeRateLimitExceeded))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeMissingParameter, CodeOf(New(CodeMissingParameter, "address is required")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeExternalServiceError, "civic lookup failed")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "EXTERNAL_SERVICE_ERROR")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestWithDetails(t *testing.T) {
	base := New(CodeInvalidAddress, "address too long")
	detailed := base.WithDetails("provided 501 characters")

	assert.Empty(t, base.Details)
	assert.Equal(t, "provided 501 characters", detailed.Details)
	assert.Equal(t, base.Code, detailed.Code)
}
