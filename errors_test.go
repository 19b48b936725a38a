package edgee

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrEmptyInput(t *testing.T) {
	t.Run("is a sentinel error", func(t *testing.T) {
		assert.Error(t, ErrEmptyInput)
		assert.Equal(t, "empty input", ErrEmptyInput.Error())
	})

	t.Run("can be compared with errors.Is", func(t *testing.T) {
		err := fmt.Errorf("send: %w", ErrEmptyInput)
		assert.True(t, errors.Is(err, ErrEmptyInput))
	})
}

func TestCategorizeStatus(t *testing.T) {
	tests := []struct {
		code     int
		expected ErrorCategory
	}{
		{429, ErrorTransient},
		{408, ErrorTransient},
		{500, ErrorTransient},
		{503, ErrorTransient},
		{401, ErrorPermanent},
		{403, ErrorPermanent},
		{400, ErrorUserInput},
		{404, ErrorUserInput},
		{422, ErrorUserInput},
		{418, ErrorPermanent},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeStatus(tt.code))
		})
	}
}

func TestNewStatusError(t *testing.T) {
	t.Run("categorizes by status code", func(t *testing.T) {
		cause := errors.New("unauthorized")
		err := NewStatusError("gateway error", 401, 0, cause)

		assert.Equal(t, ErrorPermanent, err.Category())
		assert.False(t, err.Retryable())
		assert.Equal(t, 401, err.StatusCode())
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "gateway error: unauthorized", err.Error())
	})

	t.Run("retry after marks transient", func(t *testing.T) {
		err := NewStatusError("busy", 400, 3*time.Second, nil)

		assert.Equal(t, ErrorTransient, err.Category())
		assert.Equal(t, 3*time.Second, err.RetryAfter())
		assert.Equal(t, "busy", err.Error())
	})

	t.Run("every status category", func(t *testing.T) {
		assert.True(t, IsTransient(NewStatusError("overloaded", 503, 0, nil)))
		assert.True(t, IsUserInput(NewStatusError("too large", 413, 0, nil)))
		assert.True(t, IsPermanent(NewStatusError("teapot", 418, 0, nil)))
	})
}

func TestCategoryHelpers(t *testing.T) {
	wrapped := fmt.Errorf("stream: %w", NewTransientErrorWithRetry("rate limited", 429, time.Second, nil))

	assert.True(t, IsTransient(wrapped))
	assert.False(t, IsPermanent(wrapped))
	assert.False(t, IsUserInput(wrapped))
	assert.Equal(t, 429, StatusCodeOf(wrapped))
	assert.Equal(t, time.Second, RetryAfterOf(wrapped))

	plain := errors.New("connection reset")
	assert.False(t, IsTransient(plain))
	assert.Zero(t, StatusCodeOf(plain))
	assert.Zero(t, RetryAfterOf(plain))

	require.True(t, IsUserInput(NewUserInputError("bad", 400, nil)))
	require.True(t, IsPermanent(NewPermanentError("nope", 403, nil)))
}
