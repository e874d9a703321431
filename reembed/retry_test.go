package reembed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff_Success(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	err := RetryWithBackoff(context.Background(), operation, 3, 10*time.Millisecond, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, attempts, "should succeed on first try")
}

func TestRetryWithBackoff_EventualSuccess(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	err := RetryWithBackoff(context.Background(), operation, 5, 10*time.Millisecond, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts, "should succeed on third attempt")
}

func TestRetryWithBackoff_AllAttemptsFail(t *testing.T) {
	attempts := 0
	expectedErr := errors.New("persistent error")
	operation := func() error {
		attempts++
		return expectedErr
	}

	err := RetryWithBackoff(context.Background(), operation, 3, 10*time.Millisecond, nil)
	require.Error(t, err)
	assert.Equal(t, expectedErr, err, "should return the original error")
	assert.Equal(t, 3, attempts, "should attempt exactly maxAttempts times")
}

func TestRetryWithBackoff_NonRetryableStopsImmediately(t *testing.T) {
	attempts := 0
	fatalErr := errors.New("bad input")
	operation := func() error {
		attempts++
		return fatalErr
	}

	err := RetryWithBackoff(context.Background(), operation, 5, 10*time.Millisecond, func(err error) bool {
		return false
	})
	require.Error(t, err)
	assert.Equal(t, fatalErr, err)
	assert.Equal(t, 1, attempts, "non-retryable errors must not be retried")
}

func TestRetryWithBackoff_RetryablePredicate(t *testing.T) {
	transient := errors.New("transient")
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 2 {
			return transient
		}
		return nil
	}

	err := RetryWithBackoff(context.Background(), operation, 5, time.Millisecond, func(err error) bool {
		return errors.Is(err, transient)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestRetryWithBackoff_InvalidMaxAttempts(t *testing.T) {
	err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond, nil)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetryWithBackoff_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := RetryWithBackoff(ctx, func() error {
		attempts++
		return errors.New("never succeeds")
	}, 3, time.Second, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, attempts, "cancelled context should prevent any attempt")
}
