package retry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsWithoutRetryWhenFnSucceedsFirstTry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), nil, NewPolicy(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoStopsImmediatelyOnNonRetryableError(t *testing.T) {
	boom := errors.New("permanent")
	calls := 0
	p := NewPolicy()
	p.Retryable = func(error) bool { return false }

	err := Do(context.Background(), nil, p, func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestDoExhaustsMaxAttemptsOnPersistentRetryableError(t *testing.T) {
	boom := errors.New("transient")
	p := Policy{
		MaxAttempts:       3,
		InitialBackoff:    0,
		MaxBackoff:        0,
		BackoffMultiplier: 1,
		Retryable:         func(error) bool { return true },
	}

	calls := 0
	err := Do(context.Background(), nil, p, func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDoRecoversAfterTransientFailures(t *testing.T) {
	boom := errors.New("transient")
	p := Policy{
		MaxAttempts:       5,
		InitialBackoff:    0,
		MaxBackoff:        0,
		BackoffMultiplier: 1,
		Retryable:         func(error) bool { return true },
	}

	calls := 0
	err := Do(context.Background(), nil, p, func() error {
		calls++
		if calls < 3 {
			return boom
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoReturnsContextErrorWhenCancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, nil, NewPolicy(), func() error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}
