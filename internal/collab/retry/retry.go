// Package retry composes a function value with a backoff policy. It
// replaces the reflection-based "wrap every public method" decorator the
// original persistence layer used with an explicit value the caller wraps
// its own calls in - no introspection over members.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"time"

	"github.com/ternarybob/arbor"
)

// Policy describes how many times to retry an operation and how long to
// wait between attempts. The zero value is not usable; build one with
// NewPolicy.
type Policy struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64

	// Retryable decides whether an error returned by the wrapped
	// operation is worth another attempt. A nil Retryable falls back to
	// IsTransient.
	Retryable func(error) bool
}

// NewPolicy returns the default policy: 3 attempts, exponential backoff
// from 1s up to 30s, doubling each attempt.
func NewPolicy() Policy {
	return Policy{
		MaxAttempts:       3,
		InitialBackoff:    time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
		Retryable:         IsTransient,
	}
}

// IsTransient reports whether err looks like a transient network failure
// worth retrying: a context deadline, a timing-out net.Error, or a
// *net.OpError.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// backoff returns the delay before attempt (1-indexed): the exponential
// delay capped at MaxBackoff, then scaled by +/-25% jitter, so the result
// can exceed MaxBackoff by up to a quarter.
func (p Policy) backoff(attempt int) time.Duration {
	d := float64(p.InitialBackoff)
	for i := 1; i < attempt; i++ {
		d *= p.BackoffMultiplier
	}
	if max := float64(p.MaxBackoff); d > max {
		d = max
	}
	jitter := 1 + (rand.Float64()*0.5 - 0.25)
	d *= jitter
	return time.Duration(d)
}

// Do runs fn, retrying it under p until it succeeds, p.Retryable returns
// false for its error, MaxAttempts is exhausted, or ctx is done. The last
// error is returned if every attempt fails.
func Do(ctx context.Context, logger arbor.ILogger, p Policy, fn func() error) error {
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) || attempt == p.MaxAttempts {
			return lastErr
		}

		wait := p.backoff(attempt)
		if logger != nil {
			logger.Debug().
				Int("attempt", attempt).
				Int("max_attempts", p.MaxAttempts).
				Err(lastErr).
				Msg("retry: attempt failed, backing off")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}
