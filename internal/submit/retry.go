package submit

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig tunes the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns sensible defaults for webhook delivery.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// RetrySink is a decorator that retries transient delivery errors with
// exponential backoff and jitter.
type RetrySink struct {
	inner  Sink
	config RetryConfig
}

// WithRetry wraps a Sink with retry logic.
func WithRetry(s Sink, cfg RetryConfig) Sink {
	return &RetrySink{inner: s, config: cfg}
}

func (r *RetrySink) Submit(ctx context.Context, p Payload) error {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		err := r.inner.Submit(ctx, p)
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}

		// Last attempt — don't sleep, just return the error.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return lastErr
}

// shouldRetry determines if a delivery error is retryable.
func shouldRetry(err error) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Missing endpoint is a configuration state, not transient.
	if errors.Is(err, ErrNoEndpoint) {
		return false
	}

	// Client errors won't get better on retry; server errors might.
	var status *ErrStatus
	if errors.As(err, &status) {
		return status.Code >= 500 || status.Code == 429
	}

	// Other errors (network, etc.) are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetrySink) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
