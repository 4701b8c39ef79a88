package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryConfig controls the backoff schedule for Retry.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// InitialDelay is the wait before the second attempt.
	InitialDelay time.Duration
	// MaxDelay caps the backoff delay.
	MaxDelay time.Duration
	// Multiplier scales the delay after each failed attempt.
	Multiplier float64
	// Jitter adds up to 25% random variation to each delay when set.
	Jitter bool
	// RetryIf decides whether an error is worth another attempt.
	// Defaults to DefaultRetryIf.
	RetryIf func(error) bool
	// OnRetry is called before each re-attempt with the attempt number
	// (starting at 1) and the error that triggered the retry.
	OnRetry func(attempt int, err error)
}

// DefaultRetryConfig returns a conservative schedule suited to calls
// against local inference sidecars: few attempts, short initial delay.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// DefaultRetryIf retries everything except context cancellation and
// deadline expiry, which no amount of retrying will fix.
func DefaultRetryIf(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Retry runs fn until it succeeds, the attempts are exhausted, or the
// context is done. It returns the last error when all attempts fail.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	retryIf := cfg.RetryIf
	if retryIf == nil {
		retryIf = DefaultRetryIf
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == cfg.MaxAttempts || !retryIf(err) {
			break
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delayFor(cfg, attempt)):
		}
	}
	return zero, lastErr
}

// delayFor computes the backoff delay before attempt+1.
func delayFor(cfg RetryConfig, attempt int) time.Duration {
	delay := cfg.InitialDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	multiplier := cfg.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}

	d := float64(delay) * math.Pow(multiplier, float64(attempt-1))
	if cfg.MaxDelay > 0 && d > float64(cfg.MaxDelay) {
		d = float64(cfg.MaxDelay)
	}
	if cfg.Jitter {
		d += d * 0.25 * rand.Float64()
	}
	return time.Duration(d)
}
