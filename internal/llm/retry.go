package llm

import (
	"context"
	"errors"
	"time"
)

// DelayFunc waits out a retry delay. The default implementation sleeps; tests
// substitute a recorder.
type DelayFunc func(ctx context.Context, d time.Duration) error

// SleepDelay waits for d or until the context is cancelled.
func SleepDelay(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RetryOptions controls the retry loop around a model call.
type RetryOptions struct {
	// MaxAttempts is the total number of calls, including the first.
	MaxAttempts int
	// Delay waits between attempts. Nil means SleepDelay.
	Delay DelayFunc
}

// DefaultRetryOptions allows the initial call plus two retries on quota
// exhaustion.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{MaxAttempts: 3, Delay: SleepDelay}
}

// Retry invokes fn up to opts.MaxAttempts times. Only QuotaError triggers a
// retry; the wait honors the provider-suggested delay carried on the error.
// Any other error, and the final quota failure, are returned as-is.
func Retry(ctx context.Context, opts RetryOptions, fn func(ctx context.Context) (string, error)) (string, error) {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	delay := opts.Delay
	if delay == nil {
		delay = SleepDelay
	}

	var lastErr error
	for attempt := 0; attempt < opts.MaxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var quotaErr *QuotaError
		if !errors.As(err, &quotaErr) {
			return "", err
		}
		if attempt == opts.MaxAttempts-1 {
			break
		}

		wait := quotaErr.RetryAfter
		if wait <= 0 {
			wait = FallbackRetryDelay
		}
		if err := delay(ctx, wait); err != nil {
			return "", err
		}
	}
	return "", lastErr
}
