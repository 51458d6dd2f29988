package retry

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 1000 * time.Millisecond
)

// marks a failure as "too many requests; retry later" without an HTTP status
var ErrRateLimited = errors.New("rate limited")

// implemented by provider errors that carry the upstream HTTP status
type httpStatuser interface {
	HTTPStatus() int
}

// controls how Do retries a failing operation
type Policy struct {
	// retries after the first attempt; total attempts = MaxRetries + 1
	MaxRetries int

	// wait before the first retry, doubled after every retry
	InitialDelay time.Duration

	// decides whether a failure may be retried (defaults to IsRateLimited)
	Retryable func(error) bool

	// waits for d or until ctx is done (defaults to a timer)
	Sleep func(ctx context.Context, d time.Duration) error

	// called before each wait, attempt is 1-based
	OnRetry func(attempt int, delay time.Duration, err error)
}

// returns 3 retries starting at 1s, retrying rate-limit failures only
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
		Retryable:    IsRateLimited,
		Sleep:        Sleep,
	}
}

// runs op, retrying rate-limited failures with deterministic doubling backoff.
// any other failure, or the last failure once retries are exhausted, is returned unchanged.
// a dispatched op is never aborted by Do; only the wait between attempts observes ctx.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsRateLimited
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	delay := p.InitialDelay
	remaining := p.MaxRetries

	for attempt := 1; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		if remaining <= 0 || !retryable(err) {
			return result, err
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}

		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			var zero T
			return zero, errors.Join(sleepErr, err)
		}

		remaining--
		delay *= 2
	}
}

// a context-aware wait that suspends only the calling goroutine
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reports whether any error in the chain signals HTTP 429 or wraps ErrRateLimited
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrRateLimited) {
		return true
	}

	var status httpStatuser
	if errors.As(err, &status) {
		return status.HTTPStatus() == http.StatusTooManyRequests
	}

	return false
}

// sum of all waits Do performs when every attempt is rate limited
func MaxTotalDelay(p Policy) time.Duration {
	var total time.Duration

	delay := p.InitialDelay
	for i := 0; i < p.MaxRetries; i++ {
		total += delay
		delay *= 2
	}

	return total
}
