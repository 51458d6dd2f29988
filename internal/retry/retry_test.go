package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusError struct {
	status int
}

func (e *statusError) Error() string   { return fmt.Sprintf("status %d", e.status) }
func (e *statusError) HTTPStatus() int { return e.status }

// records requested waits instead of sleeping
type fakeClock struct {
	delays []time.Duration
}

func (f *fakeClock) sleep(_ context.Context, d time.Duration) error {
	f.delays = append(f.delays, d)
	return nil
}

func (f *fakeClock) total() time.Duration {
	var sum time.Duration
	for _, d := range f.delays {
		sum += d
	}
	return sum
}

func testPolicy(clock *fakeClock) Policy {
	p := DefaultPolicy()
	p.Sleep = clock.sleep
	return p
}

func TestDo_SucceedsAfterTwoRateLimits(t *testing.T) {
	clock := &fakeClock{}
	calls := 0

	result, err := Do(context.Background(), testPolicy(clock), func(context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", &statusError{status: 429}
		}
		return "article", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "article", result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{1000 * time.Millisecond, 2000 * time.Millisecond}, clock.delays)
}

func TestDo_NonRateLimitErrorPropagatesImmediately(t *testing.T) {
	clock := &fakeClock{}
	calls := 0
	upstream := &statusError{status: 500}

	_, err := Do(context.Background(), testPolicy(clock), func(context.Context) (int, error) {
		calls++
		return 0, upstream
	})

	assert.Same(t, upstream, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.delays)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	clock := &fakeClock{}
	calls := 0
	limited := &statusError{status: 429}

	_, err := Do(context.Background(), testPolicy(clock), func(context.Context) (int, error) {
		calls++
		return 0, limited
	})

	assert.Same(t, limited, err, "final failure must be returned unchanged")
	assert.Equal(t, 4, calls)
	assert.Len(t, clock.delays, 3)
	assert.Equal(t, 7000*time.Millisecond, clock.total())
}

func TestDo_ZeroRetries(t *testing.T) {
	clock := &fakeClock{}
	p := testPolicy(clock)
	p.MaxRetries = 0
	calls := 0

	_, err := Do(context.Background(), p, func(context.Context) (int, error) {
		calls++
		return 0, ErrRateLimited
	})

	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.delays)
}

func TestDo_OnRetryReportsAttempts(t *testing.T) {
	clock := &fakeClock{}
	p := testPolicy(clock)

	var attempts []int
	p.OnRetry = func(attempt int, _ time.Duration, _ error) {
		attempts = append(attempts, attempt)
	}

	_, _ = Do(context.Background(), p, func(context.Context) (int, error) { //nolint:errcheck // test exhausts retries
		return 0, ErrRateLimited
	})

	assert.Equal(t, []int{1, 2, 3}, attempts)
}

func TestDo_CancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := DefaultPolicy()
	p.Sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}
	calls := 0

	_, err := Do(ctx, p, func(context.Context) (int, error) {
		calls++
		return 0, ErrRateLimited
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, calls)
}

func TestSleep_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := Sleep(ctx, time.Minute)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSleep_Waits(t *testing.T) {
	start := time.Now()
	require.NoError(t, Sleep(context.Background(), 20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrRateLimited, true},
		{"wrapped sentinel", fmt.Errorf("gemini: %w", ErrRateLimited), true},
		{"status 429", &statusError{status: 429}, true},
		{"wrapped status 429", fmt.Errorf("call failed: %w", &statusError{status: 429}), true},
		{"status 503", &statusError{status: 503}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimited(tt.err))
		})
	}
}

func TestMaxTotalDelay(t *testing.T) {
	assert.Equal(t, 7000*time.Millisecond, MaxTotalDelay(DefaultPolicy()))
}
