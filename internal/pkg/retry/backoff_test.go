package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/mfs/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testRetrier(maxRetries int, retryable func(error) bool) *Retrier {
	return New(Config{
		MaxRetries: maxRetries,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2,
		Retryable:  retryable,
	}, &logger.ZapLogger{Logger: zap.NewNop()})
}

func TestRetrier_Execute(t *testing.T) {
	errDown := errors.New("connection refused")
	errFatal := errors.New("auth failed")

	tests := []struct {
		name          string
		failures      int
		failWith      error
		retryable     func(error) bool
		expectedCalls int
		expectErr     bool
	}{
		{name: "first attempt succeeds", failures: 0, expectedCalls: 1},
		{name: "succeeds after retries", failures: 2, failWith: errDown, expectedCalls: 3},
		{name: "gives up", failures: 10, failWith: errDown, expectedCalls: 4, expectErr: true},
		{
			name:          "non retryable error stops at once",
			failures:      10,
			failWith:      errFatal,
			retryable:     func(err error) bool { return !errors.Is(err, errFatal) },
			expectedCalls: 1,
			expectErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := testRetrier(3, tt.retryable).Execute(context.Background(), "connect", func(ctx context.Context) error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			})

			assert.Equal(t, tt.expectedCalls, calls)
			if tt.expectErr {
				assert.ErrorIs(t, err, tt.failWith)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetrier_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := testRetrier(3, nil).Execute(ctx, "connect", func(ctx context.Context) error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestRetrier_CalculateDelay(t *testing.T) {
	r := New(Config{BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}, nil)

	assert.Equal(t, 100*time.Millisecond, r.calculateDelay(0))
	assert.Equal(t, 400*time.Millisecond, r.calculateDelay(2))
	assert.Equal(t, time.Second, r.calculateDelay(10))
}
