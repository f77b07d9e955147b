package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

func TestRetry(t *testing.T) {
	ctx := context.Background()

	calls := 0
	if err := Retry(ctx, 3, time.Millisecond, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	calls = 0
	permanent := errors.New("permanent")
	if err := Retry(ctx, 3, time.Millisecond, func() error { calls++; return permanent }); err != permanent || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err := Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return &RetryableError{Err: errTransient}
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry then succeed: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = Retry(ctx, 2, time.Millisecond, func() error { calls++; return &RetryableError{Err: errTransient} })
	if !errors.Is(err, errTransient) || calls != 2 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Second, func() error {
		return &RetryableError{Err: errTransient}
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
