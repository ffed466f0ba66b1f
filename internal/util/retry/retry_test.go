package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithExponentialBackoff_Success(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation)

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_SuccessAfterRetries(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_Exhausted(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("persistent error")
	}

	ctx := context.Background()
	maxAttempts := 3
	err := WithExponentialBackoff(ctx, operation,
		WithMaxAttempts(maxAttempts),
		WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Fatal("Expected error after exhausting attempts, got nil")
	}
	if attempts != maxAttempts {
		t.Errorf("Expected %d attempts, got: %d", maxAttempts, attempts)
	}
	if !IsExhausted(err) {
		t.Errorf("Expected exhausted error, got: %v", err)
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Expected *ExhaustedError, got: %T", err)
	}
	if exhausted.Attempts != maxAttempts {
		t.Errorf("Expected Attempts=%d, got: %d", maxAttempts, exhausted.Attempts)
	}
	if exhausted.Err == nil || exhausted.Err.Error() != "persistent error" {
		t.Errorf("Expected last attempt error to be preserved, got: %v", exhausted.Err)
	}
}

func TestWithExponentialBackoff_DefaultAttemptCount(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("always fails")
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(time.Millisecond))

	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if attempts != 5 {
		t.Errorf("Expected 5 attempts by default, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_ContextCancellation(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return errors.New("error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Error("Expected error due to context cancellation, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled error, got: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before context check, got: %d", attempts)
	}
}

func TestWithExponentialBackoff_FatalError(t *testing.T) {
	attempts := 0
	operation := func() error {
		attempts++
		return Fatal(errors.New("fatal error"))
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation, WithInitialDelay(10*time.Millisecond))

	if err == nil {
		t.Fatal("Expected fatal error, got nil")
	}
	if !IsFatal(err) {
		t.Errorf("Expected fatal error, got: %v", err)
	}
	if IsExhausted(err) {
		t.Errorf("Fatal error must not report as exhausted: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt (no retries for fatal error), got: %d", attempts)
	}
}

func TestWithExponentialBackoff_BackoffTiming(t *testing.T) {
	attempts := 0
	var delays []time.Duration
	lastTime := time.Now()

	operation := func() error {
		attempts++
		now := time.Now()
		if attempts > 1 {
			delays = append(delays, now.Sub(lastTime))
		}
		lastTime = now
		if attempts < 4 {
			return errors.New("error")
		}
		return nil
	}

	ctx := context.Background()
	initialDelay := 50 * time.Millisecond
	err := WithExponentialBackoff(ctx, operation,
		WithInitialDelay(initialDelay),
		WithMaxDelay(200*time.Millisecond),
		WithMultiplier(2.0))

	if err != nil {
		t.Errorf("Expected success after retries, got: %v", err)
	}

	if len(delays) != 3 {
		t.Fatalf("Expected 3 delays, got: %d", len(delays))
	}

	// Geometric series starting at the initial delay, doubling each time.
	// Allow tolerance for scheduling jitter.
	tolerance := 20 * time.Millisecond
	expectedDelays := []time.Duration{
		50 * time.Millisecond,
		100 * time.Millisecond,
		200 * time.Millisecond,
	}

	for i, delay := range delays {
		expected := expectedDelays[i]
		if delay < expected-tolerance || delay > expected+tolerance {
			t.Errorf("Delay %d: expected ~%v, got %v", i+1, expected, delay)
		}
	}
}

func TestWithExponentialBackoff_MaxDelayCap(t *testing.T) {
	attempts := 0
	start := time.Now()
	operation := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("error")
		}
		return nil
	}

	ctx := context.Background()
	err := WithExponentialBackoff(ctx, operation,
		WithInitialDelay(10*time.Millisecond),
		WithMaxDelay(10*time.Millisecond),
		WithMultiplier(10.0))

	if err != nil {
		t.Errorf("Expected success, got: %v", err)
	}
	// Two delays, both capped at 10ms.
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("Delays not capped: elapsed %v", elapsed)
	}
}

func TestFatal(t *testing.T) {
	t.Run("Nil error", func(t *testing.T) {
		err := Fatal(nil)
		if err != nil {
			t.Errorf("Expected nil, got: %v", err)
		}
	})

	t.Run("Non-nil error", func(t *testing.T) {
		inner := errors.New("boom")
		err := Fatal(inner)
		if !IsFatal(err) {
			t.Error("Expected IsFatal to report true")
		}
		if !errors.Is(err, inner) {
			t.Error("Expected wrapped error to unwrap to the original")
		}
		if err.Error() != "boom" {
			t.Errorf("Expected message passthrough, got: %q", err.Error())
		}
	})
}

func TestIsFatal_PlainError(t *testing.T) {
	if IsFatal(errors.New("plain")) {
		t.Error("Plain errors must not report as fatal")
	}
}
