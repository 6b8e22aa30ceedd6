package httpx

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	policy := &RetryPolicy{
		InitialBackoff:    time.Second,
		MaxBackoff:        5 * time.Second,
		BackoffMultiplier: 2.0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 0},
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 5 * time.Second}, // capped at MaxBackoff
	}

	for _, tt := range tests {
		if got := policy.CalculateBackoff(tt.attempt); got != tt.want {
			t.Errorf("CalculateBackoff(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

func TestIsRetryableError(t *testing.T) {
	policy := DefaultRetryPolicy()

	if policy.IsRetryableError(nil) {
		t.Error("IsRetryableError(nil) = true, want false")
	}
	if policy.IsRetryableError(errors.New("plain error")) {
		t.Error("IsRetryableError(plain) = true, want false")
	}
	if !policy.IsRetryableError(&StatusError{StatusCode: http.StatusTooManyRequests}) {
		t.Error("IsRetryableError(429) = false, want true")
	}
	if policy.IsRetryableError(&StatusError{StatusCode: http.StatusNotFound}) {
		t.Error("IsRetryableError(404) = true, want false")
	}
}

func TestExecuteWithRetryStopsOnNonRetryable(t *testing.T) {
	policy := DefaultRetryPolicy()
	policy.InitialBackoff = time.Millisecond

	var attempts int
	err := ExecuteWithRetry(func() error {
		attempts++
		return errors.New("fatal")
	}, policy, "test op")

	if err == nil {
		t.Fatal("ExecuteWithRetry() error = nil, want error")
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestExecuteWithRetryEventuallySucceeds(t *testing.T) {
	policy := DefaultRetryPolicy()
	policy.InitialBackoff = time.Millisecond

	var attempts int
	err := ExecuteWithRetry(func() error {
		attempts++
		if attempts < 3 {
			return &StatusError{StatusCode: http.StatusServiceUnavailable}
		}
		return nil
	}, policy, "test op")

	if err != nil {
		t.Fatalf("ExecuteWithRetry() error = %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}
