package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestWithBackoffEventualSuccess(t *testing.T) {
	config := Config{MaxRetries: 3, BaseDelay: 1 * time.Millisecond}
	attempts := 0

	err := WithBackoff(context.Background(), config, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary network error")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("Expected 3 attempts, got %d", attempts)
	}
}

func TestWithBackoffExhaustsRetries(t *testing.T) {
	config := Config{MaxRetries: 2, BaseDelay: 1 * time.Millisecond}
	attempts := 0

	err := WithBackoff(context.Background(), config, func(ctx context.Context) error {
		attempts++
		return errors.New("persistent timeout")
	})
	if err == nil {
		t.Fatal("Expected failure, got success")
	}
	if attempts != 3 { // MaxRetries + 1
		t.Fatalf("Expected 3 attempts, got %d", attempts)
	}
	if !strings.Contains(err.Error(), "failed after 3 attempts") {
		t.Fatalf("Expected exhaustion error, got: %v", err)
	}
}

func TestWithBackoffStopsOnNonRetryable(t *testing.T) {
	config := Config{MaxRetries: 3, BaseDelay: 1 * time.Millisecond}
	attempts := 0

	err := WithBackoff(context.Background(), config, func(ctx context.Context) error {
		attempts++
		return errors.New("unexpected status 400")
	})
	if err == nil {
		t.Fatal("Expected failure, got success")
	}
	if attempts != 1 {
		t.Fatalf("Expected 1 attempt for non-retryable error, got %d", attempts)
	}
	if !strings.HasPrefix(err.Error(), "non-retryable error") {
		t.Fatalf("Expected non-retryable error, got: %v", err)
	}
}

func TestWithBackoffHonorsContext(t *testing.T) {
	config := Config{MaxRetries: 5, BaseDelay: 100 * time.Millisecond}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := WithBackoff(ctx, config, func(ctx context.Context) error {
		return errors.New("retryable network error")
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected context error, got: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Fatalf("Expected quick abort on context timeout, took %v", elapsed)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"timeout", errors.New("request timeout"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"server error", errors.New("unexpected status 500"), true},
		{"bad gateway", errors.New("unexpected status 502"), true},
		{"rate limited", errors.New("unexpected status 429"), true},
		{"bad request", errors.New("unexpected status 400"), false},
		{"unauthorized", errors.New("unexpected status 401"), false},
		{"not found", errors.New("unexpected status 404"), false},
		{"unknown error", errors.New("something odd happened"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.expected {
				t.Errorf("isRetryableError(%v) = %v, expected %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestHTTPStatusRetryable(t *testing.T) {
	tests := []struct {
		status   int
		expected bool
	}{
		{200, false},
		{204, false},
		{400, false},
		{404, false},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			if got := HTTPStatusRetryable(tt.status); got != tt.expected {
				t.Errorf("HTTPStatusRetryable(%d) = %v, expected %v", tt.status, got, tt.expected)
			}
		})
	}
}
