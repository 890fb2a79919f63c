// Package retry implements exponential backoff for delivery-side HTTP
// calls. The ingestion and AI stages are deliberately single-attempt; only
// outbound publishers use this.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// Config holds retry configuration.
type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultConfig returns a default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
	}
}

// WithBackoff runs operation until it succeeds, the error is classified as
// non-retryable, or the attempts are exhausted. Delays grow exponentially
// with jitter.
func WithBackoff(ctx context.Context, config Config, operation func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		err = operation(ctx)
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}
		if attempt == config.MaxRetries {
			break
		}

		delay := config.BaseDelay*time.Duration(1<<attempt) +
			time.Duration(rand.Int63n(int64(config.BaseDelay)))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return fmt.Errorf("operation failed after %d attempts: %w", config.MaxRetries+1, err)
}

// isRetryableError classifies an error by its message: network-level
// failures and 5xx/429 statuses retry, other 4xx statuses do not, and
// unrecognized errors retry.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "temporary failure") ||
		strings.Contains(msg, "network") {
		return true
	}

	if strings.Contains(msg, "status 5") || strings.Contains(msg, "status 429") {
		return true
	}
	if strings.Contains(msg, "status 4") {
		return false
	}

	return true
}

// HTTPStatusRetryable reports whether an HTTP status code is worth a retry.
func HTTPStatusRetryable(statusCode int) bool {
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
