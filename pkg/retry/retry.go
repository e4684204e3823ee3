package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const DefaultAttempts = 3

// StatusError is a non-2xx response from an external HTTP API.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error: status %d, body: %s", e.Service, e.StatusCode, e.Body)
}

// Retryable reports whether repeating the call may succeed.
// Client errors are final except rate limiting.
func (e *StatusError) Retryable() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.StatusCode >= 500
}

// Policy configures bounded exponential backoff.
type Policy struct {
	Attempts        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	OnRetry         func(err error, wait time.Duration)
}

func DefaultPolicy() Policy {
	return Policy{
		Attempts:        DefaultAttempts,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// Do runs op until it succeeds, returns a final error, or the attempts run out.
func Do[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	if p.Attempts == 0 {
		p.Attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}

	opts := []backoff.RetryOption{
		backoff.WithBackOff(b),
		backoff.WithMaxTries(p.Attempts),
	}
	if p.OnRetry != nil {
		opts = append(opts, backoff.WithNotify(p.OnRetry))
	}

	return backoff.Retry(ctx, func() (T, error) {
		res, err := op()
		if err != nil && !IsRetryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}, opts...)
}

// IsRetryable treats transport errors as transient and defers to StatusError otherwise.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return true
}
