package moderation

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy controls how many times and how fast a moderation call is
// retried. Transport failures are always retryable; HTTP statuses are retried
// only when Retryable reports true.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64

	// Retryable reports whether a non-2xx status is transient.
	Retryable func(status int) bool
}

// DefaultRetryPolicy retries up to 3 times with exponential backoff starting
// at 200ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      backoff.DefaultMultiplier,
		Retryable:       TransientStatus,
	}
}

// TransientStatus treats request timeouts, throttling and server errors as
// transient.
func TransientStatus(status int) bool {
	return status == http.StatusRequestTimeout ||
		status == http.StatusTooManyRequests ||
		status >= http.StatusInternalServerError
}

func (p RetryPolicy) retryable(status int) bool {
	if p.Retryable == nil {
		return TransientStatus(status)
	}
	return p.Retryable(status)
}

// backOff builds a fresh schedule for one Check call. The schedule stops
// when ctx is done.
func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		exp.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		exp.MaxInterval = p.MaxInterval
	}
	if p.Multiplier > 0 {
		exp.Multiplier = p.Multiplier
	}
	// Attempts are bounded by MaxRetries, not by elapsed time.
	exp.MaxElapsedTime = 0
	exp.Reset()

	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}
