package store

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Transient storage failures are retried with exponential backoff before
// being surfaced. NotFound is wrapped in backoff.Permanent by the operations
// so it is reported immediately.
const (
	maxRetries       = 3
	initialBackoff   = 100 * time.Millisecond
	maxBackoffDelay  = 2 * time.Second
	maxElapsedBound  = 10 * time.Second
)

// retryOperation runs op, retrying transient failures up to maxRetries times
// with exponential backoff. The context cancels waiting between attempts.
func retryOperation(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = initialBackoff
	bo.MaxInterval = maxBackoffDelay
	bo.MaxElapsedTime = maxElapsedBound
	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx))
}
