package store

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryOperationRecoversFromTransientFailure(t *testing.T) {
	calls := 0
	err := retryOperation(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOperationSurfacesExhaustion(t *testing.T) {
	calls := 0
	boom := errors.New("still broken")
	err := retryOperation(context.Background(), func() error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1+maxRetries, calls)
}

func TestRetryOperationStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := retryOperation(context.Background(), func() error {
		calls++
		return backoff.Permanent(ErrNotFound)
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, calls)
}
