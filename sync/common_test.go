package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryHandler(t *testing.T) {
	ctx := context.Background()
	rh := RetryHandler{RetryAfterErrorPeriod: time.Millisecond, MaxRetryAttemptsAfterError: 2}
	require.NoError(t, rh.Handle(ctx, "foo", 0))
	require.NoError(t, rh.Handle(ctx, "foo", 1))
	require.ErrorIs(t, rh.Handle(ctx, "foo", 2), ErrTooManyAttempts)

	unlimited := RetryHandler{RetryAfterErrorPeriod: time.Millisecond, MaxRetryAttemptsAfterError: -1}
	require.NoError(t, unlimited.Handle(ctx, "foo", 1000))
}

func TestRetryHandlerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rh := RetryHandler{RetryAfterErrorPeriod: time.Hour, MaxRetryAttemptsAfterError: -1}
	require.ErrorIs(t, rh.Handle(ctx, "foo", 0), context.Canceled)
}
