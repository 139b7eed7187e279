package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0xPolygon/rollupchain/log"
)

var ErrTooManyAttempts = errors.New("too many attempts")

// RetryHandler paces the retries of an operation that keeps failing
type RetryHandler struct {
	RetryAfterErrorPeriod time.Duration
	// MaxRetryAttemptsAfterError below zero means unlimited retries
	MaxRetryAttemptsAfterError int
}

// Handle waits RetryAfterErrorPeriod before attempt number attempts of funcName.
// It fails once the attempts are exhausted or ctx is done.
func (h *RetryHandler) Handle(ctx context.Context, funcName string, attempts int) error {
	if h.MaxRetryAttemptsAfterError > -1 && attempts >= h.MaxRetryAttemptsAfterError {
		return fmt.Errorf("%s failed %d times: %w", funcName, attempts, ErrTooManyAttempts)
	}
	log.Debugf("%s failed, retrying in %s (attempt %d)", funcName, h.RetryAfterErrorPeriod, attempts)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(h.RetryAfterErrorPeriod):
		return nil
	}
}
