package timeutils

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrAllAttemptsFailed = errors.New("all attempts failed")
)

// Retry calls function once per entry of attemptDelays, sleeping for that delay
// after every attempt that onFinished marks for retry.
func Retry[T any](
	ctx context.Context,
	attemptDelays []time.Duration,
	function func(context.Context) (T, error),
	onFinished func(T, error) (needRetry bool),
) (T, error) {
	var zero T
	for _, delay := range attemptDelays {
		if ctx.Err() != nil {
			return zero, fmt.Errorf("retry canceled: %w", ctx.Err())
		}
		res, err := function(ctx)
		if !onFinished(res, err) {
			return res, err
		}
		if err := SleepCtx(ctx, delay); err != nil {
			return zero, err
		}
	}
	return zero, ErrAllAttemptsFailed
}

func SleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("sleep canceled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
