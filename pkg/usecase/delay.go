package usecase

import (
	"context"
	"time"
)

// Delay paces auto-advancing steps. It is purely cosmetic and must return
// early with ctx.Err() when ctx is cancelled.
type Delay func(ctx context.Context) error

// NoDelay advances immediately
func NoDelay(ctx context.Context) error {
	return nil
}

// FixedDelay waits d before advancing. Non-positive durations do not wait.
func FixedDelay(d time.Duration) Delay {
	if d <= 0 {
		return NoDelay
	}

	return func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}
}
