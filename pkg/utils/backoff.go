package utils

import (
	"context"
	"time"
)

// Backoff computes retry delays that double from Base up to Cap.
// MaxAttempts bounds how many tries a caller should make in total.
type Backoff struct {
	Base        time.Duration
	Cap         time.Duration
	MaxAttempts int
}

// Delay returns the wait before retry number attempt, counted from 1.
// Delay(1) == Base, Delay(2) == 2*Base and so on, clamped at Cap.
func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := b.Base
	for i := 1; i < attempt; i++ {
		d *= 2
		if b.Cap > 0 && d >= b.Cap {
			return b.Cap
		}
	}
	if b.Cap > 0 && d > b.Cap {
		return b.Cap
	}
	return d
}

// Exhausted reports whether the attempt budget has been spent
func (b Backoff) Exhausted(attempt int) bool {
	return attempt >= b.MaxAttempts
}

// Wait sleeps for d or until ctx is cancelled, whichever comes first
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
