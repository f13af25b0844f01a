package utils

import (
	"context"
	"time"
)

var sleep = time.Sleep

// WaitFor sleeps for d unless the context ends first. It is the backoff
// primitive between stage retry attempts.
func WaitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
