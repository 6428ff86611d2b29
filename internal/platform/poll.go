package platform

import (
	"context"
	"time"
)

// Poll calls check up to attempts times, waiting interval between calls, until
// check reports done or returns an error. It returns (false, nil) once the
// attempts are exhausted.
func Poll(ctx context.Context, attempts int, interval time.Duration, check func(attempt int) (bool, error)) (bool, error) {
	for attempt := 1; attempt <= attempts; attempt++ {
		done, err := check(attempt)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false, ctx.Err()
		case <-timer.C:
		}
	}
	return false, nil
}
