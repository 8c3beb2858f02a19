package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// retry calls fn up to attempts times, sleeping base, 2*base, 4*base...
// between failures. It stops early when ctx is done.
func retry[T any](ctx context.Context, attempts int, base time.Duration, fn func() (T, error)) (result T, err error) {
	if attempts < 1 {
		attempts = 1
	}

	wait := base
	for i := 0; i < attempts; i++ {
		result, err = fn()
		if err == nil {
			return result, err
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			err = errors.Wrap(ctx.Err(), "retry aborted")
			return result, err
		case <-time.After(wait):
		}
		wait *= 2
	}

	err = errors.Wrapf(err, "after %d attempts", attempts)
	return result, err
}
