// Package fallback implements the primary-with-local-fallback pattern shared
// by every content generator: race a remote call against a timeout, and turn
// any failure into a deterministic local result.
package fallback

import (
	"context"
	"time"
)

type result[T any] struct {
	value T
	err   error
}

// Run invokes primary bounded by timeout; on error, timeout, or context
// cancellation it returns local() instead. The boolean reports whether the
// primary result was used. The primary call runs in its own goroutine so a
// provider that ignores context deadlines still cannot block the caller.
func Run[T any](ctx context.Context, timeout time.Duration, primary func(context.Context) (T, error), local func() (T, error)) (T, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan result[T], 1)
	go func() {
		value, err := primary(ctx)
		ch <- result[T]{value: value, err: err}
	}()

	select {
	case res := <-ch:
		if res.err == nil {
			return res.value, true, nil
		}
	case <-ctx.Done():
	}

	value, err := local()
	return value, false, err
}
