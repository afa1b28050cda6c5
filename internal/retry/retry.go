// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package retry re-invokes a failing operation a bounded number of times.
//
// Retries are immediate: there is no backoff and no jitter. The error of the last
// attempt is returned unchanged once the budget is spent.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/matt-FFFFFF/conrun/internal/ctxlog"
)

// Op is a fallible operation. Arguments are captured by the closure, so every attempt
// sees the same ones.
type Op[T any] func(ctx context.Context) (T, error)

// Wrap returns an Op that runs op and retries it up to n more times while it fails.
// A negative n is treated as zero.
func Wrap[T any](op Op[T], n int) Op[T] {
	return func(ctx context.Context) (T, error) {
		return Do(ctx, n, op)
	}
}

// Do runs op, retrying up to n times on error.
// Retrying stops early once ctx is done; the last error is returned.
func Do[T any](ctx context.Context, n int, op Op[T]) (T, error) {
	policy := backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(max(n, 0)))
	attempt := 0

	// A done context makes the error permanent rather than using backoff.WithContext,
	// which would replace the last error with ctx.Err().
	operation := func() (T, error) {
		attempt++

		res, err := op(ctx)
		if err != nil && ctx.Err() != nil {
			return res, backoff.Permanent(err)
		}

		return res, err
	}

	notify := func(err error, _ time.Duration) {
		ctxlog.Debug(ctx, "retrying failed operation", "attempt", attempt, "remaining", n-attempt+1, "error", err)
	}

	return backoff.RetryNotifyWithData(operation, policy, notify)
}
