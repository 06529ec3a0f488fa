// Package clock carries the instant a request is evaluated at.
//
// A placement reads the time once and stores it in the context, so sale
// windows, coupon windows and the order timestamp all agree.
package clock

import (
	"context"
	"time"
)

type instantKey struct{}

// With returns a context that evaluates every time check at t.
func With(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, instantKey{}, t)
}

// From returns the instant stored by With, or fallback() when none is set.
func From(ctx context.Context, fallback func() time.Time) time.Time {
	if t, ok := ctx.Value(instantKey{}).(time.Time); ok {
		return t
	}
	return fallback()
}
