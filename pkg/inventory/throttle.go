package inventory

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestDelay keeps request pacing under the controller's tolerance;
// faster queries have been seen to trigger HTTP 503.
const DefaultRequestDelay = 300 * time.Millisecond

// IntervalThrottle spaces successive calls at least Interval apart.
type IntervalThrottle struct {
	Interval time.Duration
	limiter  *rate.Limiter
}

// NewIntervalThrottle creates a throttle admitting one call per interval.
// The first call is admitted immediately. A non-positive interval disables
// pacing.
func NewIntervalThrottle(interval time.Duration) *IntervalThrottle {
	t := &IntervalThrottle{Interval: interval}
	if interval > 0 {
		t.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return t
}

// Wait blocks until the next call may proceed or ctx is done.
func (t *IntervalThrottle) Wait(ctx context.Context) error {
	if t.limiter == nil {
		return ctx.Err()
	}
	return t.limiter.Wait(ctx)
}
