package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nhost/pkg/logging"
)

// ErrNotReady is returned when a bounded wait expires before the service
// answered successfully.
var ErrNotReady = errors.New("service did not become ready")

// Poller repeatedly runs a health check until it succeeds.
//
// Every failure is treated the same way (connection refused, timeout and
// error statuses are all retried), so a wrong port looks exactly like a
// slow start. With a zero Timeout the wait is unbounded and only context
// cancellation ends it.
type Poller struct {
	Checker ServiceHealthChecker
	// Interval is the pause between attempts. Zero retries immediately.
	Interval time.Duration
	// Timeout bounds the whole wait. Zero means no bound.
	Timeout time.Duration
}

// WaitUntilReady blocks until the first successful check and returns the
// number of attempts made, including the successful one.
func (p *Poller) WaitUntilReady(ctx context.Context) (int, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, p.Timeout, ErrNotReady)
		defer cancel()
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	attempts := 0
	for {
		if err := ctx.Err(); err != nil {
			return attempts, p.stopped(ctx, attempts)
		}

		attempts++
		err := p.Checker.CheckHealth(ctx)
		if err == nil {
			logging.Debug("Readiness", "Service ready after %d attempt(s)", attempts)
			return attempts, nil
		}
		logging.Debug("Readiness", "Attempt %d failed: %v", attempts, err)

		if p.Interval <= 0 {
			continue
		}
		if timer == nil {
			timer = time.NewTimer(p.Interval)
		} else {
			timer.Reset(p.Interval)
		}
		select {
		case <-ctx.Done():
			return attempts, p.stopped(ctx, attempts)
		case <-timer.C:
		}
	}
}

func (p *Poller) stopped(ctx context.Context, attempts int) error {
	if cause := context.Cause(ctx); errors.Is(cause, ErrNotReady) {
		return fmt.Errorf("%w within %s (%d attempts)", ErrNotReady, p.Timeout, attempts)
	}
	return fmt.Errorf("readiness wait aborted after %d attempts: %w", attempts, ctx.Err())
}
