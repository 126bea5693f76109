package store

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

// RetryPolicy bounds how failed commands are retried. The delay before
// attempt n+1 is min(n*Backoff, MaxBackoff).
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
	MaxBackoff  time.Duration
}

// DefaultRetryPolicy allows three attempts with 1s steps capped at 3s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Backoff: time.Second, MaxBackoff: 3 * time.Second}
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	d := time.Duration(attempt) * p.Backoff
	if p.MaxBackoff > 0 && d > p.MaxBackoff {
		d = p.MaxBackoff
	}
	return d
}

// run calls fn until it succeeds, fails permanently, or attempts run out.
func (p RetryPolicy) run(ctx context.Context, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(ctx); err == nil || !transient(err) || attempt >= attempts {
			return err
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
}

// transient reports whether err is worth retrying: connection-level
// failures and timeouts, never redis.Nil or server replies.
func transient(err error) bool {
	switch {
	case errors.Is(err, redis.Nil),
		errors.Is(err, redis.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.EPIPE):
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
