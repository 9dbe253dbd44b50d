package services

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go"

	"github.com/studyhall-labs/shelf-cli/internal/core/domain"
	"github.com/studyhall-labs/shelf-cli/internal/logger"
)

// Default retry policy. Four attempts with a 3s base doubling each time
// keeps a fully failed call under half a minute of waiting.
const (
	DefaultMaxAttempts = 4
	DefaultBaseDelay   = 3 * time.Second
)

// RetryPolicy bounds retries of a provider call.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts uint

	// BaseDelay is the wait before the first retry. The delay before
	// retry n is BaseDelay * 2^(n-1), no jitter.
	BaseDelay time.Duration
}

// withDefaults fills zero fields with the default policy.
func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts == 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.BaseDelay == 0 {
		p.BaseDelay = DefaultBaseDelay
	}
	return p
}

// Retrier retries transient provider failures with exponential backoff.
// Permanent failures abort immediately; the error of the final attempt is
// surfaced as-is rather than wrapped.
type Retrier struct {
	policy RetryPolicy
}

// NewRetrier creates a Retrier. Zero policy fields get defaults.
func NewRetrier(policy RetryPolicy) *Retrier {
	return &Retrier{policy: policy.withDefaults()}
}

// Do runs op until it succeeds, fails permanently, or attempts run out.
// The op receives the current attempt index (0 for the first try) so
// callers may vary behaviour on retries, e.g. degrade to a cheaper model.
func (r *Retrier) Do(ctx context.Context, op func(attempt int) error) error {
	attempt := 0
	return retry.Do(
		func() error {
			err := op(attempt)
			attempt++
			return err
		},
		retry.Context(ctx),
		retry.Attempts(r.policy.MaxAttempts),
		retry.Delay(r.policy.BaseDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return domain.FailureKindOf(err) != domain.FailurePermanent
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("attempt %d failed, retrying: %v", n+1, err)
		}),
	)
}

// WithTimeout races op against a timer. If the timer fires first the call
// fails with a timeout Failure carrying msg; otherwise op's result is
// returned unchanged. The timer is released on either outcome.
func WithTimeout[T any](ctx context.Context, d time.Duration, msg string, op func(context.Context) (T, error)) (T, error) {
	tctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type outcome struct {
		val T
		err error
	}
	// Buffered so an op finishing after the deadline does not leak its
	// goroutine on send.
	ch := make(chan outcome, 1)
	go func() {
		val, err := op(tctx)
		ch <- outcome{val: val, err: err}
	}()

	select {
	case out := <-ch:
		return out.val, out.err
	case <-tctx.Done():
		var zero T
		if errors.Is(tctx.Err(), context.DeadlineExceeded) {
			return zero, &domain.Failure{Kind: domain.FailureTimeout, Detail: msg}
		}
		return zero, tctx.Err()
	}
}
