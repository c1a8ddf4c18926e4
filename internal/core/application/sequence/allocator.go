// Package sequence issues the global order sequence under concurrent callers
// in many processes. It keeps no in-process state: all coordination happens
// in the counter store.
package sequence

import (
	"context"
	"errors"
	"time"

	"custody/internal/core/ports"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	// InitialCount is the logical value of a fresh counter; the first issued
	// sequence is InitialCount+1.
	InitialCount int64 = 1000

	// MaxTransactionalAttempts bounds the second tier.
	MaxTransactionalAttempts = 5

	// BaseBackoff is the wait before the second transactional attempt; it
	// doubles on every further attempt.
	BaseBackoff = 10 * time.Millisecond

	operation = "sequence allocation"
)

const (
	tierOptimistic    = "optimistic"
	tierTransactional = "transactional"
	tierLastResort    = "last_resort"
)

// Allocator hands out strictly increasing sequence numbers.
//
// Tier 1 is a single unlocked load followed by a compare-and-swap. Tier 2 is
// a bounded loop of transactional increments with exponential backoff. If
// both fail without an authorization error, one unconditional
// load-and-overwrite is attempted. That last step can, under a double
// failure, hand out a number another caller also received; this weak
// guarantee is accepted so that allocation degrades instead of failing.
type Allocator struct {
	store      ports.SequenceCounterStore
	logger     *zap.Logger
	newBackOff func() backoff.BackOff
}

type Option func(*Allocator)

// WithBackOff replaces the backoff policy of the transactional tier. The
// policy's retry limit becomes the attempt budget of that tier.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(a *Allocator) {
		a.newBackOff = newBackOff
	}
}

func NewAllocator(store ports.SequenceCounterStore, logger *zap.Logger, opts ...Option) (*Allocator, error) {
	if store == nil {
		return nil, errs.NewValueIsRequiredError("sequence counter store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Allocator{
		store:      store,
		logger:     logger.With(zap.String("component", "sequence_allocator")),
		newBackOff: DefaultBackOff,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// DefaultBackOff waits 10ms, 20ms, 40ms and 80ms between the five attempts.
func DefaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = BaseBackoff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 0
	b.Reset()
	return backoff.WithMaxRetries(b, MaxTransactionalAttempts-1)
}

// Next returns the next sequence number. Authorization failures are returned
// as is. Any other failure that survives every tier is returned as one
// errs.ContentionError joining the error of each attempt.
func (a *Allocator) Next(ctx context.Context) (int64, error) {
	start := time.Now()
	defer func() {
		metrics.SequenceAllocationLatency.Observe(time.Since(start).Seconds())
	}()

	next, err := a.optimistic(ctx)
	if err == nil {
		return a.issued(tierOptimistic, next), nil
	}
	if errors.Is(err, errs.ErrUnauthorized) {
		return 0, err
	}
	attemptErrs := []error{err}
	a.logger.Debug("optimistic allocation failed, switching to transactions", zap.Error(err))

	next, txErrs := a.transactional(ctx)
	attemptErrs = append(attemptErrs, txErrs...)
	if len(txErrs) == 0 {
		return a.issued(tierTransactional, next), nil
	}
	last := txErrs[len(txErrs)-1]
	if errors.Is(last, errs.ErrUnauthorized) {
		return 0, last
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, errors.Join(append(attemptErrs, ctxErr)...)
	}

	a.logger.Warn("transactional allocation exhausted, using last-resort overwrite",
		zap.Int("attempts", len(txErrs)), zap.Error(last))

	next, err = a.lastResort(ctx)
	if err == nil {
		return a.issued(tierLastResort, next), nil
	}
	if errors.Is(err, errs.ErrUnauthorized) {
		return 0, err
	}
	attemptErrs = append(attemptErrs, err)

	metrics.SequenceExhaustedTotal.Inc()
	a.logger.Error("sequence allocation failed", zap.Int("attempts", len(attemptErrs)), zap.Error(err))
	return 0, errs.NewContentionErrorAfterAttempts(operation, len(attemptErrs), errors.Join(attemptErrs...))
}

func (a *Allocator) issued(tier string, next int64) int64 {
	metrics.SequenceAllocationsTotal.WithLabelValues(tier).Inc()
	return next
}

func (a *Allocator) optimistic(ctx context.Context) (int64, error) {
	current, found, err := a.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	if !found {
		// Creating the counter is left to the transactional tier.
		return 0, errs.NewObjectNotFoundError("sequence counter", "order")
	}

	next := current + 1
	if err = a.store.CompareAndSwap(ctx, current, next); err != nil {
		return 0, err
	}
	return next, nil
}

// transactional returns the allocated value or the error of every failed attempt.
func (a *Allocator) transactional(ctx context.Context) (int64, []error) {
	var attemptErrs []error

	op := func() (int64, error) {
		next, err := a.store.IncrementInTransaction(ctx, InitialCount)
		if err == nil {
			return next, nil
		}
		attemptErrs = append(attemptErrs, err)
		if !errs.IsRetryable(err) {
			return 0, backoff.Permanent(err)
		}
		metrics.SequenceRetriesTotal.Inc()
		return 0, err
	}

	next, err := backoff.RetryWithData(op, backoff.WithContext(a.newBackOff(), ctx))
	if err == nil {
		return next, nil
	}
	if len(attemptErrs) == 0 {
		attemptErrs = append(attemptErrs, err)
	}
	return 0, attemptErrs
}

func (a *Allocator) lastResort(ctx context.Context) (int64, error) {
	current, found, err := a.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	if !found {
		current = InitialCount
	}

	next := current + 1
	if err = a.store.Overwrite(ctx, next); err != nil {
		return 0, err
	}
	return next, nil
}
