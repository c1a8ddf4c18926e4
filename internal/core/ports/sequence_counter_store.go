// Package ports defines the contracts between the custody core and its
// infrastructure: persistence, the sequence counter backend and event
// publishing.
package ports

import "context"

// SequenceCounterStore is the durable home of the global order sequence.
//
// Implementations classify their failures: a conflicting concurrent write
// must unwrap to errs.ErrContention and a permission failure to
// errs.ErrUnauthorized. Anything else is treated as non-retryable.
type SequenceCounterStore interface {
	// Load reads the current count without locking. found is false when the
	// counter was never initialised.
	Load(ctx context.Context) (count int64, found bool, err error)

	// CompareAndSwap writes next only if the stored count still equals
	// current. A lost race returns a contention error.
	CompareAndSwap(ctx context.Context, current, next int64) error

	// IncrementInTransaction atomically reads, increments and writes the
	// counter inside one store transaction and returns the new value. A
	// missing counter is created at initial and then incremented.
	IncrementInTransaction(ctx context.Context, initial int64) (int64, error)

	// Overwrite writes next unconditionally, creating the counter if needed.
	Overwrite(ctx context.Context, next int64) error
}
