// Package rediscounter keeps the order sequence in a single Redis key. Both
// the optimistic and the transactional tier use WATCH/MULTI; a key modified
// between WATCH and EXEC aborts the transaction, which is reported as
// contention.
package rediscounter

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"

	"custody/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// DefaultKey holds the order sequence.
const DefaultKey = "custody:order_sequence"

type CounterStore struct {
	client redis.UniversalClient
	key    string
}

func NewCounterStore(client redis.UniversalClient, key string) *CounterStore {
	if key == "" {
		key = DefaultKey
	}
	return &CounterStore{client: client, key: key}
}

func (s *CounterStore) Load(ctx context.Context) (int64, bool, error) {
	count, err := s.client.Get(ctx, s.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, classify("counter load", err)
	}
	return count, true, nil
}

func (s *CounterStore) CompareAndSwap(ctx context.Context, current, next int64) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, s.key).Int64()
		if errors.Is(err, redis.Nil) {
			return errs.NewContentionError("counter compare-and-swap", errors.New("counter missing"))
		}
		if err != nil {
			return err
		}
		if stored != current {
			return errs.NewContentionError("counter compare-and-swap", nil)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, next, 0)
			return nil
		})
		return err
	}, s.key)
	return classify("counter compare-and-swap", err)
}

// IncrementInTransaction reads, increments and writes the key in one
// optimistic transaction. A missing key starts from initial.
func (s *CounterStore) IncrementInTransaction(ctx context.Context, initial int64) (int64, error) {
	var next int64
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, s.key).Int64()
		switch {
		case errors.Is(err, redis.Nil):
			current = initial
		case err != nil:
			return err
		}

		next = current + 1
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, next, 0)
			return nil
		})
		return err
	}, s.key)
	if err != nil {
		return 0, classify("counter transactional increment", err)
	}
	return next, nil
}

func (s *CounterStore) Overwrite(ctx context.Context, next int64) error {
	return classify("counter overwrite", s.client.Set(ctx, s.key, next, 0).Err())
}

// classify maps go-redis failures onto the errs taxonomy: aborted
// transactions and connection failures are contention, ACL and AUTH
// rejections are unauthorized.
func classify(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrContention) || errors.Is(err, errs.ErrUnauthorized) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, redis.TxFailedErr) {
		return errs.NewContentionError(operation, err)
	}

	msg := err.Error()
	for _, prefix := range []string{"NOAUTH", "NOPERM", "WRONGPASS"} {
		if strings.HasPrefix(msg, prefix) {
			return errs.NewUnauthorizedError(operation, err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, io.EOF) || errors.Is(err, redis.ErrClosed) ||
		strings.HasPrefix(msg, "LOADING") || strings.HasPrefix(msg, "BUSY") {
		return errs.NewContentionError(operation, err)
	}
	return err
}
