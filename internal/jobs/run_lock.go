package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
)

// errLockHeld means another instance is running the same job.
var errLockHeld = errors.New("job lock is held by another instance")

// RunLock serialises a job across service instances.
type RunLock interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// RedisRunLock implements RunLock with a Redis lease.
type RedisRunLock struct {
	client *redislock.Client
}

func NewRedisRunLock(client *redislock.Client) *RedisRunLock {
	return &RedisRunLock{client: client}
}

func (l *RedisRunLock) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, errLockHeld
	}
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return err
		}
		return nil
	}, nil
}

// LocalRunLock never contends. It is used when Redis is not configured and
// only one instance runs the jobs.
type LocalRunLock struct{}

func (LocalRunLock) Obtain(context.Context, string, time.Duration) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}
