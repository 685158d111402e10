package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
)

var ErrPassInProgress = errors.New("reconciliation pass already in progress")

// PassGuard serializes reconciliation passes. The default guard does nothing: the
// engine holds no lock of its own and a concurrent writer loses to whichever pass saves last.
type PassGuard interface {
	Acquire(ctx context.Context) (release func(), err error)
}

type noopPassGuard struct{}

func (noopPassGuard) Acquire(context.Context) (func(), error) {
	return func() {}, nil
}

// RedisPassGuard serializes passes across processes sharing one Redis.
// The lock expires after ttl even if the holder never releases it.
type RedisPassGuard struct {
	locker *redislock.Client
	key    string
	ttl    time.Duration
}

func NewRedisPassGuard(locker *redislock.Client, prefix string, ttl time.Duration) *RedisPassGuard {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisPassGuard{
		locker: locker,
		key:    fmt.Sprintf("%s:reconcile", prefix),
		ttl:    ttl,
	}
}

func (g *RedisPassGuard) Acquire(ctx context.Context) (func(), error) {
	if g.locker == nil {
		return nil, errors.New("service not ready (redis lock not initialized)")
	}
	lock, err := g.locker.Obtain(ctx, g.key, g.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrPassInProgress
	} else if err != nil {
		return nil, err
	}
	return func() {
		_ = lock.Release(context.Background())
	}, nil
}
