package lock

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redsync/redsync/v4"
	redsyncredis "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredis "github.com/redis/go-redis/v9"
)

// RedisGuard provides distributed mutual exclusion using the RedLock
// algorithm, so concurrent openers on different service instances can never
// allocate the same account number and concurrent use/cancel calls on the same
// account are serialized system-wide.
type RedisGuard struct {
	redsync *redsync.Redsync
	opts    Options
}

func NewRedisGuard(client *goredis.Client, opts Options) *RedisGuard {
	pool := redsyncredis.NewPool(client)
	return &RedisGuard{redsync: redsync.New(pool), opts: opts}
}

func (g *RedisGuard) WithLock(ctx context.Context, key string, fn func() error) error {
	mutex := g.redsync.NewMutex(
		key,
		redsync.WithExpiry(g.opts.Expiry),
		redsync.WithTries(g.opts.Tries),
		redsync.WithRetryDelay(g.opts.RetryDelay),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}

	// Release even if fn panics.
	defer func() {
		if ok, err := mutex.UnlockContext(ctx); !ok || err != nil {
			log.Printf("failed to release lock %s: ok=%v err=%v", key, ok, err)
		}
	}()

	return fn()
}
