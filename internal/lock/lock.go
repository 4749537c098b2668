// Package lock provides the mutual-exclusion guard the account and
// transaction services acquire around account-number allocation and
// per-account balance mutation. The Redis-backed guard serializes across
// service instances; the local guard covers single-node runs and tests.
package lock

import (
	"context"
	"time"
)

// Guard executes fn while holding the lock identified by key. The lock is
// released when fn returns; fn's error is passed through unchanged.
type Guard interface {
	WithLock(ctx context.Context, key string, fn func() error) error
}

// Options configures lock behavior.
type Options struct {
	// Expiry is how long the lock is held before auto-expiring (prevents deadlocks).
	Expiry time.Duration

	// Tries is the number of attempts to acquire the lock before giving up.
	Tries int

	// RetryDelay is the delay between retry attempts.
	RetryDelay time.Duration
}

// DefaultOptions returns defaults tuned for operations completing within
// milliseconds against a local database.
func DefaultOptions() Options {
	return Options{
		Expiry:     10 * time.Second,
		Tries:      3,
		RetryDelay: 500 * time.Millisecond,
	}
}
