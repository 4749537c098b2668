package lock

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalGuardSerializesSameKey(t *testing.T) {
	g := NewLocalGuard()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := g.WithLock(context.Background(), "lock:counter", func() error {
				// Non-atomic increment; only safe if sections are serialized.
				v := counter
				counter = v + 1
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter)
}

func TestLocalGuardDifferentKeysDoNotBlock(t *testing.T) {
	g := NewLocalGuard()

	release := make(chan struct{})
	held := make(chan struct{})

	go func() {
		_ = g.WithLock(context.Background(), "lock:a", func() error {
			close(held)
			<-release
			return nil
		})
	}()

	<-held
	// While lock:a is held, lock:b must still be acquirable.
	err := g.WithLock(context.Background(), "lock:b", func() error { return nil })
	require.NoError(t, err)
	close(release)
}

func TestLocalGuardPropagatesError(t *testing.T) {
	g := NewLocalGuard()
	wantErr := context.DeadlineExceeded

	err := g.WithLock(context.Background(), "lock:x", func() error { return wantErr })
	require.ErrorIs(t, err, wantErr)

	// The lock must be released after a failing section.
	err = g.WithLock(context.Background(), "lock:x", func() error { return nil })
	require.NoError(t, err)
}

func TestLocalGuardCancelledContext(t *testing.T) {
	g := NewLocalGuard()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.WithLock(ctx, "lock:x", func() error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}
