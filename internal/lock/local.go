package lock

import (
	"context"
	"sync"
)

// LocalGuard serializes critical sections within a single process using one
// mutex per key. Sections under different keys proceed independently.
type LocalGuard struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{locks: make(map[string]*sync.Mutex)}
}

func (g *LocalGuard) lockFor(key string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.locks[key]
	if !ok {
		m = &sync.Mutex{}
		g.locks[key] = m
	}
	return m
}

func (g *LocalGuard) WithLock(ctx context.Context, key string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := g.lockFor(key)
	m.Lock()
	defer m.Unlock()
	return fn()
}
