package locker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
)

var ErrLocked = errors.New("resource locked")

const defaultExpiry = 10 * time.Second

// Redsync takes a distributed lock per key.
type Redsync struct {
	rs     *redsync.Redsync
	expiry time.Duration
}

func NewRedsync(rs *redsync.Redsync) *Redsync {
	return &Redsync{rs, defaultExpiry}
}

func (l *Redsync) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.rs.NewMutex(key, redsync.WithExpiry(l.expiry), redsync.WithTries(32))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLocked, key, err)
	}

	return func() {
		//nolint:errcheck
		mutex.Unlock()
	}, nil
}

// Local is an in-process keyed mutex.
type Local struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocal() *Local {
	return &Local{locks: map[string]*sync.Mutex{}}
}

func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.Lock()
	return m.Unlock, nil
}
