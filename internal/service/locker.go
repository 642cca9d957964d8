package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// KeyedLocker serializes work per key (one quote request, one owner) while
// letting different keys proceed in parallel. Entries are reference counted
// and removed once nobody holds or waits on them.
type KeyedLocker struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
	timeout time.Duration
}

type lockEntry struct {
	sem  *semaphore.Weighted
	refs int
}

// NewKeyedLocker creates a locker whose acquisitions give up after timeout
func NewKeyedLocker(timeout time.Duration) *KeyedLocker {
	return &KeyedLocker{
		entries: make(map[string]*lockEntry),
		timeout: timeout,
	}
}

// Lock blocks until the key is free, the timeout passes or ctx is done.
// On failure it returns ErrBusy and the caller must not call unlock.
func (l *KeyedLocker) Lock(ctx context.Context, key string) (unlock func(), err error) {
	entry := l.acquireEntry(key)

	lockCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	if err := entry.sem.Acquire(lockCtx, 1); err != nil {
		l.releaseEntry(key, entry)
		return nil, ErrBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.sem.Release(1)
			l.releaseEntry(key, entry)
		})
	}, nil
}

func (l *KeyedLocker) acquireEntry(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		entry = &lockEntry{sem: semaphore.NewWeighted(1)}
		l.entries[key] = entry
	}
	entry.refs++
	return entry
}

func (l *KeyedLocker) releaseEntry(key string, entry *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, key)
	}
}

// Len returns how many keys are currently held or waited on
func (l *KeyedLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func requestLockKey(id uuid.UUID) string {
	return "request:" + id.String()
}

func ownerLockKey(id uuid.UUID) string {
	return "owner:" + id.String()
}
