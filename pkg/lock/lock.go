// Package lock provides keyed mutual exclusion for ledger lots and periodic
// jobs. LocalLocker serializes within one process; RedisLocker serializes
// across replicas.
package lock

import (
	"context"
	"errors"
	"sort"
	"time"
)

// ErrNotAcquired is returned by TryAcquire callers that need an error value.
var ErrNotAcquired = errors.New("lock not acquired")

// Release gives a held lock back.
type Release func(ctx context.Context) error

// Locker acquires named locks. ttl bounds how long a crashed holder can keep a
// distributed lock; the local implementation ignores it.
type Locker interface {
	// Acquire blocks until the lock is held or ctx is done.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
	// TryAcquire returns ok=false immediately when the lock is held elsewhere.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (Release, bool, error)
}

// AcquireAll takes every key in sorted, de-duplicated order so two batches
// touching overlapping keys cannot deadlock. On failure nothing stays held.
func AcquireAll(ctx context.Context, l Locker, keys []string, ttl time.Duration) (Release, error) {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	held := make([]Release, 0, len(sorted))
	releaseAll := func(ctx context.Context) error {
		var firstErr error
		for i := len(held) - 1; i >= 0; i-- {
			if err := held[i](ctx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	for _, k := range sorted {
		rel, err := l.Acquire(ctx, k, ttl)
		if err != nil {
			_ = releaseAll(context.WithoutCancel(ctx))
			return nil, err
		}
		held = append(held, rel)
	}

	return releaseAll, nil
}
