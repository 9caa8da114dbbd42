package lock

import (
	"context"
	"sync"
	"time"
)

// LocalLocker is an in-process keyed lock. Slots are reference counted and
// dropped once nobody holds or waits on them.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*slot)}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string, _ time.Duration) (Release, error) {
	s := l.ref(key)
	select {
	case s.ch <- struct{}{}:
		return l.releaser(key, s), nil
	case <-ctx.Done():
		l.unref(key)
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) TryAcquire(_ context.Context, key string, _ time.Duration) (Release, bool, error) {
	s := l.ref(key)
	select {
	case s.ch <- struct{}{}:
		return l.releaser(key, s), true, nil
	default:
		l.unref(key)
		return nil, false, nil
	}
}

func (l *LocalLocker) ref(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.slots[key]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

func (l *LocalLocker) releaser(key string, s *slot) Release {
	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-s.ch
			l.unref(key)
		})
		return nil
	}
}
