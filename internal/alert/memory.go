package alert

import (
	"context"
	"sync"
)

// MemoryQueue is an in-process inbox.
type MemoryQueue struct {
	mu     sync.Mutex
	alerts []Alert
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

func (q *MemoryQueue) Publish(_ context.Context, a Alert) error {
	q.mu.Lock()
	q.alerts = append(q.alerts, a)
	q.mu.Unlock()
	return nil
}

func (q *MemoryQueue) Drain(_ context.Context) ([]Alert, error) {
	q.mu.Lock()
	queued := q.alerts
	q.alerts = nil
	q.mu.Unlock()

	out := make([]Alert, len(queued))
	for i, a := range queued {
		out[len(queued)-1-i] = a
	}
	return out, nil
}

// Len reports how many alerts are waiting.
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.alerts)
}
