package scheduler

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tair/kitchen-stock/pkg/apperr"
)

var (
	ErrJobNotFound = fmt.Errorf("job %w", apperr.ErrNotFound)
	ErrJobBusy     = fmt.Errorf("job is already running: %w", apperr.ErrConflict)
)

// Registry holds the process's tasks by name.
type Registry struct {
	tasks map[string]*Task
}

func NewRegistry(tasks ...*Task) *Registry {
	r := &Registry{tasks: make(map[string]*Task, len(tasks))}
	for _, t := range tasks {
		r.tasks[t.Name()] = t
	}
	return r
}

// Names lists the registered jobs in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunNow ticks a job immediately. The in-flight and lock rules of a
// scheduled tick apply.
func (r *Registry) RunNow(ctx context.Context, name string) error {
	t, ok := r.tasks[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrJobNotFound)
	}

	ran, err := t.Tick(ctx)
	if err != nil {
		return err
	}
	if !ran {
		return ErrJobBusy
	}
	return nil
}

// Start runs every task's schedule until ctx is done.
func (r *Registry) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, t := range r.tasks {
		g.Go(func() error {
			return t.Start(ctx)
		})
	}
	return g.Wait()
}
