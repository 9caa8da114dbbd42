// Package scheduler runs periodic jobs on cron schedules. A job never
// overlaps itself: within a process an in-flight flag skips a tick that
// arrives while the previous one runs, and an optional distributed lock
// does the same across replicas.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tair/kitchen-stock/pkg/clock"
	"github.com/tair/kitchen-stock/pkg/lock"
	"github.com/tair/kitchen-stock/pkg/logger"
)

// Job is one unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Task binds a job to its schedule.
type Task struct {
	job      Job
	spec     string
	schedule cron.Schedule
	clock    clock.Clock
	locker   lock.Locker
	lockTTL  time.Duration
	metrics  *Metrics
	running  atomic.Bool
}

// Option configures a Task.
type Option func(*Task)

// WithLocker makes the task take "job:<name>" before running. Replicas that
// miss the lock skip the tick.
func WithLocker(l lock.Locker, ttl time.Duration) Option {
	return func(t *Task) {
		t.locker = l
		t.lockTTL = ttl
	}
}

// WithClock overrides the clock the next run time is computed from.
func WithClock(c clock.Clock) Option {
	return func(t *Task) {
		t.clock = c
	}
}

// NewTask parses spec as a standard five-field cron expression. Descriptors
// such as @daily and a CRON_TZ= prefix are accepted too.
func NewTask(job Job, spec string, metrics *Metrics, opts ...Option) (*Task, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q for job %s: %w", spec, job.Name(), err)
	}

	t := &Task{
		job:      job,
		spec:     spec,
		schedule: schedule,
		clock:    clock.Real{},
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *Task) Name() string {
	return t.job.Name()
}

// Next returns the first scheduled run strictly after from.
func (t *Task) Next(from time.Time) time.Time {
	return t.schedule.Next(from)
}

// Tick runs the job once unless a run is already in progress here or on
// another replica. ran reports whether the job body executed.
func (t *Task) Tick(ctx context.Context) (ran bool, err error) {
	name := t.job.Name()

	if !t.running.CompareAndSwap(false, true) {
		t.metrics.skipped(name, "in_flight")
		logger.Warn(ctx).Str("job", name).Msg("Job still running, tick skipped")
		return false, nil
	}
	defer t.running.Store(false)

	if t.locker != nil {
		release, ok, err := t.locker.TryAcquire(ctx, "job:"+name, t.lockTTL)
		if err != nil {
			t.metrics.finished(name, "error", 0)
			return false, fmt.Errorf("failed to lock job %s: %w", name, err)
		}
		if !ok {
			t.metrics.skipped(name, "locked")
			logger.Info(ctx).Str("job", name).Msg("Job running on another replica, tick skipped")
			return false, nil
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn(ctx).Err(err).Str("job", name).Msg("Failed to release job lock")
			}
		}()
	}

	start := time.Now()
	logger.Info(ctx).Str("job", name).Msg("Job started")

	err = t.job.Run(ctx)
	elapsed := time.Since(start)
	if err != nil {
		t.metrics.finished(name, "error", elapsed)
		logger.Error(ctx).Err(err).Str("job", name).Dur("duration", elapsed).Msg("Job failed")
		return true, err
	}

	t.metrics.finished(name, "success", elapsed)
	logger.Info(ctx).Str("job", name).Dur("duration", elapsed).Msg("Job finished")
	return true, nil
}

// Start fires ticks on schedule until ctx is done, then waits for a tick in
// progress. Each tick runs in its own goroutine so a slow run cannot delay
// the schedule; overlapping ticks are skipped by Tick.
func (t *Task) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	logger.Info(ctx).
		Str("job", t.job.Name()).
		Str("schedule", t.spec).
		Time("next_run", t.Next(t.clock.Now())).
		Msg("Job scheduled")

	for {
		now := t.clock.Now()
		timer := time.NewTimer(t.Next(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			wg.Add(1)
			go func() {
				defer wg.Done()
				// Job errors are logged and counted in Tick; the schedule carries on.
				_, _ = t.Tick(ctx)
			}()
		}
	}
}
