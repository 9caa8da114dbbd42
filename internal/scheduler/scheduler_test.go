package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/kitchen-stock/pkg/apperr"
	"github.com/tair/kitchen-stock/pkg/lock"
)

type fakeJob struct {
	name    string
	started chan struct{}
	proceed chan struct{}
	err     error

	once sync.Once
	mu   sync.Mutex
	runs int
}

func newFakeJob(name string) *fakeJob {
	return &fakeJob{name: name}
}

func (j *fakeJob) Name() string { return j.name }

func (j *fakeJob) Run(ctx context.Context) error {
	j.mu.Lock()
	j.runs++
	j.mu.Unlock()

	if j.started != nil {
		j.once.Do(func() { close(j.started) })
	}
	if j.proceed != nil {
		<-j.proceed
	}
	return j.err
}

func (j *fakeJob) count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.runs
}

func newTestTask(t *testing.T, job Job, opts ...Option) (*Task, *Metrics) {
	t.Helper()
	metrics := NewMetrics(prometheus.NewRegistry())
	task, err := NewTask(job, "0 3 * * *", metrics, opts...)
	require.NoError(t, err)
	return task, metrics
}

func TestNewTask_InvalidSchedule(t *testing.T) {
	_, err := NewTask(newFakeJob("x"), "every tuesday", NewMetrics(prometheus.NewRegistry()))
	assert.Error(t, err)
}

func TestTask_Next(t *testing.T) {
	task, _ := newTestTask(t, newFakeJob("x"))

	from := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 2, 3, 0, 0, 0, time.UTC), task.Next(from))

	early := time.Date(2024, time.March, 1, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 1, 3, 0, 0, 0, time.UTC), task.Next(early))
}

func TestTask_TickRunsJob(t *testing.T) {
	job := newFakeJob("replenishment")
	task, metrics := newTestTask(t, job)

	ran, err := task.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 1, job.count())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("replenishment", "success")))
}

func TestTask_TickReturnsJobError(t *testing.T) {
	job := newFakeJob("replenishment")
	job.err = errors.New("boom")
	task, metrics := newTestTask(t, job)

	ran, err := task.Tick(context.Background())
	assert.True(t, ran)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runs.WithLabelValues("replenishment", "error")))
}

func TestTask_SkipsWhileInFlight(t *testing.T) {
	job := newFakeJob("replenishment")
	job.started = make(chan struct{})
	job.proceed = make(chan struct{})
	task, metrics := newTestTask(t, job)

	done := make(chan bool)
	go func() {
		ran, _ := task.Tick(context.Background())
		done <- ran
	}()
	<-job.started

	ran, err := task.Tick(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)

	close(job.proceed)
	assert.True(t, <-done)
	assert.Equal(t, 1, job.count())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.skips.WithLabelValues("replenishment", "in_flight")))

	ran, err = task.Tick(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, 2, job.count())
}

func TestTask_SkipsWhenLockedElsewhere(t *testing.T) {
	ctx := context.Background()
	locker := lock.NewLocalLocker()
	job := newFakeJob("expiry-watch")
	task, metrics := newTestTask(t, job, WithLocker(locker, time.Minute))

	release, ok, err := locker.TryAcquire(ctx, "job:expiry-watch", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ran, err := task.Tick(ctx)
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Equal(t, 0, job.count())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.skips.WithLabelValues("expiry-watch", "locked")))

	require.NoError(t, release(ctx))

	ran, err = task.Tick(ctx)
	require.NoError(t, err)
	assert.True(t, ran)

	// the lock is released after the run
	_, ok, err = locker.TryAcquire(ctx, "job:expiry-watch", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegistry_RunNow(t *testing.T) {
	ctx := context.Background()
	job := newFakeJob("replenishment")
	task, _ := newTestTask(t, job)
	registry := NewRegistry(task)

	assert.Equal(t, []string{"replenishment"}, registry.Names())
	require.NoError(t, registry.RunNow(ctx, "replenishment"))
	assert.Equal(t, 1, job.count())

	err := registry.RunNow(ctx, "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRegistry_RunNowBusy(t *testing.T) {
	ctx := context.Background()
	locker := lock.NewLocalLocker()
	task, _ := newTestTask(t, newFakeJob("replenishment"), WithLocker(locker, time.Minute))
	registry := NewRegistry(task)

	_, ok, err := locker.TryAcquire(ctx, "job:replenishment", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	err = registry.RunNow(ctx, "replenishment")
	assert.ErrorIs(t, err, ErrJobBusy)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegistry_StartStopsWithContext(t *testing.T) {
	task, _ := newTestTask(t, newFakeJob("replenishment"))
	registry := NewRegistry(task)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- registry.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("registry did not stop")
	}
}
