package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLocker(client, "kitchen:"), mr
}

func TestRedisLocker_TryAcquireAndRelease(t *testing.T) {
	l, mr := newTestRedisLocker(t)
	ctx := context.Background()

	rel, ok, err := l.TryAcquire(ctx, "job:replenishment", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, mr.Exists("kitchen:job:replenishment"))

	_, ok, err = l.TryAcquire(ctx, "job:replenishment", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rel(ctx))
	assert.False(t, mr.Exists("kitchen:job:replenishment"))
}

func TestRedisLocker_ReleaseDoesNotDropForeignLock(t *testing.T) {
	l, mr := newTestRedisLocker(t)
	ctx := context.Background()

	rel, ok, err := l.TryAcquire(ctx, "lot", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	// TTL lapses and another holder takes over.
	mr.FastForward(2 * time.Second)
	_, ok, err = l.TryAcquire(ctx, "lot", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, rel(ctx))
	assert.True(t, mr.Exists("kitchen:lot"))
}

func TestRedisLocker_AcquireTimesOut(t *testing.T) {
	l, _ := newTestRedisLocker(t)
	_, ok, err := l.TryAcquire(context.Background(), "lot", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "lot", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
