package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Only the holder whose token matches may delete the key.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX and a token-checked release.
type RedisLocker struct {
	client     *redis.Client
	prefix     string
	retryDelay time.Duration
}

func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{
		client:     client,
		prefix:     prefix,
		retryDelay: 50 * time.Millisecond,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	for {
		rel, ok, err := l.TryAcquire(ctx, key, ttl)
		if err != nil {
			return nil, err
		}
		if ok {
			return rel, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire %s: %w", key, ctx.Err())
		case <-time.After(l.retryDelay):
		}
	}
}

func (l *RedisLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (Release, bool, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis setnx %s: %w", fullKey, err)
	}
	if !ok {
		return nil, false, nil
	}

	return func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("redis release %s: %w", fullKey, err)
		}
		return nil
	}, true, nil
}
