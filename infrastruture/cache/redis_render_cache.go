package cache

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "vinom-maze:render:"
	lockKeySuffix = ":render_lock"

	defaultLockExpiry = 30 * time.Second
)

var _ i.RenderCache = &RedisRenderCache{}

// RedisRenderCache keeps rendered mazes in Redis with a TTL.
type RedisRenderCache struct {
	client     *redis.Client
	locker     *redsync.Redsync
	ttl        time.Duration
	lockExpiry time.Duration
}

// NewRedisRenderCache initializes a RedisRenderCache with the provided Redis client and TTL.
// lockExpiry bounds how long a render lock survives a crashed holder and must
// exceed the longest render; zero or less selects 30s.
func NewRedisRenderCache(client *redis.Client, ttl, lockExpiry time.Duration) *RedisRenderCache {
	if lockExpiry <= 0 {
		lockExpiry = defaultLockExpiry
	}
	c := &RedisRenderCache{
		client:     client,
		ttl:        ttl,
		lockExpiry: lockExpiry,
	}
	pool := goredis.NewPool(client)
	c.locker = redsync.New(pool)
	return c
}

// Get returns the cached bytes for key.
func (c *RedisRenderCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores value under key with the cache TTL.
func (c *RedisRenderCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err()
}

// Lock takes a distributed lock on key so that only one instance renders it.
func (c *RedisRenderCache) Lock(ctx context.Context, key string) (func(), error) {
	mutex := c.locker.NewMutex(keyPrefix+key+lockKeySuffix, redsync.WithExpiry(c.lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}
