package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisRenderCache(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	t.Run("default lock expiry", func(t *testing.T) {
		c := NewRedisRenderCache(client, time.Minute, 0)
		assert.Equal(t, defaultLockExpiry, c.lockExpiry)
	})

	t.Run("explicit lock expiry", func(t *testing.T) {
		c := NewRedisRenderCache(client, time.Minute, 25*time.Second)
		assert.Equal(t, 25*time.Second, c.lockExpiry)
		assert.Equal(t, time.Minute, c.ttl)
	})
}

// Runs against a live Redis when VINOM_TEST_REDIS_ADDR is set.
func TestRedisRenderCache(t *testing.T) {
	addr := os.Getenv("VINOM_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("VINOM_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	require.NoError(t, client.Ping(ctx).Err())

	c := NewRedisRenderCache(client, time.Minute, 20*time.Second)
	key := uuid.NewString() + ":svg:2:16"
	defer client.Del(ctx, keyPrefix+key)

	t.Run("miss then hit", func(t *testing.T) {
		_, ok, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, c.Set(ctx, key, []byte("<svg/>")))

		v, ok, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("<svg/>"), v)

		ttl, err := client.TTL(ctx, keyPrefix+key).Result()
		require.NoError(t, err)
		assert.True(t, ttl > 0 && ttl <= time.Minute)
	})

	t.Run("lock is exclusive", func(t *testing.T) {
		unlock, err := c.Lock(ctx, key)
		require.NoError(t, err)

		ttl, err := client.PTTL(ctx, keyPrefix+key+lockKeySuffix).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, 10*time.Second, "lock must outlive a render")

		shortCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		_, err = c.Lock(shortCtx, key)
		assert.Error(t, err)

		unlock()

		unlockAgain, err := c.Lock(ctx, key)
		require.NoError(t, err)
		unlockAgain()
	})
}
