package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/catalog"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMazeRepo(t *testing.T) {
	repo := NewMazeRepo()

	t.Run("ByID on missing record", func(t *testing.T) {
		_, err := repo.ByID(uuid.New())
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("Save then ByID", func(t *testing.T) {
		record := &catalog.Record{ID: uuid.New(), Size: 10, Seed: 4, Strategy: "rejection"}
		require.NoError(t, repo.Save(record))

		got, err := repo.ByID(record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, got)

		got.Size = 99
		again, err := repo.ByID(record.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, again.Size, "stored record must not alias the returned copy")
	})
}

func TestRenderCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss, set, hit", func(t *testing.T) {
		c := NewRenderCache(time.Minute)
		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, c.Set(ctx, "k", []byte("svg")))
		v, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("svg"), v)
	})

	t.Run("entries expire", func(t *testing.T) {
		c := NewRenderCache(time.Minute)
		now := time.Date(2025, 2, 8, 0, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return now }

		require.NoError(t, c.Set(ctx, "k", []byte("v")))
		now = now.Add(2 * time.Minute)

		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("lock excludes and honours context", func(t *testing.T) {
		c := NewRenderCache(0)
		unlock, err := c.Lock(ctx, "k")
		require.NoError(t, err)

		timeoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err = c.Lock(timeoutCtx, "k")
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		unlock()

		unlockAgain, err := c.Lock(ctx, "k")
		require.NoError(t, err)
		unlockAgain()
		unlockAgain()

		assert.Equal(t, 0, c.lockedKeys())
	})

	t.Run("idle locks are dropped", func(t *testing.T) {
		c := NewRenderCache(0)
		for n := 0; n < 10000; n++ {
			unlock, err := c.Lock(ctx, fmt.Sprintf("maze-%d:svg:2:16", n))
			require.NoError(t, err)
			unlock()
		}
		assert.Equal(t, 0, c.lockedKeys())
	})

	t.Run("waiters serialise and leave no lock behind", func(t *testing.T) {
		c := NewRenderCache(0)
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			holders int
			maxSeen int
		)
		for n := 0; n < 16; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock, err := c.Lock(ctx, "shared")
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				holders++
				if holders > maxSeen {
					maxSeen = holders
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				holders--
				mu.Unlock()
				unlock()
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, maxSeen)
		assert.Equal(t, 0, c.lockedKeys())
	})
}
