package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/catalog"
	"github.com/beka-birhanu/vinom-maze/infrastruture/memstore"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/logger"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/render"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCache records how often each call reaches the store.
type countingCache struct {
	*memstore.RenderCache
	mu   sync.Mutex
	sets int
	fail bool
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.fail {
		return nil, false, errors.New("cache down")
	}
	return c.RenderCache.Get(ctx, key)
}

func (c *countingCache) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	if c.fail {
		return errors.New("cache down")
	}
	return c.RenderCache.Set(ctx, key, value)
}

func (c *countingCache) Lock(ctx context.Context, key string) (func(), error) {
	if c.fail {
		return nil, errors.New("cache down")
	}
	return c.RenderCache.Lock(ctx, key)
}

type fixture struct {
	svc   *MazeService
	repo  *memstore.MazeRepo
	cache *countingCache
	log   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	var buf bytes.Buffer
	l, err := logger.New("TEST", "", &buf)
	require.NoError(t, err)
	require.NoError(t, l.SetLevel("debug"))

	repo := memstore.NewMazeRepo()
	cache := &countingCache{RenderCache: memstore.NewRenderCache(time.Minute)}

	svc, err := NewMazeService(&Config{
		Repo:            repo,
		Cache:           cache,
		Tokenizer:       token.NewJwtService("test-secret", "vinom-maze"),
		Logger:          l,
		DefaultSize:     8,
		MaxSize:         32,
		DefaultStrategy: "rejection",
		Verify:          true,
		RenderConfig:    render.Config{LineWidth: 1, CellSize: 8},
	})
	require.NoError(t, err)

	return &fixture{svc: svc, repo: repo, cache: cache, log: &buf}
}

func seedPtr(v int64) *int64 { return &v }

func TestNewMazeService(t *testing.T) {
	l, err := logger.New("TEST", "", io.Discard)
	require.NoError(t, err)

	base := Config{
		Repo:         memstore.NewMazeRepo(),
		Cache:        memstore.NewRenderCache(0),
		Tokenizer:    token.NewJwtService("s", "i"),
		Logger:       l,
		DefaultSize:  10,
		RenderConfig: render.DefaultConfig(),
	}

	t.Run("missing dependency", func(t *testing.T) {
		c := base
		c.Repo = nil
		_, err := NewMazeService(&c)
		assert.ErrorIs(t, err, ErrMissingDependency)
	})

	t.Run("unknown default strategy", func(t *testing.T) {
		c := base
		c.DefaultStrategy = "prim"
		_, err := NewMazeService(&c)
		assert.ErrorIs(t, err, maze.ErrUnknownStrategy)
	})

	t.Run("bad render config", func(t *testing.T) {
		c := base
		c.RenderConfig = render.Config{LineWidth: 0, CellSize: 16}
		_, err := NewMazeService(&c)
		assert.ErrorIs(t, err, render.ErrInvalidConfig)
	})

	t.Run("default size above max", func(t *testing.T) {
		c := base
		c.MaxSize = 8
		_, err := NewMazeService(&c)
		assert.ErrorIs(t, err, maze.ErrInvalidSize)
	})

	t.Run("defaults applied", func(t *testing.T) {
		c := base
		svc, err := NewMazeService(&c)
		require.NoError(t, err)
		assert.Equal(t, maze.MaxSize, svc.maxSize)
		assert.Equal(t, maze.StrategyRejection, svc.defaultStrategy)
		assert.Equal(t, defaultShareTTL, svc.shareTTL)
	})
}

func TestMazeServiceCreate(t *testing.T) {
	t.Run("uses request parameters", func(t *testing.T) {
		f := newFixture(t)
		record, err := f.svc.Create(i.CreateMazeRequest{Size: 12, Seed: seedPtr(42), Strategy: "kruskal"})
		require.NoError(t, err)

		assert.Equal(t, 12, record.Size)
		assert.Equal(t, int64(42), record.Seed)
		assert.Equal(t, "kruskal", record.Strategy)
		assert.Equal(t, 12*12-1, record.Passages)

		stored, err := f.svc.Record(record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, stored)
		assert.Contains(t, f.log.String(), "maze generated")
	})

	t.Run("fills defaults", func(t *testing.T) {
		f := newFixture(t)
		f.svc.newSeed = func() int64 { return 7 }

		record, err := f.svc.Create(i.CreateMazeRequest{})
		require.NoError(t, err)
		assert.Equal(t, 8, record.Size)
		assert.Equal(t, int64(7), record.Seed)
		assert.Equal(t, "rejection", record.Strategy)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(i.CreateMazeRequest{Size: 1})
		assert.ErrorIs(t, err, maze.ErrInvalidSize)

		_, err = f.svc.Create(i.CreateMazeRequest{Size: 33})
		assert.ErrorIs(t, err, maze.ErrInvalidSize)

		_, err = f.svc.Create(i.CreateMazeRequest{Size: 5, Strategy: "wilson"})
		assert.ErrorIs(t, err, maze.ErrUnknownStrategy)
	})

	t.Run("record lookup miss", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Record(uuid.New())
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}

func TestMazeServiceRender(t *testing.T) {
	ctx := context.Background()

	t.Run("renders and caches", func(t *testing.T) {
		f := newFixture(t)
		record, err := f.svc.Create(i.CreateMazeRequest{Size: 5, Seed: seedPtr(3)})
		require.NoError(t, err)

		out, err := f.svc.Render(ctx, record, render.FormatASCII)
		require.NoError(t, err)

		m, err := record.Generate()
		require.NoError(t, err)
		assert.Equal(t, m.String(), string(out))

		again, err := f.svc.Render(ctx, record, render.FormatASCII)
		require.NoError(t, err)
		assert.Equal(t, out, again)
		assert.Equal(t, 1, f.cache.sets)
	})

	t.Run("formats are cached separately", func(t *testing.T) {
		f := newFixture(t)
		record, err := f.svc.Create(i.CreateMazeRequest{Size: 4, Seed: seedPtr(9)})
		require.NoError(t, err)

		svg, err := f.svc.Render(ctx, record, render.FormatSVG)
		require.NoError(t, err)
		assert.Contains(t, string(svg), "<svg ")

		png, err := f.svc.Render(ctx, record, render.FormatPNG)
		require.NoError(t, err)
		assert.Equal(t, []byte("\x89PNG"), png[:4])
		assert.Equal(t, 2, f.cache.sets)
	})

	t.Run("concurrent misses render once", func(t *testing.T) {
		f := newFixture(t)
		record, err := f.svc.Create(i.CreateMazeRequest{Size: 10, Seed: seedPtr(11)})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for n := 0; n < 8; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.svc.Render(ctx, record, render.FormatSVG)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, f.cache.sets)
		assert.Equal(t, 1, bytes.Count(f.log.Bytes(), []byte("maze rendered")))
	})

	t.Run("cache failures degrade to direct rendering", func(t *testing.T) {
		f := newFixture(t)
		record, err := f.svc.Create(i.CreateMazeRequest{Size: 4, Seed: seedPtr(1)})
		require.NoError(t, err)
		f.cache.fail = true

		out, err := f.svc.Render(ctx, record, render.FormatASCII)
		require.NoError(t, err)
		assert.NotEmpty(t, out)
		assert.Contains(t, f.log.String(), "render lock unavailable")
	})

	t.Run("unknown format", func(t *testing.T) {
		f := newFixture(t)
		record, err := f.svc.Create(i.CreateMazeRequest{Size: 4})
		require.NoError(t, err)

		_, err = f.svc.Render(ctx, record, render.Format("gif"))
		assert.ErrorIs(t, err, render.ErrUnknownFormat)
	})
}

func TestMazeServiceShare(t *testing.T) {
	t.Run("share then resolve", func(t *testing.T) {
		f := newFixture(t)
		record, err := f.svc.Create(i.CreateMazeRequest{Size: 6, Seed: seedPtr(time.Now().UnixNano())})
		require.NoError(t, err)

		tok, err := f.svc.Share(record.ID)
		require.NoError(t, err)

		resolved, err := f.svc.Resolve(tok)
		require.NoError(t, err)
		assert.Equal(t, record.ID, resolved.ID)
		assert.Equal(t, record.Seed, resolved.Seed)
	})

	t.Run("share unknown maze", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Share(uuid.New())
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("resolve garbage", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Resolve("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidShareToken)
	})

	t.Run("resolve token with mismatched claims", func(t *testing.T) {
		f := newFixture(t)
		record, err := f.svc.Create(i.CreateMazeRequest{Size: 6, Seed: seedPtr(2)})
		require.NoError(t, err)

		tok, err := f.svc.tokenizer.Generate(map[string]any{
			claimMazeID:   record.ID.String(),
			claimSize:     7,
			claimSeed:     "2",
			claimStrategy: record.Strategy,
		}, time.Minute)
		require.NoError(t, err)

		_, err = f.svc.Resolve(tok)
		assert.ErrorIs(t, err, ErrInvalidShareToken)
	})

	t.Run("resolve token for deleted maze", func(t *testing.T) {
		f := newFixture(t)
		tok, err := f.svc.tokenizer.Generate(map[string]any{claimMazeID: uuid.NewString()}, time.Minute)
		require.NoError(t, err)

		_, err = f.svc.Resolve(tok)
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})
}
