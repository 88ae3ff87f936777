// Package memstore provides in-process implementations of the maze
// repository and render cache for single-instance deployments and tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/catalog"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

var (
	_ i.MazeRepo    = &MazeRepo{}
	_ i.RenderCache = &RenderCache{}
)

// MazeRepo keeps records in a map.
type MazeRepo struct {
	records map[uuid.UUID]catalog.Record
	sync.RWMutex
}

// NewMazeRepo returns an empty MazeRepo.
func NewMazeRepo() *MazeRepo {
	return &MazeRepo{records: make(map[uuid.UUID]catalog.Record)}
}

// Save inserts or replaces a record.
func (r *MazeRepo) Save(record *catalog.Record) error {
	r.Lock()
	defer r.Unlock()
	r.records[record.ID] = *record
	return nil
}

// ByID returns a copy of the record, or catalog.ErrNotFound.
func (r *MazeRepo) ByID(id uuid.UUID) (*catalog.Record, error) {
	r.RLock()
	defer r.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &record, nil
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// keyLock is a one-slot semaphore shared by every caller waiting on a key.
type keyLock struct {
	slot chan struct{}
	refs int
}

// RenderCache is a TTL map with per-key locks. A key's lock is dropped as
// soon as no caller holds or waits for it.
type RenderCache struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
	locks   map[string]*keyLock
	mu      sync.Mutex
}

// NewRenderCache returns a cache whose entries expire after ttl.
// A ttl of zero or less keeps entries forever.
func NewRenderCache(ttl time.Duration) *RenderCache {
	return &RenderCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
		locks:   make(map[string]*keyLock),
	}
}

// Get returns a copy of the cached value for key.
func (c *RenderCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set stores a copy of value under key.
func (c *RenderCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := cacheEntry{value: append([]byte(nil), value...)}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.entries[key] = e
	return nil
}

// Lock blocks until key is free or ctx is done. The returned function is
// safe to call more than once.
func (c *RenderCache) Lock(ctx context.Context, key string) (func(), error) {
	l := c.acquire(key)

	select {
	case l.slot <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-l.slot
				c.release(key, l)
			})
		}, nil
	case <-ctx.Done():
		c.release(key, l)
		return nil, ctx.Err()
	}
}

func (c *RenderCache) acquire(key string) *keyLock {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.locks[key]
	if !ok {
		l = &keyLock{slot: make(chan struct{}, 1)}
		c.locks[key] = l
	}
	l.refs++
	return l
}

func (c *RenderCache) release(key string, l *keyLock) {
	c.mu.Lock()
	defer c.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(c.locks, key)
	}
}

// lockedKeys reports how many keys currently have holders or waiters.
func (c *RenderCache) lockedKeys() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.locks)
}
