package i

import (
	"context"
)

// RenderCache stores rendered mazes so repeated requests skip generation.
type RenderCache interface {
	// Get returns the cached bytes for key; ok is false on a miss.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key until the cache's TTL expires.
	Set(ctx context.Context, key string, value []byte) error

	// Lock serialises work on key across callers. The returned function
	// releases the lock.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
