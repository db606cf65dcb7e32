package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
}

// StateStore keeps short-lived single-use values such as OAuth state.
type StateStore interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Take returns and deletes the value; ok is false when absent or expired.
	Take(ctx context.Context, key string) (value string, ok bool, err error)
}

// Store is what the services need from the cache backend.
type Store interface {
	Cache
	StateStore
}
