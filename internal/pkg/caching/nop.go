package caching

import (
	"context"
	"time"

	"github.com/go-redis/cache/v9"
)

// NopCache never stores anything. Every Get is a miss.
type NopCache struct{}

func (NopCache) Get(ctx context.Context, key string, target any) error {
	return cache.ErrCacheMiss
}

func (NopCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (NopCache) Delete(ctx context.Context, key string) error {
	return nil
}
