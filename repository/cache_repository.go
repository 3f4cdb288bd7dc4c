package repository

import (
	"context"
	"time"
)

// CacheRepository fronts hot reads (loan status lookups are polled by the
// portals). Implementations must tolerate being skipped: a cache miss or
// error is never fatal to the caller.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
