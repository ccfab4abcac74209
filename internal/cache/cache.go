package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a byte cache with per-entry expiry handled by the implementation.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Options select and size the cache backend.
type Options struct {
	TTL        time.Duration
	MaxEntries int
	RedisURL   string
}

// New returns the configured backend. A non-positive TTL disables caching and
// returns nil, which callers treat as "no cache".
func New(ctx context.Context, opts Options) (Cache, error) {
	if opts.TTL <= 0 {
		return nil, nil
	}
	if url := strings.TrimSpace(opts.RedisURL); url != "" {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(parsed)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return NewRedis(client, opts.TTL), nil
	}
	return NewMemory(opts.TTL, opts.MaxEntries), nil
}

// Key hashes a request URL into a compact cache key.
func Key(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "shelf:shop:" + hex.EncodeToString(sum[:])
}
