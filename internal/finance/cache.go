package finance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheVersionKey = "finance:snapshot:version"

// Cache stores computed snapshot views in Redis, keyed by period token and
// a global version counter. Bumping the version on any write invalidates
// every cached period at once, which is cheaper than tracking which periods
// a given invoice or order touches.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache instantiates the cache helper. A nil client disables caching.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) key(ctx context.Context, token PeriodToken) (string, error) {
	ver, err := c.version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("finance:snapshot:%d:%s", ver, token), nil
}

func (c *Cache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.Set(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Get loads a cached view. The second return is false on a miss.
func (c *Cache) Get(ctx context.Context, token PeriodToken) (SnapshotView, bool, error) {
	if c == nil || c.client == nil {
		return SnapshotView{}, false, nil
	}
	key, err := c.key(ctx, token)
	if err != nil {
		return SnapshotView{}, false, err
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return SnapshotView{}, false, nil
	}
	if err != nil {
		return SnapshotView{}, false, err
	}
	var view SnapshotView
	if err := json.Unmarshal(payload, &view); err != nil {
		return SnapshotView{}, false, err
	}
	return view, true, nil
}

// Set stores a computed view under the current version.
func (c *Cache) Set(ctx context.Context, token PeriodToken, view SnapshotView) error {
	if c == nil || c.client == nil {
		return nil
	}
	key, err := c.key(ctx, token)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Bump invalidates all cached snapshots by incrementing the version.
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}
