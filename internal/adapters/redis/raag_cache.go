package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gurmatacademy/portal/internal/domain/model"
)

const raagIndexKey = "gurbani:raag_index"

// RaagCache caches the scraped raag index in Redis so the upstream HTML page
// is fetched at most once per TTL window.
type RaagCache struct {
	client redis.UniversalClient
	key    string
}

// NewRaagCache creates a new Redis-backed raag index cache.
func NewRaagCache(client redis.UniversalClient) *RaagCache {
	return &RaagCache{client: client, key: raagIndexKey}
}

// Get returns the cached raag index. The second return is false on a cache miss.
func (c *RaagCache) Get(ctx context.Context) ([]model.RaagEntry, bool, error) {
	data, err := c.client.Get(ctx, c.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get raag index: %w", err)
	}

	var entries []model.RaagEntry
	if unmarshalErr := json.Unmarshal([]byte(data), &entries); unmarshalErr != nil {
		// Treat a corrupt cache entry as a miss so the next fetch overwrites it.
		return nil, false, nil
	}
	return entries, true, nil
}

// Set stores the raag index with the given TTL.
func (c *RaagCache) Set(ctx context.Context, entries []model.RaagEntry, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("raag cache TTL must be positive")
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal raag index: %w", err)
	}
	return c.client.Set(ctx, c.key, data, ttl).Err()
}
