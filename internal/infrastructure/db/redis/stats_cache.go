package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/colisdirect/delivery-system/internal/core/domain"
)

const statsTTL = 30 * time.Second

// StatsCache keeps per-scope status counts in Redis for a short window, so
// dashboard polling does not hammer the aggregation pipeline.
// Key format: stats:<scope>
type StatsCache struct {
	client *redis.Client
}

// NewStatsCache wraps the given Redis client.
func NewStatsCache(client *redis.Client) *StatsCache {
	return &StatsCache{client: client}
}

func (c *StatsCache) Get(ctx context.Context, scopeKey string) (*domain.StatusCounts, bool, error) {
	raw, err := c.client.Get(ctx, c.key(scopeKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stats cache get: %w", err)
	}

	var counts domain.StatusCounts
	if err := json.Unmarshal(raw, &counts); err != nil {
		// A corrupt entry just means a cache miss.
		return nil, false, nil
	}
	return &counts, true, nil
}

func (c *StatsCache) Set(ctx context.Context, scopeKey string, counts *domain.StatusCounts) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("stats cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(scopeKey), raw, statsTTL).Err()
}

func (c *StatsCache) key(scopeKey string) string {
	return "stats:" + scopeKey
}
