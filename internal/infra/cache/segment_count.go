package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SegmentCountCache keeps the last recount per segment in Redis so the
// segments list doesn't re-scan the lead base on every page load. A recount
// or rule edit refreshes/drops the entry; the TTL bounds staleness either
// way.
type SegmentCountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSegmentCountCache(client *redis.Client, ttl time.Duration) *SegmentCountCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &SegmentCountCache{client: client, ttl: ttl}
}

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

func key(segmentID string) string {
	return "crm:segment:" + segmentID + ":lead_count"
}

func (c *SegmentCountCache) GetCount(ctx context.Context, segmentID string) (int, bool, error) {
	val, err := c.client.Get(ctx, key(segmentID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cache get: %w", err)
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("cache value corrupt: %w", err)
	}
	return count, true, nil
}

func (c *SegmentCountCache) SetCount(ctx context.Context, segmentID string, count int) error {
	if err := c.client.Set(ctx, key(segmentID), count, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *SegmentCountCache) Invalidate(ctx context.Context, segmentID string) error {
	if err := c.client.Del(ctx, key(segmentID)).Err(); err != nil {
		return fmt.Errorf("cache del: %w", err)
	}
	return nil
}
