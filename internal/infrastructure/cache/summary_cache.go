package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aimalabs/meeting-review/internal/domain/entities"
)

const summaryKeyPrefix = "summary:"

// RedisSummaryCache caches persisted meeting summaries keyed by meeting file
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache creates a Redis-backed summary cache
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl}
}

// Get returns the cached summary, or ok=false on a miss
func (c *RedisSummaryCache) Get(ctx context.Context, meetingFile string) (*entities.MeetingSummary, bool, error) {
	data, err := c.client.Get(ctx, summaryKeyPrefix+meetingFile).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var summary entities.MeetingSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it
		return nil, false, fmt.Errorf("decode cached summary: %w", err)
	}
	return &summary, true, nil
}

// Set stores a summary with the configured TTL
func (c *RedisSummaryCache) Set(ctx context.Context, meetingFile string, summary *entities.MeetingSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKeyPrefix+meetingFile, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry for one meeting file
func (c *RedisSummaryCache) Invalidate(ctx context.Context, meetingFile string) error {
	if err := c.client.Del(ctx, summaryKeyPrefix+meetingFile).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
