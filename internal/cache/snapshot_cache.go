// Package cache provides Redis-backed storage for the last-good watch
// snapshots, so a recreated watch can serve a stale view while its first
// cycle is still in flight.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thread-watch-api/internal/models"
)

// SnapshotCache stores serialized watch snapshots with a TTL
type SnapshotCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSnapshotCache creates a Redis-backed snapshot cache
func NewSnapshotCache(redisURL string, ttl time.Duration) (*SnapshotCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &SnapshotCache{
		client: client,
		prefix: "snapshot:",
		ttl:    ttl,
	}, nil
}

// NewSnapshotCacheWithClient creates a cache from an existing Redis client
func NewSnapshotCacheWithClient(client *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		client: client,
		prefix: "snapshot:",
		ttl:    ttl,
	}
}

// key generates the Redis key for a watch id
func (c *SnapshotCache) key(watchID string) string {
	return c.prefix + watchID
}

// Save stores the latest snapshot for a watch, refreshing its TTL
func (c *SnapshotCache) Save(ctx context.Context, watchID string, snap *models.WatchSnapshot) error {
	jsonData, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, c.key(watchID), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load retrieves the stored snapshot for a watch. A cache miss returns
// nil without an error.
func (c *SnapshotCache) Load(ctx context.Context, watchID string) (*models.WatchSnapshot, error) {
	jsonData, err := c.client.Get(ctx, c.key(watchID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap models.WatchSnapshot
	if err := json.Unmarshal([]byte(jsonData), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Delete removes a watch's stored snapshot
func (c *SnapshotCache) Delete(ctx context.Context, watchID string) error {
	if err := c.client.Del(ctx, c.key(watchID)).Err(); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection is healthy
func (c *SnapshotCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying Redis connection
func (c *SnapshotCache) Close() error {
	return c.client.Close()
}
