package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/complaint-service/internal/repository"
)

// StatsCache keeps per-caller dashboard stats in Redis for a short TTL so the
// dashboard does not hammer the complaints table. A nil cache is a no-op.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache builds a cache; ttlSeconds <= 0 disables caching.
func NewStatsCache(client *redis.Client, ttlSeconds int) *StatsCache {
	if client == nil || ttlSeconds <= 0 {
		return nil
	}
	return &StatsCache{client: client, ttl: time.Duration(ttlSeconds) * time.Second}
}

func statsKey(userID int64) string {
	return fmt.Sprintf("dashboard:stats:%d", userID)
}

// Get returns cached stats for the user, if present.
func (c *StatsCache) Get(ctx context.Context, userID int64) (*repository.DashboardStats, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, statsKey(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var stats repository.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

// Set stores stats for the user. Cache failures are ignored; the source of
// truth is the database.
func (c *StatsCache) Set(ctx context.Context, userID int64, stats *repository.DashboardStats) {
	if c == nil || stats == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, statsKey(userID), raw, c.ttl).Err()
}
