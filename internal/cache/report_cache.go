package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const reportKey = "report:dashboard"

// DashboardData is the cached dashboard summary.
type DashboardData struct {
	TotalCustomers  int       `json:"totalCustomers"`
	ActiveCustomers int       `json:"activeCustomers"`
	OpenTickets     int       `json:"openTickets"`
	PendingInvoices int       `json:"pendingInvoices"`
	OverdueInvoices int       `json:"overdueInvoices"`
	DevicesOnline   int       `json:"devicesOnline"`
	DevicesOffline  int       `json:"devicesOffline"`
	CachedAt        time.Time `json:"cachedAt"`
}

// ReportCache caches the dashboard summary in Redis.
type ReportCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewReportCache creates a new ReportCache.
func NewReportCache(redis *RedisClient, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ReportCache{redis: redis, ttl: ttl}
}

// Get retrieves the cached summary. Returns (nil, nil) on a cache miss.
func (c *ReportCache) Get(ctx context.Context) (*DashboardData, error) {
	raw, err := c.redis.Get(ctx, reportKey)
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dashboard cache: %w", err)
	}

	var data DashboardData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard cache: %w", err)
	}
	return &data, nil
}

// Set stores the summary with the configured TTL.
func (c *ReportCache) Set(ctx context.Context, data *DashboardData) error {
	data.CachedAt = time.Now()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard cache: %w", err)
	}
	if err := c.redis.Set(ctx, reportKey, string(jsonData), c.ttl); err != nil {
		return fmt.Errorf("failed to set dashboard cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.redis.Delete(ctx, reportKey)
}
