package redis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"study-tracker/domain/ports"
	"study-tracker/pkg/stats"
)

// jsonStore is the part of Client the cache needs
type jsonStore interface {
	GetJSON(ctx context.Context, key string, target interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// StatsCache keeps dashboard summaries under stats:<ownerId>
type StatsCache struct {
	store jsonStore
	ttl   time.Duration
}

func NewStatsCache(store jsonStore, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &StatsCache{store: store, ttl: ttl}
}

var _ ports.StatsCache = (*StatsCache)(nil)

func StatsKey(userID uuid.UUID) string {
	return "stats:" + userID.String()
}

func (c *StatsCache) Get(ctx context.Context, userID uuid.UUID) (*stats.Summary, bool, error) {
	var summary stats.Summary
	found, err := c.store.GetJSON(ctx, StatsKey(userID), &summary)
	if err != nil || !found {
		return nil, false, err
	}
	return &summary, true, nil
}

func (c *StatsCache) Set(ctx context.Context, userID uuid.UUID, summary *stats.Summary) error {
	return c.store.SetJSON(ctx, StatsKey(userID), summary, c.ttl)
}

func (c *StatsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.store.Del(ctx, StatsKey(userID))
}
