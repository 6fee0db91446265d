package ports

import (
	"context"

	"github.com/google/uuid"

	"study-tracker/pkg/stats"
)

// StatsCache caches the dashboard summary per owner (Redis)
type StatsCache interface {
	// Get returns found=false on a miss
	Get(ctx context.Context, userID uuid.UUID) (summary *stats.Summary, found bool, err error)
	Set(ctx context.Context, userID uuid.UUID, summary *stats.Summary) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
