package queries

import (
	"context"
	"time"

	"farewatch/internal/pkg/clock"
)

type DealReadStore interface {
	FindActive(ctx context.Context, now time.Time, minScore, limit int) ([]*DealView, error)
}

type DealQueries interface {
	ActiveDeals(ctx context.Context, minScore, limit int) ([]*DealView, error)
}

const (
	defaultDealLimit = 50
	maxDealLimit     = 200
)

type dealQueriesImpl struct {
	store DealReadStore
	clock clock.Clock
}

func NewDealQueries(store DealReadStore, clock clock.Clock) DealQueries {
	return &dealQueriesImpl{store: store, clock: clock}
}

// ActiveDeals returns non-expired deals ranked by score. Expired deals stay
// in storage as an audit trail; they are filtered here, never deleted.
func (q *dealQueriesImpl) ActiveDeals(ctx context.Context, minScore, limit int) ([]*DealView, error) {
	if limit <= 0 {
		limit = defaultDealLimit
	}
	if limit > maxDealLimit {
		limit = maxDealLimit
	}
	if minScore < 0 {
		minScore = 0
	}
	return q.store.FindActive(ctx, q.clock.Now(), minScore, limit)
}
