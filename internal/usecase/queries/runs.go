package queries

import (
	"context"
)

type RunReadStore interface {
	FindRecent(ctx context.Context, limit int) ([]*RunView, error)
}

type RunQueries interface {
	RecentRuns(ctx context.Context, limit int) ([]*RunView, error)
}

const (
	defaultRunLimit = 20
	maxRunLimit     = 100
)

type runQueriesImpl struct {
	store RunReadStore
}

func NewRunQueries(store RunReadStore) RunQueries {
	return &runQueriesImpl{store: store}
}

func (q *runQueriesImpl) RecentRuns(ctx context.Context, limit int) ([]*RunView, error) {
	if limit <= 0 {
		limit = defaultRunLimit
	}
	if limit > maxRunLimit {
		limit = maxRunLimit
	}
	return q.store.FindRecent(ctx, limit)
}
