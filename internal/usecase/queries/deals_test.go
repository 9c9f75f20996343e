//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"farewatch/internal/pkg/clock"
	"farewatch/internal/usecase/queries"
	queriesmock "farewatch/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestActiveDeals(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	newQueries := func(t *testing.T) (*queriesmock.MockDealReadStore, queries.DealQueries) {
		t.Helper()
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDealReadStore(ctrl)
		return store, queries.NewDealQueries(store, clock.NewMockClock(now))
	}

	t.Run("passes the frozen now to the store", func(t *testing.T) {
		store, q := newQueries(t)
		store.EXPECT().FindActive(gomock.Any(), now, 70, 10).
			Return([]*queries.DealView{}, nil).Times(1)

		_, err := q.ActiveDeals(context.Background(), 70, 10)
		require.NoError(t, err)
	})

	t.Run("zero limit becomes the default", func(t *testing.T) {
		store, q := newQueries(t)
		store.EXPECT().FindActive(gomock.Any(), now, 0, 50).
			Return([]*queries.DealView{}, nil).Times(1)

		_, err := q.ActiveDeals(context.Background(), 0, 0)
		require.NoError(t, err)
	})

	t.Run("oversized limit is clamped", func(t *testing.T) {
		store, q := newQueries(t)
		store.EXPECT().FindActive(gomock.Any(), now, 0, 200).
			Return([]*queries.DealView{}, nil).Times(1)

		_, err := q.ActiveDeals(context.Background(), 0, 5000)
		require.NoError(t, err)
	})

	t.Run("negative min score becomes zero", func(t *testing.T) {
		store, q := newQueries(t)
		store.EXPECT().FindActive(gomock.Any(), now, 0, 50).
			Return([]*queries.DealView{}, nil).Times(1)

		_, err := q.ActiveDeals(context.Background(), -10, 0)
		require.NoError(t, err)
	})
}

func TestRecentRuns(t *testing.T) {
	newQueries := func(t *testing.T) (*queriesmock.MockRunReadStore, queries.RunQueries) {
		t.Helper()
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRunReadStore(ctrl)
		return store, queries.NewRunQueries(store)
	}

	t.Run("zero limit becomes the default", func(t *testing.T) {
		store, q := newQueries(t)
		store.EXPECT().FindRecent(gomock.Any(), 20).
			Return([]*queries.RunView{}, nil).Times(1)

		views, err := q.RecentRuns(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("oversized limit is clamped", func(t *testing.T) {
		store, q := newQueries(t)
		store.EXPECT().FindRecent(gomock.Any(), 100).
			Return([]*queries.RunView{}, nil).Times(1)

		_, err := q.RecentRuns(context.Background(), 999)
		require.NoError(t, err)
	})
}
