//go:build unit

package alert_test

import (
	"testing"
	"time"

	"farewatch/internal/domain/alert"
	"farewatch/internal/domain/route"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustQuery(t *testing.T, origin, destination string) route.Query {
	t.Helper()
	o, err := route.NewAirportCode(origin)
	require.NoError(t, err)
	d, err := route.NewAirportCode(destination)
	require.NoError(t, err)
	q, err := route.NewQuery(o, d, nil, nil)
	require.NoError(t, err)
	return q
}

func newActiveAlert(t *testing.T, target string) *alert.PriceAlert {
	t.Helper()
	a, err := alert.NewPriceAlert(
		uuid.Nil,
		uuid.New(),
		"owner@example.com",
		mustQuery(t, "JFK", "LHR"),
		decimal.RequireFromString(target),
		"USD",
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return a
}

func TestNewPriceAlert(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		a := newActiveAlert(t, "500.00")

		assert.NotEqual(t, uuid.Nil, a.ID())
		assert.True(t, a.IsActive())
		assert.Nil(t, a.TriggeredAt())
		assert.Nil(t, a.CurrentLowestPrice())
		assert.Nil(t, a.LastCheckedAt())
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		_, err := alert.NewPriceAlert(
			uuid.Nil, uuid.New(), "owner@example.com",
			mustQuery(t, "JFK", "LHR"),
			decimal.Zero, "USD", time.Now(),
		)
		assert.ErrorIs(t, err, alert.ErrNonPositiveTarget)

		_, err = alert.NewPriceAlert(
			uuid.Nil, uuid.New(), "owner@example.com",
			mustQuery(t, "JFK", "LHR"),
			decimal.RequireFromString("-10"), "USD", time.Now(),
		)
		assert.ErrorIs(t, err, alert.ErrNonPositiveTarget)
	})

	t.Run("rejects missing owner email", func(t *testing.T) {
		_, err := alert.NewPriceAlert(
			uuid.Nil, uuid.New(), "",
			mustQuery(t, "JFK", "LHR"),
			decimal.RequireFromString("500"), "USD", time.Now(),
		)
		assert.ErrorIs(t, err, alert.ErrInvalidOwnerEmail)
	})
}

func TestPriceAlertEvaluate(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	t.Run("triggers below target", func(t *testing.T) {
		a := newActiveAlert(t, "500.00")

		triggered := a.Evaluate(decimal.RequireFromString("499.99"), now)

		assert.True(t, triggered)
		assert.False(t, a.IsActive())
		require.NotNil(t, a.TriggeredAt())
		assert.Equal(t, now, *a.TriggeredAt())
	})

	t.Run("triggers at exact target", func(t *testing.T) {
		a := newActiveAlert(t, "500.00")

		triggered := a.Evaluate(decimal.RequireFromString("500.00"), now)

		assert.True(t, triggered)
	})

	t.Run("does not trigger above target", func(t *testing.T) {
		a := newActiveAlert(t, "500.00")

		triggered := a.Evaluate(decimal.RequireFromString("500.01"), now)

		assert.False(t, triggered)
		assert.True(t, a.IsActive())
		assert.Nil(t, a.TriggeredAt())
	})

	t.Run("observation always recorded even without trigger", func(t *testing.T) {
		a := newActiveAlert(t, "500.00")

		a.Evaluate(decimal.RequireFromString("742.50"), now)

		require.NotNil(t, a.CurrentLowestPrice())
		assert.True(t, a.CurrentLowestPrice().Equal(decimal.RequireFromString("742.50")))
		require.NotNil(t, a.LastCheckedAt())
		assert.Equal(t, now, *a.LastCheckedAt())
	})

	t.Run("triggers at most once", func(t *testing.T) {
		a := newActiveAlert(t, "500.00")

		first := a.Evaluate(decimal.RequireFromString("480.00"), now)
		second := a.Evaluate(decimal.RequireFromString("450.00"), now.Add(time.Hour))

		assert.True(t, first)
		assert.False(t, second)
		require.NotNil(t, a.TriggeredAt())
		assert.Equal(t, now, *a.TriggeredAt())

		// observation still recorded on the second pass
		assert.True(t, a.CurrentLowestPrice().Equal(decimal.RequireFromString("450.00")))
	})

	t.Run("inactive alert never triggers", func(t *testing.T) {
		a := alert.Restore(
			uuid.New(), uuid.New(), "owner@example.com",
			mustQuery(t, "JFK", "LHR"),
			decimal.RequireFromString("500.00"), "USD",
			nil, false, nil, nil, now,
		)

		triggered := a.Evaluate(decimal.RequireFromString("100.00"), now)

		assert.False(t, triggered)
		assert.Nil(t, a.TriggeredAt())
	})
}
