//go:build unit

package route_test

import (
	"testing"
	"time"

	"farewatch/internal/domain/route"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAirportCode(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "uppercase code", input: "JFK", want: "JFK"},
		{name: "lowercase normalized", input: "lhr", want: "LHR"},
		{name: "surrounding whitespace trimmed", input: " nrt ", want: "NRT"},
		{name: "too short", input: "JF", errIs: route.ErrInvalidAirportCode},
		{name: "too long", input: "JFKX", errIs: route.ErrInvalidAirportCode},
		{name: "empty", input: "", errIs: route.ErrInvalidAirportCode},
		{name: "digits rejected", input: "J1K", errIs: route.ErrInvalidAirportCode},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, err := route.NewAirportCode(tc.input)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, code.String())
		})
	}
}

func TestNewQuery(t *testing.T) {
	jfk, err := route.NewAirportCode("JFK")
	require.NoError(t, err)
	lhr, err := route.NewAirportCode("LHR")
	require.NoError(t, err)

	t.Run("key format", func(t *testing.T) {
		q, err := route.NewQuery(jfk, lhr, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "JFK-LHR", q.Key())
	})

	t.Run("rejects identical endpoints", func(t *testing.T) {
		_, err := route.NewQuery(jfk, jfk, nil, nil)
		assert.ErrorIs(t, err, route.ErrSameEndpoints)
	})

	t.Run("rejects zero endpoints", func(t *testing.T) {
		_, err := route.NewQuery(route.AirportCode{}, lhr, nil, nil)
		assert.ErrorIs(t, err, route.ErrInvalidAirportCode)
	})
}

func TestParseCatalog(t *testing.T) {
	t.Run("parses configured pairs", func(t *testing.T) {
		queries, err := route.ParseCatalog([]string{"JFK-LHR", " lax-nrt "})
		require.NoError(t, err)
		require.Len(t, queries, 2)
		assert.Equal(t, "JFK-LHR", queries[0].Key())
		assert.Equal(t, "LAX-NRT", queries[1].Key())
	})

	t.Run("rejects malformed entries", func(t *testing.T) {
		cases := []string{"JFKLHR", "JFK-", "-LHR", "JFK-JFK", ""}
		for _, entry := range cases {
			_, err := route.ParseCatalog([]string{entry})
			assert.Error(t, err, "entry %q should be rejected", entry)
		}
	})

	t.Run("empty catalog is valid", func(t *testing.T) {
		queries, err := route.ParseCatalog(nil)
		require.NoError(t, err)
		assert.Empty(t, queries)
	})
}

func TestLowest(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	obs := func(price, currency string) route.ObservedPrice {
		return route.ObservedPrice{
			Price:      decimal.RequireFromString(price),
			Currency:   currency,
			ObservedAt: now,
		}
	}

	t.Run("empty slice", func(t *testing.T) {
		_, ok := route.Lowest(nil)
		assert.False(t, ok)
	})

	t.Run("picks the cheapest", func(t *testing.T) {
		lowest, ok := route.Lowest([]route.ObservedPrice{
			obs("500", "USD"),
			obs("420", "USD"),
			obs("480", "USD"),
		})
		require.True(t, ok)
		assert.True(t, lowest.Price.Equal(decimal.RequireFromString("420")))
	})

	t.Run("ignores other currencies", func(t *testing.T) {
		lowest, ok := route.Lowest([]route.ObservedPrice{
			obs("500", "USD"),
			obs("100", "GBP"),
		})
		require.True(t, ok)
		assert.Equal(t, "USD", lowest.Currency)
		assert.True(t, lowest.Price.Equal(decimal.RequireFromString("500")))
	})
}
