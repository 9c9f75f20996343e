package route

import (
	"strings"
	"time"

	"farewatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrInvalidCatalogEntry = errs.New("invalid catalog entry")

// Query identifies a priceable route: an origin/destination pair with an
// optional departure date window. Immutable once constructed.
type Query struct {
	origin      AirportCode
	destination AirportCode
	departFrom  *time.Time
	departUntil *time.Time
}

func NewQuery(origin, destination AirportCode, departFrom, departUntil *time.Time) (Query, error) {
	if origin.IsZero() || destination.IsZero() {
		return Query{}, ErrInvalidAirportCode
	}
	if origin == destination {
		return Query{}, ErrSameEndpoints
	}
	return Query{
		origin:      origin,
		destination: destination,
		departFrom:  departFrom,
		departUntil: departUntil,
	}, nil
}

func (q Query) Origin() AirportCode      { return q.origin }
func (q Query) Destination() AirportCode { return q.destination }
func (q Query) DepartFrom() *time.Time   { return q.departFrom }
func (q Query) DepartUntil() *time.Time  { return q.departUntil }

// Key is the stable identifier used for per-route grouping and logging.
func (q Query) Key() string {
	return q.origin.String() + "-" + q.destination.String()
}

// ParseCatalog converts configured "ORIG-DEST" pairs into queries with an
// open date window.
func ParseCatalog(entries []string) ([]Query, error) {
	queries := make([]Query, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(strings.TrimSpace(entry), "-", 2)
		if len(parts) != 2 {
			return nil, errs.Wrapf(ErrInvalidCatalogEntry, "entry %q", entry)
		}
		origin, err := NewAirportCode(parts[0])
		if err != nil {
			return nil, errs.Wrapf(err, "entry %q", entry)
		}
		destination, err := NewAirportCode(parts[1])
		if err != nil {
			return nil, errs.Wrapf(err, "entry %q", entry)
		}
		q, err := NewQuery(origin, destination, nil, nil)
		if err != nil {
			return nil, errs.Wrapf(err, "entry %q", entry)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

// ObservedPrice is one price observation for a route. Created fresh on every
// fetch and never mutated.
type ObservedPrice struct {
	Query      Query
	Price      decimal.Decimal
	Currency   string
	ObservedAt time.Time
	Source     string
}

// Lowest returns the cheapest observation, ignoring currency mismatches with
// the first observation (mixed-currency comparisons are a normalizer concern).
func Lowest(observations []ObservedPrice) (ObservedPrice, bool) {
	if len(observations) == 0 {
		return ObservedPrice{}, false
	}
	lowest := observations[0]
	for _, o := range observations[1:] {
		if o.Currency == lowest.Currency && o.Price.LessThan(lowest.Price) {
			lowest = o
		}
	}
	return lowest, true
}
