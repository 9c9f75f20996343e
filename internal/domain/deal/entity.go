package deal

import (
	"time"

	"farewatch/internal/domain/route"
	"farewatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Offer rejections are data-quality filters, not failures. The orchestrator
// counts them and moves on.
var (
	ErrNonPositivePrice    = errs.New("offer rejected: non-positive price")
	ErrUnknownCurrency     = errs.New("offer rejected: unrecognized currency")
	ErrMissingEndpoints    = errs.New("offer rejected: missing route endpoints")
	ErrExpiredOffer        = errs.New("offer rejected: already expired")
	ErrInvalidExpiryExtend = errs.New("expiry can only move forward")
)

var recognizedCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "JPY": {}, "CAD": {}, "AUD": {},
}

// RawOffer is the provider-shaped input to normalization.
type RawOffer struct {
	Origin        string
	Destination   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Currency      string
	Airline       string
	DepartureDate time.Time
	ReturnDate    *time.Time
	Link          string
	ExpiresAt     time.Time
	Source        string
}

// Deal is a normalized, scored, time-bounded offer. Its price is immutable
// after creation; a changed price produces a new Deal so history is preserved.
// Expiry passes without deletion and active deals are query-filtered.
type Deal struct {
	id            uuid.UUID
	origin        route.AirportCode
	destination   route.AirportCode
	price         decimal.Decimal
	originalPrice *decimal.Decimal
	currency      string
	airline       string
	departureDate time.Time
	returnDate    *time.Time
	score         int
	affiliateLink string
	createdAt     time.Time
	expiresAt     time.Time
}

func Restore(
	id uuid.UUID,
	origin, destination route.AirportCode,
	price decimal.Decimal,
	originalPrice *decimal.Decimal,
	currency, airline string,
	departureDate time.Time,
	returnDate *time.Time,
	score int,
	affiliateLink string,
	createdAt, expiresAt time.Time,
) *Deal {
	return &Deal{
		id:            id,
		origin:        origin,
		destination:   destination,
		price:         price,
		originalPrice: originalPrice,
		currency:      currency,
		airline:       airline,
		departureDate: departureDate,
		returnDate:    returnDate,
		score:         score,
		affiliateLink: affiliateLink,
		createdAt:     createdAt,
		expiresAt:     expiresAt,
	}
}

func (d *Deal) ID() uuid.UUID                   { return d.id }
func (d *Deal) Origin() route.AirportCode       { return d.origin }
func (d *Deal) Destination() route.AirportCode  { return d.destination }
func (d *Deal) Price() decimal.Decimal          { return d.price }
func (d *Deal) OriginalPrice() *decimal.Decimal { return d.originalPrice }
func (d *Deal) Currency() string                { return d.currency }
func (d *Deal) Airline() string                 { return d.airline }
func (d *Deal) DepartureDate() time.Time        { return d.departureDate }
func (d *Deal) ReturnDate() *time.Time          { return d.returnDate }
func (d *Deal) Score() int                      { return d.score }
func (d *Deal) AffiliateLink() string           { return d.affiliateLink }
func (d *Deal) CreatedAt() time.Time            { return d.createdAt }
func (d *Deal) ExpiresAt() time.Time            { return d.expiresAt }

func (d *Deal) IsActive(now time.Time) bool {
	return now.Before(d.expiresAt)
}

func (d *Deal) RouteKey() string {
	return d.origin.String() + "-" + d.destination.String()
}

// ExtendExpiry is the only permitted mutation of a persisted deal.
func (d *Deal) ExtendExpiry(until time.Time) error {
	if until.Before(d.expiresAt) {
		return ErrInvalidExpiryExtend
	}
	d.expiresAt = until
	return nil
}
