package deal

import (
	"time"

	"farewatch/internal/domain/route"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	minScore = 0
	maxScore = 100

	// Neutral score when no reference price exists for the route yet.
	baselineScore = 50

	// Offers close to expiry are worth less shelf space on the storefront.
	freshnessHorizonDays = 14
	freshnessBonusMax    = 10
)

// Normalizer converts raw provider offers into canonical scored deals.
// Deterministic given (offer, reference, now); no randomness anywhere.
type Normalizer struct {
	// referenceMultiplier scales a route's recent average price into the
	// comparison baseline, e.g. 1.0 compares against the average itself.
	referenceMultiplier decimal.Decimal
}

func NewNormalizer(referenceMultiplier decimal.Decimal) *Normalizer {
	if !referenceMultiplier.IsPositive() {
		referenceMultiplier = decimal.NewFromInt(1)
	}
	return &Normalizer{referenceMultiplier: referenceMultiplier}
}

// Normalize validates and scores a raw offer. A rejection error means the
// offer is discarded, not that the run failed.
func (n *Normalizer) Normalize(raw RawOffer, recentRoutePrice *decimal.Decimal, now time.Time) (*Deal, error) {
	origin, err := route.NewAirportCode(raw.Origin)
	if err != nil {
		return nil, ErrMissingEndpoints
	}
	destination, err := route.NewAirportCode(raw.Destination)
	if err != nil {
		return nil, ErrMissingEndpoints
	}
	if !raw.Price.IsPositive() {
		return nil, ErrNonPositivePrice
	}
	if _, ok := recognizedCurrencies[raw.Currency]; !ok {
		return nil, ErrUnknownCurrency
	}
	if !raw.ExpiresAt.After(now) {
		return nil, ErrExpiredOffer
	}

	reference := n.referencePrice(raw, recentRoutePrice)
	score := n.score(raw.Price, reference, raw.ExpiresAt, now)

	return &Deal{
		id:            uuid.New(),
		origin:        origin,
		destination:   destination,
		price:         raw.Price,
		originalPrice: raw.OriginalPrice,
		currency:      raw.Currency,
		airline:       raw.Airline,
		departureDate: raw.DepartureDate,
		returnDate:    raw.ReturnDate,
		score:         score,
		affiliateLink: raw.Link,
		createdAt:     now,
		expiresAt:     raw.ExpiresAt,
	}, nil
}

// referencePrice prefers the route's recent observed average, then the
// offer's own advertised original price. Nil means no baseline is known.
func (n *Normalizer) referencePrice(raw RawOffer, recentRoutePrice *decimal.Decimal) *decimal.Decimal {
	if recentRoutePrice != nil && recentRoutePrice.IsPositive() {
		ref := recentRoutePrice.Mul(n.referenceMultiplier)
		return &ref
	}
	if raw.OriginalPrice != nil && raw.OriginalPrice.IsPositive() {
		return raw.OriginalPrice
	}
	return nil
}

// score maps the discount against the reference into 0-100. Cheaper offers
// never score lower than more expensive ones with the same reference: the
// discount term is strictly non-increasing in price and the freshness term
// does not depend on price.
func (n *Normalizer) score(price decimal.Decimal, reference *decimal.Decimal, expiresAt, now time.Time) int {
	score := int64(baselineScore)

	if reference != nil {
		// discount percent: (ref - price) / ref * 100
		discountPct := reference.Sub(price).
			Div(*reference).
			Mul(decimal.NewFromInt(100))
		score += discountPct.Round(0).IntPart()
	}

	daysLeft := int64(expiresAt.Sub(now).Hours() / 24)
	if daysLeft > freshnessHorizonDays {
		daysLeft = freshnessHorizonDays
	}
	if daysLeft < 0 {
		daysLeft = 0
	}
	score += daysLeft * freshnessBonusMax / freshnessHorizonDays

	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return int(score)
}
