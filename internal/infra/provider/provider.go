package provider

import (
	"context"

	"farewatch/internal/domain/deal"
	"farewatch/internal/domain/route"
	"farewatch/internal/pkg/errs"
)

// Provider failure taxonomy. All of these are per-route conditions the batch
// recovers from; none aborts a run.
var (
	ErrProviderUnavailable = errs.New("price provider unavailable")
	ErrRateLimited         = errs.New("price provider rate limited")
	ErrInvalidRoute        = errs.New("price provider rejected route")
)

// PriceSource returns one normalized price observation per route query.
// Implementations bound each call with their own timeout and never retry
// within a batch pass; the next scheduled run is the retry.
type PriceSource interface {
	Name() string
	Fetch(ctx context.Context, q route.Query) (route.ObservedPrice, error)
}

// OfferSource exposes the raw offers behind an observation for deal
// ingestion. Scoring and filtering belong to the normalizer, not here.
type OfferSource interface {
	Name() string
	FetchOffers(ctx context.Context, q route.Query) ([]deal.RawOffer, error)
}
