package repository

import (
	"context"
	"time"

	"farewatch/internal/domain/deal"
	"farewatch/internal/infra"
	"farewatch/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type DealRepository struct {
	db DBTX
}

func NewDealRepository(db DBTX) *DealRepository {
	return &DealRepository{db: db}
}

const insertDealSQL = `
INSERT INTO deals (id, origin, destination, price, original_price, currency,
                   airline, departure_date, return_date, score, affiliate_link,
                   created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

func (r *DealRepository) Insert(ctx context.Context, d *deal.Deal) error {
	_, err := r.db.Exec(ctx, insertDealSQL,
		d.ID(),
		d.Origin().String(),
		d.Destination().String(),
		pgconv.DecimalToPgtype(d.Price()),
		pgconv.DecimalPtrToPgtype(d.OriginalPrice()),
		d.Currency(),
		d.Airline(),
		pgconv.TimeToPgtype(d.DepartureDate()),
		pgconv.TimePtrToPgtype(d.ReturnDate()),
		d.Score(),
		d.AffiliateLink(),
		pgconv.TimeToPgtype(d.CreatedAt()),
		pgconv.TimeToPgtype(d.ExpiresAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert deal", err)
	}
	return nil
}

const findActiveDealIDByOfferSQL = `
SELECT id
FROM deals
WHERE origin = $1 AND destination = $2 AND airline = $3
  AND departure_date = $4 AND price = $5 AND expires_at > $6
ORDER BY created_at DESC
LIMIT 1`

// FindActiveByOffer locates a still-active deal for the identical offer.
// A hit means ingestion extends its expiry rather than inserting a duplicate;
// a price change never matches, so it produces a new row and the old deal
// stays behind as the audit trail.
func (r *DealRepository) FindActiveByOffer(ctx context.Context, d *deal.Deal, now time.Time) (uuid.UUID, bool, error) {
	row := r.db.QueryRow(ctx, findActiveDealIDByOfferSQL,
		d.Origin().String(),
		d.Destination().String(),
		d.Airline(),
		pgconv.TimeToPgtype(d.DepartureDate()),
		pgconv.DecimalToPgtype(d.Price()),
		pgconv.TimeToPgtype(now),
	)

	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, infra.WrapRepoErr("failed to find active deal by offer", err)
	}
	return id, true, nil
}

const extendDealExpirySQL = `
UPDATE deals
SET expires_at = $2
WHERE id = $1 AND expires_at < $2`

func (r *DealRepository) ExtendExpiry(ctx context.Context, dealID uuid.UUID, until time.Time) error {
	if _, err := r.db.Exec(ctx, extendDealExpirySQL, dealID, pgconv.TimeToPgtype(until)); err != nil {
		return infra.WrapRepoErr("failed to extend deal expiry", err)
	}
	return nil
}
