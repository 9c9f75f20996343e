package readstore

import (
	"context"
	"time"

	"farewatch/internal/infra"
	"farewatch/internal/infra/repository"
	"farewatch/internal/pkg/pgconv"
	"farewatch/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DealReadStore struct {
	db repository.DBTX
}

func NewDealReadStore(db repository.DBTX) *DealReadStore {
	return &DealReadStore{db: db}
}

const findActiveDealsSQL = `
SELECT id, origin, destination, price, original_price, currency, airline,
       departure_date, return_date, score, affiliate_link, created_at, expires_at
FROM deals
WHERE expires_at > $1 AND score >= $2
ORDER BY score DESC, price ASC
LIMIT $3`

func (s *DealReadStore) FindActive(ctx context.Context, now time.Time, minScore, limit int) ([]*queries.DealView, error) {
	rows, err := s.db.Query(ctx, findActiveDealsSQL, pgconv.TimeToPgtype(now), minScore, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query active deals", err)
	}
	defer rows.Close()

	var views []*queries.DealView
	for rows.Next() {
		var (
			view          queries.DealView
			id            uuid.UUID
			price         pgtype.Numeric
			originalPrice pgtype.Numeric
			departureDate pgtype.Timestamptz
			returnDate    pgtype.Timestamptz
			createdAt     pgtype.Timestamptz
			expiresAt     pgtype.Timestamptz
		)
		if err := rows.Scan(
			&id, &view.Origin, &view.Destination, &price, &originalPrice,
			&view.Currency, &view.Airline, &departureDate, &returnDate,
			&view.Score, &view.AffiliateLink, &createdAt, &expiresAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan deal row", err)
		}

		view.ID = id
		view.Price, err = pgconv.DecimalFromPgtype(price)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert deal price", err)
		}
		view.OriginalPrice, err = pgconv.DecimalPtrFromPgtype(originalPrice)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert deal original price", err)
		}
		view.DepartureDate = pgconv.TimeFromPgtype(departureDate)
		view.ReturnDate = pgconv.TimePtrFromPgtype(returnDate)
		view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		view.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)

		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate deal rows", err)
	}
	return views, nil
}
