package repository

import (
	"context"
	"time"

	"farewatch/internal/infra"
	"farewatch/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// HistoryRepository appends alert evaluation history. Append-only; nothing
// in this service mutates or deletes history rows.
type HistoryRepository struct {
	db DBTX
}

func NewHistoryRepository(db DBTX) *HistoryRepository {
	return &HistoryRepository{db: db}
}

const appendHistorySQL = `
INSERT INTO alert_history (alert_id, price, checked_at)
VALUES ($1, $2, $3)`

func (r *HistoryRepository) Append(ctx context.Context, alertID uuid.UUID, price decimal.Decimal, checkedAt time.Time) error {
	_, err := r.db.Exec(ctx, appendHistorySQL, alertID, pgconv.DecimalToPgtype(price), pgconv.TimeToPgtype(checkedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to append alert history", err)
	}
	return nil
}

const recentAveragePriceSQL = `
SELECT AVG(price)
FROM alert_history h
JOIN price_alerts a ON a.id = h.alert_id
WHERE a.origin = $1 AND a.destination = $2 AND h.checked_at >= $3`

// RecentRouteAverage returns the mean observed price for a route since the
// cutoff, or nil when the route has no history yet.
func (r *HistoryRepository) RecentRouteAverage(ctx context.Context, origin, destination string, since time.Time) (*decimal.Decimal, error) {
	row := r.db.QueryRow(ctx, recentAveragePriceSQL, origin, destination, pgconv.TimeToPgtype(since))

	var avg pgtype.Numeric
	if err := row.Scan(&avg); err != nil {
		return nil, infra.WrapRepoErr("failed to query recent route average", err)
	}
	return pgconv.DecimalPtrFromPgtype(avg)
}
