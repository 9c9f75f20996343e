package repository

import (
	"context"
	"time"

	"farewatch/internal/domain/alert"
	"farewatch/internal/domain/route"
	"farewatch/internal/infra"
	"farewatch/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type AlertRepository struct {
	db DBTX
}

func NewAlertRepository(db DBTX) *AlertRepository {
	return &AlertRepository{db: db}
}

const findActiveAlertsSQL = `
SELECT id, owner_id, owner_email, origin, destination,
       target_price, currency, depart_from, depart_until,
       current_lowest_price, is_active, last_checked_at, triggered_at, created_at
FROM price_alerts
WHERE is_active = true AND triggered_at IS NULL
ORDER BY created_at`

func (r *AlertRepository) FindActive(ctx context.Context) ([]*alert.PriceAlert, error) {
	rows, err := r.db.Query(ctx, findActiveAlertsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query active alerts", err)
	}
	defer rows.Close()

	var alerts []*alert.PriceAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan alert row", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate alert rows", err)
	}
	return alerts, nil
}

const recordCheckSQL = `
UPDATE price_alerts
SET current_lowest_price = $2, last_checked_at = $3
WHERE id = $1`

// RecordCheck updates the observation fields that change on every evaluation
// pass regardless of trigger outcome.
func (r *AlertRepository) RecordCheck(ctx context.Context, alertID uuid.UUID, observed decimal.Decimal, checkedAt time.Time) error {
	tag, err := r.db.Exec(ctx, recordCheckSQL, alertID, pgconv.DecimalToPgtype(observed), pgconv.TimeToPgtype(checkedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to record alert check", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("alert not found", nil, infra.KindNotFound)
	}
	return nil
}

const markTriggeredSQL = `
UPDATE price_alerts
SET is_active = false, triggered_at = $2
WHERE id = $1 AND is_active = true AND triggered_at IS NULL`

// MarkTriggered flips Active -> Triggered with a conditional update keyed on
// the current state. Returns false when another run already won the race,
// which enforces the at-most-once trigger invariant.
func (r *AlertRepository) MarkTriggered(ctx context.Context, alertID uuid.UUID, triggeredAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, markTriggeredSQL, alertID, pgconv.TimeToPgtype(triggeredAt))
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark alert triggered", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanAlert(row pgx.Row) (*alert.PriceAlert, error) {
	var (
		id, ownerID   uuid.UUID
		ownerEmail    string
		originStr     string
		destStr       string
		targetPrice   pgtype.Numeric
		currency      string
		departFrom    pgtype.Timestamptz
		departUntil   pgtype.Timestamptz
		currentLowest pgtype.Numeric
		isActive      bool
		lastCheckedAt pgtype.Timestamptz
		triggeredAt   pgtype.Timestamptz
		createdAt     pgtype.Timestamptz
	)

	if err := row.Scan(
		&id, &ownerID, &ownerEmail, &originStr, &destStr,
		&targetPrice, &currency, &departFrom, &departUntil,
		&currentLowest, &isActive, &lastCheckedAt, &triggeredAt, &createdAt,
	); err != nil {
		return nil, err
	}

	origin, err := route.NewAirportCode(originStr)
	if err != nil {
		return nil, err
	}
	destination, err := route.NewAirportCode(destStr)
	if err != nil {
		return nil, err
	}
	query, err := route.NewQuery(origin, destination, pgconv.TimePtrFromPgtype(departFrom), pgconv.TimePtrFromPgtype(departUntil))
	if err != nil {
		return nil, err
	}

	target, err := pgconv.DecimalFromPgtype(targetPrice)
	if err != nil {
		return nil, err
	}
	lowest, err := pgconv.DecimalPtrFromPgtype(currentLowest)
	if err != nil {
		return nil, err
	}

	return alert.Restore(
		id, ownerID, ownerEmail, query, target, currency, lowest,
		isActive,
		pgconv.TimePtrFromPgtype(lastCheckedAt),
		pgconv.TimePtrFromPgtype(triggeredAt),
		pgconv.TimeFromPgtype(createdAt),
	), nil
}
