package repository

import (
	"context"

	"farewatch/internal/infra"
	"farewatch/internal/pkg/pgconv"
	"farewatch/internal/usecase/commands"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db DBTX
}

func NewNotificationRepository(db DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const hasSuccessfulNotificationSQL = `
SELECT EXISTS (
	SELECT 1 FROM notifications
	WHERE reference = $1 AND outcome = $2
)`

func (r *NotificationRepository) HasSuccessful(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, hasSuccessfulNotificationSQL, reference, commands.OutcomeSent).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check notification log", err)
	}
	return exists, nil
}

const insertNotificationSQL = `
INSERT INTO notifications (id, reference, alert_id, deal_id, recipient, outcome, detail, sent_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *NotificationRepository) Record(ctx context.Context, rec commands.NotificationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, insertNotificationSQL,
		rec.ID,
		rec.Reference,
		rec.AlertID,
		rec.DealID,
		rec.Recipient,
		rec.Outcome,
		pgconv.StringPtrToPgtype(rec.Detail),
		pgconv.TimeToPgtype(rec.SentAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to record notification", err)
	}
	return nil
}
