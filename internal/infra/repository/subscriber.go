package repository

import (
	"context"

	"farewatch/internal/infra"
	"farewatch/internal/usecase/commands"
)

type SubscriberRepository struct {
	db DBTX
}

func NewSubscriberRepository(db DBTX) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

const findActiveSubscribersSQL = `
SELECT id, email
FROM deal_subscribers
WHERE is_active = true
ORDER BY created_at`

func (r *SubscriberRepository) FindActive(ctx context.Context) ([]commands.Subscriber, error) {
	rows, err := r.db.Query(ctx, findActiveSubscribersSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query subscribers", err)
	}
	defer rows.Close()

	var subscribers []commands.Subscriber
	for rows.Next() {
		var s commands.Subscriber
		if err := rows.Scan(&s.ID, &s.Email); err != nil {
			return nil, infra.WrapRepoErr("failed to scan subscriber row", err)
		}
		subscribers = append(subscribers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate subscriber rows", err)
	}
	return subscribers, nil
}
