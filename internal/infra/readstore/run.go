package readstore

import (
	"context"
	"encoding/json"

	"farewatch/internal/infra"
	"farewatch/internal/infra/repository"
	"farewatch/internal/pkg/pgconv"
	"farewatch/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type RunReadStore struct {
	db repository.DBTX
}

func NewRunReadStore(db repository.DBTX) *RunReadStore {
	return &RunReadStore{db: db}
}

const findRecentRunsSQL = `
SELECT id, kind, status, checked, triggered, notified, errors, details, started_at, finished_at
FROM batch_runs
ORDER BY started_at DESC
LIMIT $1`

func (s *RunReadStore) FindRecent(ctx context.Context, limit int) ([]*queries.RunView, error) {
	rows, err := s.db.Query(ctx, findRecentRunsSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query batch runs", err)
	}
	defer rows.Close()

	var views []*queries.RunView
	for rows.Next() {
		var (
			view       queries.RunView
			details    []byte
			startedAt  pgtype.Timestamptz
			finishedAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&view.ID, &view.Kind, &view.Status,
			&view.Checked, &view.Triggered, &view.Notified, &view.Errors,
			&details, &startedAt, &finishedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan batch run row", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &view.Details); err != nil {
				return nil, infra.WrapRepoErr("failed to decode run details", err)
			}
		}
		view.StartedAt = pgconv.TimeFromPgtype(startedAt)
		view.FinishedAt = pgconv.TimeFromPgtype(finishedAt)

		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate batch run rows", err)
	}
	return views, nil
}
