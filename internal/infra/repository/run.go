package repository

import (
	"context"
	"encoding/json"

	"farewatch/internal/infra"
	"farewatch/internal/pkg/pgconv"
	"farewatch/internal/usecase/commands"

	"github.com/google/uuid"
)

type RunRepository struct {
	db DBTX
}

func NewRunRepository(db DBTX) *RunRepository {
	return &RunRepository{db: db}
}

const insertRunSQL = `
INSERT INTO batch_runs (id, kind, status, checked, triggered, notified, errors, details, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (r *RunRepository) Save(ctx context.Context, run commands.RunRecord) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	details, err := json.Marshal(run.Details)
	if err != nil {
		return infra.WrapRepoErr("failed to encode run details", err)
	}
	_, err = r.db.Exec(ctx, insertRunSQL,
		run.ID,
		run.Kind,
		run.Status,
		run.Checked,
		run.Triggered,
		run.Notified,
		run.Errors,
		details,
		pgconv.TimeToPgtype(run.StartedAt),
		pgconv.TimeToPgtype(run.FinishedAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save batch run", err)
	}
	return nil
}
