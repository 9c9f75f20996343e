package response

import (
	"time"

	"farewatch/internal/usecase/commands"
	"farewatch/internal/usecase/queries"

	"github.com/google/uuid"
)

// RunResponse is the summary returned to the external scheduler.
type RunResponse struct {
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	Checked    int       `json:"checked"`
	Triggered  int       `json:"triggered"`
	Notified   int       `json:"notified"`
	Errors     int       `json:"errors"`
	Details    []string  `json:"details"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

func FromRunSummary(s *commands.RunSummary) RunResponse {
	return RunResponse{
		Kind:       s.Kind,
		Status:     s.Status,
		Checked:    s.Checked,
		Triggered:  s.Triggered,
		Notified:   s.Notified,
		Errors:     s.Errors,
		Details:    s.Details,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
	}
}

type RunHistoryItem struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	Checked    int       `json:"checked"`
	Triggered  int       `json:"triggered"`
	Notified   int       `json:"notified"`
	Errors     int       `json:"errors"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

type RunHistoryResponse struct {
	Runs []RunHistoryItem `json:"runs"`
}

func FromRunViews(views []*queries.RunView) RunHistoryResponse {
	items := make([]RunHistoryItem, len(views))
	for i, v := range views {
		items[i] = RunHistoryItem{
			ID:         v.ID,
			Kind:       v.Kind,
			Status:     v.Status,
			Checked:    v.Checked,
			Triggered:  v.Triggered,
			Notified:   v.Notified,
			Errors:     v.Errors,
			StartedAt:  v.StartedAt,
			FinishedAt: v.FinishedAt,
		}
	}
	return RunHistoryResponse{Runs: items}
}
