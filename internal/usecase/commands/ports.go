package commands

import (
	"context"
	"time"

	"farewatch/internal/domain/alert"
	"farewatch/internal/domain/deal"
	"farewatch/internal/domain/route"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notification outcomes as stored in the log.
const (
	OutcomeSent             = "sent"
	OutcomePermanentFailure = "permanent_failure"
)

// Batch run kinds and terminal statuses.
const (
	RunKindPriceCheck    = "price_check"
	RunKindDealIngestion = "deal_ingestion"

	StatusCompleted           = "completed"
	StatusCompletedWithErrors = "completed_with_errors"
)

// NotificationRecord is one append-only row of the notification log. A
// successful row for a Reference is the de-duplication key consulted before
// any send.
type NotificationRecord struct {
	ID        uuid.UUID
	Reference string
	AlertID   *uuid.UUID
	DealID    *uuid.UUID
	Recipient string
	Outcome   string
	Detail    *string
	SentAt    time.Time
}

// Subscriber is a deal-broadcast recipient; subscription management is an
// external collaborator.
type Subscriber struct {
	ID    uuid.UUID
	Email string
}

// RunRecord is the persisted audit row for one batch invocation.
type RunRecord struct {
	ID         uuid.UUID
	Kind       string
	Status     string
	Checked    int
	Triggered  int
	Notified   int
	Errors     int
	Details    []string
	StartedAt  time.Time
	FinishedAt time.Time
}

type AlertRepository interface {
	FindActive(ctx context.Context) ([]*alert.PriceAlert, error)
	RecordCheck(ctx context.Context, alertID uuid.UUID, observed decimal.Decimal, checkedAt time.Time) error
	// MarkTriggered must be a conditional update on (is_active, triggered_at)
	// so overlapping runs cannot both report a trigger.
	MarkTriggered(ctx context.Context, alertID uuid.UUID, triggeredAt time.Time) (bool, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, alertID uuid.UUID, price decimal.Decimal, checkedAt time.Time) error
	RecentRouteAverage(ctx context.Context, origin, destination string, since time.Time) (*decimal.Decimal, error)
}

type DealWriteRepository interface {
	Insert(ctx context.Context, d *deal.Deal) error
	FindActiveByOffer(ctx context.Context, d *deal.Deal, now time.Time) (uuid.UUID, bool, error)
	ExtendExpiry(ctx context.Context, dealID uuid.UUID, until time.Time) error
}

type NotificationLog interface {
	HasSuccessful(ctx context.Context, reference string) (bool, error)
	Record(ctx context.Context, rec NotificationRecord) error
}

type SubscriberRepository interface {
	FindActive(ctx context.Context) ([]Subscriber, error)
}

type RunRepository interface {
	Save(ctx context.Context, run RunRecord) error
}

// PriceFetcher fans a route query out to the configured providers and
// returns every successful observation.
type PriceFetcher interface {
	FetchAll(ctx context.Context, q route.Query) ([]route.ObservedPrice, error)
}
