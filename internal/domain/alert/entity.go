package alert

import (
	"time"

	"farewatch/internal/domain/route"
	"farewatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveTarget = errs.New("target price must be positive")
	ErrInvalidOwnerEmail = errs.New("owner email is required")
)

// PriceAlert is a user-owned standing request to be notified when a route's
// price drops to the target. It transitions Active -> Triggered at most once;
// only an external user action may re-activate it.
type PriceAlert struct {
	id                 uuid.UUID
	ownerID            uuid.UUID
	ownerEmail         string
	query              route.Query
	targetPrice        decimal.Decimal
	currency           string
	currentLowestPrice *decimal.Decimal
	isActive           bool
	lastCheckedAt      *time.Time
	triggeredAt        *time.Time
	createdAt          time.Time
}

func NewPriceAlert(id, ownerID uuid.UUID, ownerEmail string, query route.Query, targetPrice decimal.Decimal, currency string, now time.Time) (*PriceAlert, error) {
	if !targetPrice.IsPositive() {
		return nil, ErrNonPositiveTarget
	}
	if ownerEmail == "" {
		return nil, ErrInvalidOwnerEmail
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &PriceAlert{
		id:          id,
		ownerID:     ownerID,
		ownerEmail:  ownerEmail,
		query:       query,
		targetPrice: targetPrice,
		currency:    currency,
		isActive:    true,
		createdAt:   now,
	}, nil
}

// Restore rebuilds a persisted alert without re-running creation validation.
func Restore(
	id, ownerID uuid.UUID,
	ownerEmail string,
	query route.Query,
	targetPrice decimal.Decimal,
	currency string,
	currentLowestPrice *decimal.Decimal,
	isActive bool,
	lastCheckedAt, triggeredAt *time.Time,
	createdAt time.Time,
) *PriceAlert {
	return &PriceAlert{
		id:                 id,
		ownerID:            ownerID,
		ownerEmail:         ownerEmail,
		query:              query,
		targetPrice:        targetPrice,
		currency:           currency,
		currentLowestPrice: currentLowestPrice,
		isActive:           isActive,
		lastCheckedAt:      lastCheckedAt,
		triggeredAt:        triggeredAt,
		createdAt:          createdAt,
	}
}

func (a *PriceAlert) ID() uuid.UUID                        { return a.id }
func (a *PriceAlert) OwnerID() uuid.UUID                   { return a.ownerID }
func (a *PriceAlert) OwnerEmail() string                   { return a.ownerEmail }
func (a *PriceAlert) Query() route.Query                   { return a.query }
func (a *PriceAlert) TargetPrice() decimal.Decimal         { return a.targetPrice }
func (a *PriceAlert) Currency() string                     { return a.currency }
func (a *PriceAlert) CurrentLowestPrice() *decimal.Decimal { return a.currentLowestPrice }
func (a *PriceAlert) IsActive() bool                       { return a.isActive }
func (a *PriceAlert) LastCheckedAt() *time.Time            { return a.lastCheckedAt }
func (a *PriceAlert) TriggeredAt() *time.Time              { return a.triggeredAt }
func (a *PriceAlert) CreatedAt() time.Time                 { return a.createdAt }

// Evaluate applies one price observation. The lowest seen price and check
// timestamp always update; the alert triggers iff it is still active, has
// never triggered, and the observed price is at or below the target.
// Persistence must re-check the same condition with a conditional update so
// overlapping runs cannot both trigger the alert.
func (a *PriceAlert) Evaluate(observed decimal.Decimal, now time.Time) bool {
	price := observed
	a.currentLowestPrice = &price
	a.lastCheckedAt = &now

	if !a.isActive || a.triggeredAt != nil {
		return false
	}
	if observed.GreaterThan(a.targetPrice) {
		return false
	}

	triggeredAt := now
	a.isActive = false
	a.triggeredAt = &triggeredAt
	return true
}
