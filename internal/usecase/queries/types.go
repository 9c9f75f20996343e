package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealView represents read-optimized deal data for the storefront.
type DealView struct {
	ID            uuid.UUID        `json:"id"`
	Origin        string           `json:"origin"`
	Destination   string           `json:"destination"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Currency      string           `json:"currency"`
	Airline       string           `json:"airline"`
	DepartureDate time.Time        `json:"departure_date"`
	ReturnDate    *time.Time       `json:"return_date,omitempty"`
	Score         int              `json:"score"`
	AffiliateLink string           `json:"affiliate_link"`
	CreatedAt     time.Time        `json:"created_at"`
	ExpiresAt     time.Time        `json:"expires_at"`
}

// RunView represents one persisted batch run result.
type RunView struct {
	ID         uuid.UUID `json:"id"`
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
