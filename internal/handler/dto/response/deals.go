package response

import (
	"time"

	"farewatch/internal/usecase/queries"

	"github.com/google/uuid"
)

type DealItem struct {
	ID            uuid.UUID  `json:"id"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	Price         string     `json:"price"`
	OriginalPrice *string    `json:"original_price,omitempty"`
	Currency      string     `json:"currency"`
	Airline       string     `json:"airline"`
	DepartureDate time.Time  `json:"departure_date"`
	ReturnDate    *time.Time `json:"return_date,omitempty"`
	Score         int        `json:"score"`
	AffiliateLink string     `json:"affiliate_link"`
	ExpiresAt     time.Time  `json:"expires_at"`
}

type DealsResponse struct {
	Deals []DealItem `json:"deals"`
}

func FromDealViews(views []*queries.DealView) DealsResponse {
	items := make([]DealItem, len(views))
	for i, v := range views {
		item := DealItem{
			ID:            v.ID,
			Origin:        v.Origin,
			Destination:   v.Destination,
			Price:         v.Price.StringFixed(2),
			Currency:      v.Currency,
			Airline:       v.Airline,
			DepartureDate: v.DepartureDate,
			ReturnDate:    v.ReturnDate,
			Score:         v.Score,
			AffiliateLink: v.AffiliateLink,
			ExpiresAt:     v.ExpiresAt,
		}
		if v.OriginalPrice != nil {
			op := v.OriginalPrice.StringFixed(2)
			item.OriginalPrice = &op
		}
		items[i] = item
	}
	return DealsResponse{Deals: items}
}
