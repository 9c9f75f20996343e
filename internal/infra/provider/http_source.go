package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"farewatch/internal/domain/deal"
	"farewatch/internal/domain/route"
	"farewatch/internal/pkg/clock"
	"farewatch/internal/pkg/config"
	"farewatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const dateLayout = "2006-01-02"

// offerPayload is the provider's wire shape; prices arrive as strings to
// avoid float rounding on the way in.
type offerPayload struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	Price         string  `json:"price"`
	OriginalPrice *string `json:"original_price,omitempty"`
	Currency      string  `json:"currency"`
	Airline       string  `json:"airline"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date,omitempty"`
	DeepLink      string  `json:"deep_link"`
	ExpiresAt     string  `json:"expires_at"`
}

type searchResponse struct {
	Offers []offerPayload `json:"offers"`
}

// HTTPSource adapts one outbound flight-price provider. Every call is
// bounded by the configured per-call timeout and gated by a client-side
// rate limiter.
type HTTPSource struct {
	name    string
	cfg     config.ProviderConfig
	client  *http.Client
	limiter *rate.Limiter
	clock   clock.Clock
}

func NewHTTPSource(name string, cfg config.ProviderConfig, clock clock.Clock) *HTTPSource {
	return &HTTPSource{
		name:    name,
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.CallTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		clock:   clock,
	}
}

func (s *HTTPSource) Name() string {
	return s.name
}

// Fetch returns the cheapest observation among the provider's offers for the
// route. No retry on failure; the next scheduled run covers it.
func (s *HTTPSource) Fetch(ctx context.Context, q route.Query) (route.ObservedPrice, error) {
	offers, err := s.FetchOffers(ctx, q)
	if err != nil {
		return route.ObservedPrice{}, err
	}

	now := s.clock.Now()
	observations := make([]route.ObservedPrice, 0, len(offers))
	for _, o := range offers {
		observations = append(observations, route.ObservedPrice{
			Query:      q,
			Price:      o.Price,
			Currency:   o.Currency,
			ObservedAt: now,
			Source:     s.name,
		})
	}

	lowest, ok := route.Lowest(observations)
	if !ok {
		return route.ObservedPrice{}, errs.Mark(errs.New("no offers for route "+q.Key()), ErrInvalidRoute)
	}
	return lowest, nil
}

func (s *HTTPSource) FetchOffers(ctx context.Context, q route.Query) ([]deal.RawOffer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errs.Mark(err, ErrRateLimited)
	}

	req, err := s.buildRequest(ctx, q)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRoute)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errs.Mark(err, ErrProviderUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errs.Mark(errs.New("provider returned 429"), ErrRateLimited)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		return nil, errs.Mark(fmt.Errorf("provider rejected route %s: status %d", q.Key(), resp.StatusCode), ErrInvalidRoute)
	case resp.StatusCode != http.StatusOK:
		return nil, errs.Mark(fmt.Errorf("provider returned status %d", resp.StatusCode), ErrProviderUnavailable)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errs.Mark(err, ErrProviderUnavailable)
	}

	offers := make([]deal.RawOffer, 0, len(payload.Offers))
	for _, p := range payload.Offers {
		offer, err := s.toRawOffer(p)
		if err != nil {
			// Malformed offers are a data-quality concern for the
			// normalizer; skip silently here.
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

func (s *HTTPSource) buildRequest(ctx context.Context, q route.Query) (*http.Request, error) {
	u, err := url.Parse(s.cfg.BaseURL + "/v1/search")
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("origin", q.Origin().String())
	params.Set("destination", q.Destination().String())
	params.Set("limit", strconv.Itoa(s.cfg.ResultLimit))
	if from := q.DepartFrom(); from != nil {
		params.Set("depart_from", from.Format(dateLayout))
	}
	if until := q.DepartUntil(); until != nil {
		params.Set("depart_until", until.Format(dateLayout))
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	return req, nil
}

func (s *HTTPSource) toRawOffer(p offerPayload) (deal.RawOffer, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return deal.RawOffer{}, err
	}

	var originalPrice *decimal.Decimal
	if p.OriginalPrice != nil {
		op, err := decimal.NewFromString(*p.OriginalPrice)
		if err != nil {
			return deal.RawOffer{}, err
		}
		originalPrice = &op
	}

	departureDate, err := time.Parse(dateLayout, p.DepartureDate)
	if err != nil {
		return deal.RawOffer{}, err
	}

	var returnDate *time.Time
	if p.ReturnDate != nil {
		rd, err := time.Parse(dateLayout, *p.ReturnDate)
		if err != nil {
			return deal.RawOffer{}, err
		}
		returnDate = &rd
	}

	expiresAt, err := time.Parse(time.RFC3339, p.ExpiresAt)
	if err != nil {
		return deal.RawOffer{}, err
	}

	return deal.RawOffer{
		Origin:        p.Origin,
		Destination:   p.Destination,
		Price:         price,
		OriginalPrice: originalPrice,
		Currency:      p.Currency,
		Airline:       p.Airline,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		Link:          p.DeepLink,
		ExpiresAt:     expiresAt,
		Source:        s.name,
	}, nil
}
