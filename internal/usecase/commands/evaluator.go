package commands

import (
	"context"
	"log/slog"

	"farewatch/internal/domain/alert"
	"farewatch/internal/domain/route"
	"farewatch/internal/pkg/clock"
	"farewatch/internal/pkg/errs"
)

var (
	ErrNoObservation    = errs.New("no price observation for alert route")
	ErrEvaluationFailed = errs.New("alert evaluation failed")
)

// EvaluationResult is the outcome of one alert evaluation pass.
type EvaluationResult struct {
	Alert        *alert.PriceAlert
	Observed     route.ObservedPrice
	TriggeredNow bool
}

// AlertEvaluator runs the per-alert price check. One evaluation never
// affects another; the caller isolates failures.
type AlertEvaluator struct {
	alerts  AlertRepository
	history HistoryRepository
	prices  PriceFetcher
	clock   clock.Clock
	logger  *slog.Logger
}

func NewAlertEvaluator(
	alerts AlertRepository,
	history HistoryRepository,
	prices PriceFetcher,
	clock clock.Clock,
	logger *slog.Logger,
) *AlertEvaluator {
	return &AlertEvaluator{
		alerts:  alerts,
		history: history,
		prices:  prices,
		clock:   clock,
		logger:  logger,
	}
}

// EvaluateOne fetches the current price for the alert's route, applies the
// trigger rule, and persists the observation. The trigger transition is a
// conditional update: if a concurrent run already flipped the alert, the
// result reports TriggeredNow=false and no notification follows.
//
// A fetch failure leaves the alert completely untouched; it waits for the
// next scheduled run.
func (e *AlertEvaluator) EvaluateOne(ctx context.Context, a *alert.PriceAlert) (*EvaluationResult, error) {
	observations, err := e.prices.FetchAll(ctx, a.Query())
	if err != nil {
		return nil, errs.Mark(err, ErrEvaluationFailed)
	}

	observed, ok := lowestInCurrency(observations, a.Currency())
	if !ok {
		return nil, errs.Mark(ErrNoObservation, ErrEvaluationFailed)
	}

	now := e.clock.Now()
	triggeredNow := a.Evaluate(observed.Price, now)

	if err := e.alerts.RecordCheck(ctx, a.ID(), observed.Price, now); err != nil {
		return nil, errs.Mark(err, ErrEvaluationFailed)
	}
	if err := e.history.Append(ctx, a.ID(), observed.Price, now); err != nil {
		return nil, errs.Mark(err, ErrEvaluationFailed)
	}

	if triggeredNow {
		won, err := e.alerts.MarkTriggered(ctx, a.ID(), now)
		if err != nil {
			return nil, errs.Mark(err, ErrEvaluationFailed)
		}
		if !won {
			e.logger.Info("alert already triggered by a concurrent run",
				"alert_id", a.ID().String())
			triggeredNow = false
		}
	}

	return &EvaluationResult{
		Alert:        a,
		Observed:     observed,
		TriggeredNow: triggeredNow,
	}, nil
}

// lowestInCurrency picks the cheapest observation matching the alert's
// currency so the target comparison stays meaningful.
func lowestInCurrency(observations []route.ObservedPrice, currency string) (route.ObservedPrice, bool) {
	var (
		lowest route.ObservedPrice
		found  bool
	)
	for _, o := range observations {
		if o.Currency != currency {
			continue
		}
		if !found || o.Price.LessThan(lowest.Price) {
			lowest = o
			found = true
		}
	}
	return lowest, found
}
