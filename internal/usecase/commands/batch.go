package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"farewatch/internal/domain/deal"
	"farewatch/internal/domain/route"
	"farewatch/internal/infra/provider"
	"farewatch/internal/pkg/clock"
	"farewatch/internal/pkg/config"
	"farewatch/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

var ErrRunFailed = errs.New("batch run failed to start")

const (
	// Details beyond this are dropped so a pathological run cannot bloat
	// the audit row.
	maxRunDetails = 50

	// Minimum score for a freshly ingested deal to be broadcast.
	broadcastMinScore = 70

	// History window feeding the route reference price.
	referenceWindow = 30 * 24 * time.Hour
)

// RunSummary is what the external scheduler receives for one invocation.
type RunSummary struct {
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

type BatchCommands interface {
	RunPriceCheck(ctx context.Context) (*RunSummary, error)
	RunDealIngestion(ctx context.Context) (*RunSummary, error)
}

type batchUseCaseImpl struct {
	evaluator   *AlertEvaluator
	dispatcher  *Dispatcher
	alerts      AlertRepository
	deals       DealWriteRepository
	history     HistoryRepository
	subscribers SubscriberRepository
	runs        RunRepository
	offers      []provider.OfferSource
	normalizer  *deal.Normalizer
	catalog     []route.Query
	cfg         config.BatchConfig
	clock       clock.Clock
	logger      *slog.Logger
}

func NewBatchCommands(
	evaluator *AlertEvaluator,
	dispatcher *Dispatcher,
	alerts AlertRepository,
	deals DealWriteRepository,
	history HistoryRepository,
	subscribers SubscriberRepository,
	runs RunRepository,
	offers []provider.OfferSource,
	normalizer *deal.Normalizer,
	catalog []route.Query,
	cfg config.BatchConfig,
	clock clock.Clock,
	logger *slog.Logger,
) BatchCommands {
	return &batchUseCaseImpl{
		evaluator:   evaluator,
		dispatcher:  dispatcher,
		alerts:      alerts,
		deals:       deals,
		history:     history,
		subscribers: subscribers,
		runs:        runs,
		offers:      offers,
		normalizer:  normalizer,
		catalog:     catalog,
		cfg:         cfg,
		clock:       clock,
		logger:      logger,
	}
}

// runCounters accumulates per-unit outcomes across workers.
type runCounters struct {
	mu        sync.Mutex
	checked   int
	triggered int
	notified  int
	errors    int
	details   []string
}

func (c *runCounters) addChecked() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checked++
}

func (c *runCounters) addTriggered() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.triggered++
}

func (c *runCounters) addNotified(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notified += n
}

func (c *runCounters) addError(detail string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors++
	if len(c.details) < maxRunDetails {
		c.details = append(c.details, detail)
	}
}

func (c *runCounters) addDetail(detail string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.details) < maxRunDetails {
		c.details = append(c.details, detail)
	}
}

// RunPriceCheck evaluates every active alert against current prices and
// notifies triggered ones. One alert's failure never aborts the rest.
func (b *batchUseCaseImpl) RunPriceCheck(ctx context.Context) (summary *RunSummary, err error) {
	startedAt := b.clock.Now()
	counters := &runCounters{}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("price-check run recovered from panic", "panic", fmt.Sprint(r))
			counters.addError("unexpected failure during run")
			summary = b.finishRun(ctx, RunKindPriceCheck, counters, startedAt)
			err = nil
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, b.cfg.RunTimeout)
	defer cancel()

	activeAlerts, err := b.alerts.FindActive(runCtx)
	if err != nil {
		return nil, errs.Mark(err, ErrRunFailed)
	}
	if len(activeAlerts) == 0 {
		b.logger.Info("price-check run found no active alerts")
		return b.finishRun(ctx, RunKindPriceCheck, counters, startedAt), nil
	}

	g := new(errgroup.Group)
	g.SetLimit(b.cfg.Workers)

	for _, a := range activeAlerts {
		a := a
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					counters.addError(fmt.Sprintf("alert %s: unexpected failure", a.ID()))
				}
			}()

			if runCtx.Err() != nil {
				// Run timeout: abandon remaining work; the alert is
				// untouched and waits for the next scheduled run.
				counters.addError(fmt.Sprintf("alert %s: skipped, run timeout", a.ID()))
				return nil
			}

			res, evalErr := b.evaluator.EvaluateOne(runCtx, a)
			if evalErr != nil {
				counters.addError(fmt.Sprintf("alert %s (%s): %s", a.ID(), a.Query().Key(), evalErr))
				return nil
			}
			counters.addChecked()

			if !res.TriggeredNow {
				return nil
			}
			counters.addTriggered()

			sent, sendErr := b.dispatcher.DispatchAlertTriggered(runCtx, res)
			if sendErr != nil {
				counters.addError(fmt.Sprintf("alert %s: notification failed: %s", a.ID(), sendErr))
			}
			if sent {
				counters.addNotified(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return b.finishRun(ctx, RunKindPriceCheck, counters, startedAt), nil
}

// RunDealIngestion fetches offers for the route catalog, normalizes and
// scores them into deals, and broadcasts high-scoring new deals to
// subscribers.
func (b *batchUseCaseImpl) RunDealIngestion(ctx context.Context) (summary *RunSummary, err error) {
	startedAt := b.clock.Now()
	counters := &runCounters{}

	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("deal-ingestion run recovered from panic", "panic", fmt.Sprint(r))
			counters.addError("unexpected failure during run")
			summary = b.finishRun(ctx, RunKindDealIngestion, counters, startedAt)
			err = nil
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, b.cfg.RunTimeout)
	defer cancel()

	if len(b.catalog) == 0 || len(b.offers) == 0 {
		b.logger.Info("deal-ingestion run has no routes or sources configured")
		return b.finishRun(ctx, RunKindDealIngestion, counters, startedAt), nil
	}

	var (
		hotMu    sync.Mutex
		hotDeals []*deal.Deal
	)

	g := new(errgroup.Group)
	g.SetLimit(b.cfg.Workers)

	for _, q := range b.catalog {
		q := q
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					counters.addError(fmt.Sprintf("route %s: unexpected failure", q.Key()))
				}
			}()

			if runCtx.Err() != nil {
				counters.addError(fmt.Sprintf("route %s: skipped, run timeout", q.Key()))
				return nil
			}

			inserted := b.ingestRoute(runCtx, q, counters)

			hotMu.Lock()
			for _, d := range inserted {
				if d.Score() >= broadcastMinScore {
					hotDeals = append(hotDeals, d)
				}
			}
			hotMu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	b.broadcastHotDeals(runCtx, hotDeals, counters)

	return b.finishRun(ctx, RunKindDealIngestion, counters, startedAt), nil
}

// ingestRoute pulls offers from every source for one route and persists the
// surviving deals. Returns the freshly inserted ones.
func (b *batchUseCaseImpl) ingestRoute(ctx context.Context, q route.Query, counters *runCounters) []*deal.Deal {
	now := b.clock.Now()

	reference, err := b.history.RecentRouteAverage(ctx, q.Origin().String(), q.Destination().String(), now.Add(-referenceWindow))
	if err != nil {
		// Missing reference only weakens scoring; keep ingesting.
		b.logger.Warn("failed to load route reference price",
			"route", q.Key(), "error", err.Error())
		reference = nil
	}

	var inserted []*deal.Deal
	for _, src := range b.offers {
		rawOffers, err := src.FetchOffers(ctx, q)
		if err != nil {
			counters.addError(fmt.Sprintf("route %s source %s: %s", q.Key(), src.Name(), err))
			continue
		}

		for _, raw := range rawOffers {
			counters.addChecked()

			d, err := b.normalizer.Normalize(raw, reference, now)
			if err != nil {
				// Data-quality rejection: discarded and noted, never an error.
				counters.addDetail(fmt.Sprintf("route %s: %s", q.Key(), err))
				continue
			}

			existingID, found, err := b.deals.FindActiveByOffer(ctx, d, now)
			if err != nil {
				counters.addError(fmt.Sprintf("route %s: %s", q.Key(), err))
				continue
			}
			if found {
				if err := b.deals.ExtendExpiry(ctx, existingID, d.ExpiresAt()); err != nil {
					counters.addError(fmt.Sprintf("route %s: %s", q.Key(), err))
				}
				continue
			}

			if err := b.deals.Insert(ctx, d); err != nil {
				counters.addError(fmt.Sprintf("route %s: %s", q.Key(), err))
				continue
			}
			inserted = append(inserted, d)
		}
	}
	return inserted
}

func (b *batchUseCaseImpl) broadcastHotDeals(ctx context.Context, hotDeals []*deal.Deal, counters *runCounters) {
	if len(hotDeals) == 0 {
		return
	}

	subscribers, err := b.subscribers.FindActive(ctx)
	if err != nil {
		counters.addError(fmt.Sprintf("failed to load subscribers: %s", err))
		return
	}
	if len(subscribers) == 0 {
		return
	}

	for _, d := range hotDeals {
		notified, failed := b.dispatcher.BroadcastDeal(ctx, d, subscribers)
		counters.addNotified(notified)
		for i := 0; i < failed; i++ {
			counters.addError(fmt.Sprintf("deal %s: broadcast target failed", d.ID()))
		}
	}
}

// finishRun freezes the counters into a summary and persists the audit row.
// Persistence uses a detached context so a run that hit its deadline can
// still record its result.
func (b *batchUseCaseImpl) finishRun(ctx context.Context, kind string, counters *runCounters, startedAt time.Time) *RunSummary {
	counters.mu.Lock()
	defer counters.mu.Unlock()

	status := StatusCompleted
	if counters.errors > 0 {
		status = StatusCompletedWithErrors
	}

	details := counters.details
	if details == nil {
		details = []string{}
	}

	summary := &RunSummary{
		Kind:       kind,
		Status:     status,
		Checked:    counters.checked,
		Triggered:  counters.triggered,
		Notified:   counters.notified,
		Errors:     counters.errors,
		Details:    details,
		StartedAt:  startedAt,
		FinishedAt: b.clock.Now(),
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	record := RunRecord{
		Kind:       summary.Kind,
		Status:     summary.Status,
		Checked:    summary.Checked,
		Triggered:  summary.Triggered,
		Notified:   summary.Notified,
		Errors:     summary.Errors,
		Details:    summary.Details,
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
	}
	if err := b.runs.Save(saveCtx, record); err != nil {
		b.logger.Error("failed to persist batch run result",
			"kind", kind, "error", err.Error())
	}

	b.logger.Info("batch run finished",
		"kind", kind,
		"status", status,
		"checked", summary.Checked,
		"triggered", summary.Triggered,
		"notified", summary.Notified,
		"errors", summary.Errors)

	return summary
}
