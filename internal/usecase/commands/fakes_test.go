//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"farewatch/internal/domain/alert"
	"farewatch/internal/domain/deal"
	"farewatch/internal/domain/route"
	"farewatch/internal/infra/mailer"
	"farewatch/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAlertRepo struct {
	mu             sync.Mutex
	active         []*alert.PriceAlert
	findErr        error
	recordCheckErr error
	markWon        bool
	markErr        error

	recordedChecks []uuid.UUID
	markedAlerts   []uuid.UUID
}

func newFakeAlertRepo(active ...*alert.PriceAlert) *fakeAlertRepo {
	return &fakeAlertRepo{active: active, markWon: true}
}

func (f *fakeAlertRepo) FindActive(context.Context) ([]*alert.PriceAlert, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.active, nil
}

func (f *fakeAlertRepo) RecordCheck(_ context.Context, alertID uuid.UUID, _ decimal.Decimal, _ time.Time) error {
	if f.recordCheckErr != nil {
		return f.recordCheckErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recordedChecks = append(f.recordedChecks, alertID)
	return nil
}

func (f *fakeAlertRepo) MarkTriggered(_ context.Context, alertID uuid.UUID, _ time.Time) (bool, error) {
	if f.markErr != nil {
		return false, f.markErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedAlerts = append(f.markedAlerts, alertID)
	return f.markWon, nil
}

type fakeHistoryRepo struct {
	mu        sync.Mutex
	appendErr error
	average   *decimal.Decimal
	appended  int
}

func (f *fakeHistoryRepo) Append(_ context.Context, _ uuid.UUID, _ decimal.Decimal, _ time.Time) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended++
	return nil
}

func (f *fakeHistoryRepo) RecentRouteAverage(context.Context, string, string, time.Time) (*decimal.Decimal, error) {
	return f.average, nil
}

type fakeDealRepo struct {
	mu          sync.Mutex
	existingID  uuid.UUID
	found       bool
	insertErr   error
	inserted    []*deal.Deal
	extendCalls int
}

func (f *fakeDealRepo) Insert(_ context.Context, d *deal.Deal) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, d)
	return nil
}

func (f *fakeDealRepo) FindActiveByOffer(context.Context, *deal.Deal, time.Time) (uuid.UUID, bool, error) {
	return f.existingID, f.found, nil
}

func (f *fakeDealRepo) ExtendExpiry(context.Context, uuid.UUID, time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.extendCalls++
	return nil
}

type fakeNotificationLog struct {
	mu        sync.Mutex
	sent      map[string]bool
	hasErr    error
	recordErr error
	records   []commands.NotificationRecord
}

func newFakeNotificationLog() *fakeNotificationLog {
	return &fakeNotificationLog{sent: map[string]bool{}}
}

func (f *fakeNotificationLog) HasSuccessful(_ context.Context, reference string) (bool, error) {
	if f.hasErr != nil {
		return false, f.hasErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[reference], nil
}

func (f *fakeNotificationLog) Record(_ context.Context, rec commands.NotificationRecord) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	if rec.Outcome == commands.OutcomeSent {
		f.sent[rec.Reference] = true
	}
	return nil
}

func (f *fakeNotificationLog) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, rec := range f.records {
		if rec.Outcome == commands.OutcomeSent {
			n++
		}
	}
	return n
}

type fakeSubscriberRepo struct {
	subscribers []commands.Subscriber
	err         error
	panicMsg    string
}

func (f *fakeSubscriberRepo) FindActive(context.Context) ([]commands.Subscriber, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.subscribers, nil
}

type fakeRunRepo struct {
	mu    sync.Mutex
	saved []commands.RunRecord
	err   error
}

func (f *fakeRunRepo) Save(_ context.Context, run commands.RunRecord) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, run)
	return nil
}

func (f *fakeRunRepo) last() *commands.RunRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saved) == 0 {
		return nil
	}
	return &f.saved[len(f.saved)-1]
}

// fakePriceFetcher routes each query to a per-route result.
type fakePriceFetcher struct {
	fn func(q route.Query) ([]route.ObservedPrice, error)
}

func (f *fakePriceFetcher) FetchAll(_ context.Context, q route.Query) ([]route.ObservedPrice, error) {
	return f.fn(q)
}

type fakeMailer struct {
	mu    sync.Mutex
	fn    func(msg mailer.Message, attempt int) error
	calls []mailer.Message
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	f.mu.Lock()
	f.calls = append(f.calls, msg)
	attempt := len(f.calls)
	f.mu.Unlock()
	if f.fn == nil {
		return nil
	}
	return f.fn(msg, attempt)
}

func (f *fakeMailer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeOfferSource struct {
	name   string
	offers map[string][]deal.RawOffer
	err    error
}

func (f *fakeOfferSource) Name() string { return f.name }

func (f *fakeOfferSource) FetchOffers(_ context.Context, q route.Query) ([]deal.RawOffer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.offers[q.Key()], nil
}
