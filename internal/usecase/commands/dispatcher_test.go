//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"testing"

	"farewatch/internal/domain/deal"
	"farewatch/internal/domain/route"
	"farewatch/internal/infra/mailer"
	"farewatch/internal/pkg/clock"
	"farewatch/internal/pkg/errs"
	"farewatch/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triggeredResult(t *testing.T) *commands.EvaluationResult {
	t.Helper()
	a := activeAlert(t, "500.00")
	triggered := a.Evaluate(decimal.RequireFromString("480.00"), baseTime)
	require.True(t, triggered)
	return &commands.EvaluationResult{
		Alert: a,
		Observed: route.ObservedPrice{
			Query:    a.Query(),
			Price:    decimal.RequireFromString("480.00"),
			Currency: "USD",
		},
		TriggeredNow: true,
	}
}

func sampleDeal(t *testing.T) *deal.Deal {
	t.Helper()
	d, err := deal.NewNormalizer(decimal.NewFromInt(1)).Normalize(deal.RawOffer{
		Origin:        "LAX",
		Destination:   "NRT",
		Price:         decimal.RequireFromString("620.00"),
		Currency:      "USD",
		Airline:       "NH",
		DepartureDate: baseTime.AddDate(0, 1, 0),
		Link:          "https://example.com/deal",
		ExpiresAt:     baseTime.AddDate(0, 0, 5),
	}, nil, baseTime)
	require.NoError(t, err)
	return d
}

func subscribers(n int) []commands.Subscriber {
	subs := make([]commands.Subscriber, 0, n)
	for i := 0; i < n; i++ {
		subs = append(subs, commands.Subscriber{
			ID:    uuid.New(),
			Email: fmt.Sprintf("sub%d@example.com", i),
		})
	}
	return subs
}

func TestDispatchAlertTriggered(t *testing.T) {
	t.Run("sends and records once", func(t *testing.T) {
		log := newFakeNotificationLog()
		m := &fakeMailer{}
		d := commands.NewDispatcher(log, m, clock.NewMockClock(baseTime), discardLogger(), 100, 0)

		sent, err := d.DispatchAlertTriggered(context.Background(), triggeredResult(t))

		require.NoError(t, err)
		assert.True(t, sent)
		assert.Equal(t, 1, m.callCount())
		require.Len(t, log.records, 1)
		assert.Equal(t, commands.OutcomeSent, log.records[0].Outcome)
		assert.Equal(t, "owner@example.com", log.records[0].Recipient)
	})

	t.Run("logged success suppresses a second send", func(t *testing.T) {
		log := newFakeNotificationLog()
		m := &fakeMailer{}
		d := commands.NewDispatcher(log, m, clock.NewMockClock(baseTime), discardLogger(), 100, 0)
		res := triggeredResult(t)

		first, err := d.DispatchAlertTriggered(context.Background(), res)
		require.NoError(t, err)
		second, err := d.DispatchAlertTriggered(context.Background(), res)
		require.NoError(t, err)

		assert.True(t, first)
		assert.False(t, second)
		assert.Equal(t, 1, m.callCount(), "the mailer must not be called again")
	})

	t.Run("transient failure is retried", func(t *testing.T) {
		log := newFakeNotificationLog()
		m := &fakeMailer{fn: func(_ mailer.Message, attempt int) error {
			if attempt == 1 {
				return errs.New("connection reset")
			}
			return nil
		}}
		d := commands.NewDispatcher(log, m, clock.NewMockClock(baseTime), discardLogger(), 100, 2)

		sent, err := d.DispatchAlertTriggered(context.Background(), triggeredResult(t))

		require.NoError(t, err)
		assert.True(t, sent)
		assert.Equal(t, 2, m.callCount())
	})

	t.Run("permanent failure is never retried", func(t *testing.T) {
		log := newFakeNotificationLog()
		m := &fakeMailer{fn: func(mailer.Message, int) error {
			return errs.Mark(errs.New("unknown recipient"), mailer.ErrPermanent)
		}}
		d := commands.NewDispatcher(log, m, clock.NewMockClock(baseTime), discardLogger(), 100, 3)

		sent, err := d.DispatchAlertTriggered(context.Background(), triggeredResult(t))

		assert.Error(t, err)
		assert.False(t, sent)
		assert.Equal(t, 1, m.callCount(), "permanent failures must not be retried")
		require.Len(t, log.records, 1)
		assert.Equal(t, commands.OutcomePermanentFailure, log.records[0].Outcome)
	})

	t.Run("non-triggered alert is rejected", func(t *testing.T) {
		a := activeAlert(t, "500.00")
		d := commands.NewDispatcher(newFakeNotificationLog(), &fakeMailer{}, clock.NewMockClock(baseTime), discardLogger(), 100, 0)

		_, err := d.DispatchAlertTriggered(context.Background(), &commands.EvaluationResult{Alert: a})
		assert.Error(t, err)
	})

	t.Run("send succeeded but log write failed surfaces the window", func(t *testing.T) {
		log := newFakeNotificationLog()
		log.recordErr = errs.New("db down")
		m := &fakeMailer{}
		d := commands.NewDispatcher(log, m, clock.NewMockClock(baseTime), discardLogger(), 100, 0)

		sent, err := d.DispatchAlertTriggered(context.Background(), triggeredResult(t))

		assert.True(t, sent, "the mail did go out")
		assert.Error(t, err, "the failed log write must be reported")
	})
}

func TestBroadcastDeal(t *testing.T) {
	t.Run("all subscribers across chunks", func(t *testing.T) {
		log := newFakeNotificationLog()
		m := &fakeMailer{}
		d := commands.NewDispatcher(log, m, clock.NewMockClock(baseTime), discardLogger(), 100, 0)

		notified, failed := d.BroadcastDeal(context.Background(), sampleDeal(t), subscribers(250))

		assert.Equal(t, 250, notified)
		assert.Equal(t, 0, failed)
		assert.Equal(t, 250, m.callCount())
	})

	t.Run("one failing target does not block later chunks", func(t *testing.T) {
		log := newFakeNotificationLog()
		m := &fakeMailer{fn: func(msg mailer.Message, _ int) error {
			if msg.To == "sub150@example.com" {
				return errs.Mark(errs.New("bounced"), mailer.ErrPermanent)
			}
			return nil
		}}
		d := commands.NewDispatcher(log, m, clock.NewMockClock(baseTime), discardLogger(), 100, 0)

		notified, failed := d.BroadcastDeal(context.Background(), sampleDeal(t), subscribers(250))

		assert.Equal(t, 249, notified)
		assert.Equal(t, 1, failed)
	})

	t.Run("re-broadcast skips already notified subscribers", func(t *testing.T) {
		log := newFakeNotificationLog()
		m := &fakeMailer{}
		d := commands.NewDispatcher(log, m, clock.NewMockClock(baseTime), discardLogger(), 100, 0)
		dl := sampleDeal(t)
		subs := subscribers(10)

		first, _ := d.BroadcastDeal(context.Background(), dl, subs)
		second, _ := d.BroadcastDeal(context.Background(), dl, subs)

		assert.Equal(t, 10, first)
		assert.Equal(t, 0, second)
		assert.Equal(t, 10, m.callCount())
	})

	t.Run("no subscribers is a no-op", func(t *testing.T) {
		d := commands.NewDispatcher(newFakeNotificationLog(), &fakeMailer{}, clock.NewMockClock(baseTime), discardLogger(), 100, 0)

		notified, failed := d.BroadcastDeal(context.Background(), sampleDeal(t), nil)

		assert.Equal(t, 0, notified)
		assert.Equal(t, 0, failed)
	})
}
