package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"farewatch/internal/domain/deal"
	"farewatch/internal/infra/mailer"
	"farewatch/internal/pkg/clock"
	"farewatch/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

// Dispatcher delivers notifications with at-most-one successful send per
// de-duplication reference. It consults the durable notification log before
// sending; send-then-record ordering leaves a small at-least-once window
// when the log write fails after a successful send, which is logged loudly
// instead of risking a silent duplicate.
type Dispatcher struct {
	log        NotificationLog
	mailer     mailer.Mailer
	clock      clock.Clock
	logger     *slog.Logger
	chunkSize  int
	maxRetries int
}

func NewDispatcher(
	log NotificationLog,
	m mailer.Mailer,
	clock clock.Clock,
	logger *slog.Logger,
	chunkSize, maxRetries int,
) *Dispatcher {
	if chunkSize <= 0 {
		chunkSize = 100
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Dispatcher{
		log:        log,
		mailer:     m,
		clock:      clock,
		logger:     logger,
		chunkSize:  chunkSize,
		maxRetries: maxRetries,
	}
}

// DispatchAlertTriggered sends the one-time "price hit your target" mail for
// a trigger event. Returns true iff a new send happened; an already-logged
// success counts as delivered but not as a new send.
func (d *Dispatcher) DispatchAlertTriggered(ctx context.Context, res *EvaluationResult) (bool, error) {
	a := res.Alert
	triggeredAt := a.TriggeredAt()
	if triggeredAt == nil {
		return false, errs.New("dispatch requested for non-triggered alert")
	}

	reference := fmt.Sprintf("alert:%s:%d", a.ID(), triggeredAt.Unix())
	alreadySent, err := d.log.HasSuccessful(ctx, reference)
	if err != nil {
		return false, errs.Wrap(err, "failed to consult notification log")
	}
	if alreadySent {
		d.logger.Info("notification already sent for trigger event", "reference", reference)
		return false, nil
	}

	msg := mailer.Message{
		To:        a.OwnerEmail(),
		Subject:   fmt.Sprintf("Price alert: %s at %s %s", a.Query().Key(), res.Observed.Price.StringFixed(2), a.Currency()),
		HTMLBody:  alertMailBody(res),
		Reference: reference,
	}

	alertID := a.ID()
	return d.send(ctx, msg, NotificationRecord{
		Reference: reference,
		AlertID:   &alertID,
		Recipient: a.OwnerEmail(),
	})
}

// BroadcastDeal mails one deal to all subscribers in chunks sized for the
// mail provider's rate limits. A chunk's failures never block later chunks.
// Returns the number of new sends and the number of failed targets.
func (d *Dispatcher) BroadcastDeal(ctx context.Context, dl *deal.Deal, subscribers []Subscriber) (notified, failed int) {
	for start := 0; start < len(subscribers); start += d.chunkSize {
		end := start + d.chunkSize
		if end > len(subscribers) {
			end = len(subscribers)
		}

		sent, errored := d.broadcastChunk(ctx, dl, subscribers[start:end])
		notified += sent
		failed += errored

		if errored > 0 {
			d.logger.Warn("deal broadcast chunk had failures",
				"deal_id", dl.ID().String(),
				"chunk_start", start,
				"failed", errored)
		}
	}
	return notified, failed
}

func (d *Dispatcher) broadcastChunk(ctx context.Context, dl *deal.Deal, chunk []Subscriber) (sent, failed int) {
	for _, sub := range chunk {
		reference := fmt.Sprintf("deal:%s:%s", dl.ID(), sub.ID)

		alreadySent, err := d.log.HasSuccessful(ctx, reference)
		if err != nil {
			d.logger.Error("failed to consult notification log",
				"reference", reference, "error", err.Error())
			failed++
			continue
		}
		if alreadySent {
			continue
		}

		msg := mailer.Message{
			To:        sub.Email,
			Subject:   fmt.Sprintf("Deal: %s from %s %s", dl.RouteKey(), dl.Price().StringFixed(2), dl.Currency()),
			HTMLBody:  dealMailBody(dl),
			Reference: reference,
		}
		dealID := dl.ID()
		ok, err := d.send(ctx, msg, NotificationRecord{
			Reference: reference,
			DealID:    &dealID,
			Recipient: sub.Email,
		})
		if err != nil {
			failed++
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, failed
}

// send delivers one message with bounded retry on transient failures and
// records the outcome. Permanent failures are recorded and never retried.
func (d *Dispatcher) send(ctx context.Context, msg mailer.Message, rec NotificationRecord) (bool, error) {
	operation := func() error {
		err := d.mailer.Send(ctx, msg)
		if err == nil {
			return nil
		}
		if errors.Is(err, mailer.ErrPermanent) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(newSendBackOff(), uint64(d.maxRetries)),
		ctx,
	)

	sendErr := backoff.Retry(operation, policy)
	now := d.clock.Now()

	if sendErr != nil {
		if errors.Is(sendErr, mailer.ErrPermanent) {
			detail := sendErr.Error()
			rec.Outcome = OutcomePermanentFailure
			rec.Detail = &detail
			rec.SentAt = now
			if recErr := d.log.Record(ctx, rec); recErr != nil {
				d.logger.Error("failed to record permanent notification failure",
					"reference", rec.Reference, "error", recErr.Error())
			}
		}
		return false, sendErr
	}

	rec.Outcome = OutcomeSent
	rec.SentAt = now
	if recErr := d.log.Record(ctx, rec); recErr != nil {
		// The mail went out but the log write failed: the next run may send
		// again. Known at-least-once window; surface it for operators.
		d.logger.Error("notification sent but log write failed; duplicate send possible on re-run",
			"reference", rec.Reference, "error", recErr.Error())
		return true, errs.Wrap(recErr, "notification log write failed after send")
	}
	return true, nil
}

func newSendBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	return b
}

func alertMailBody(res *EvaluationResult) string {
	a := res.Alert
	return fmt.Sprintf(
		"<p>Good news! %s is now %s %s, at or below your target of %s %s.</p>",
		a.Query().Key(),
		res.Observed.Price.StringFixed(2), a.Currency(),
		a.TargetPrice().StringFixed(2), a.Currency(),
	)
}

func dealMailBody(dl *deal.Deal) string {
	return fmt.Sprintf(
		`<p>%s with %s from %s %s. <a href="%s">Book now</a> (expires %s).</p>`,
		dl.RouteKey(), dl.Airline(),
		dl.Price().StringFixed(2), dl.Currency(),
		dl.AffiliateLink(),
		dl.ExpiresAt().Format("Jan 2"),
	)
}
