// Package audit writes booking tickets and alerts after the primary
// transaction has committed and fans them out as notifications.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/repository"
	"github.com/YusovID/rental-booking-service/pkg/logger/sl"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	KindTicket  = "ticket"
	KindAlert   = "alert"
	KindPayment = "payment"
)

var writeFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "audit_write_failures_total",
		Help: "Audit records or notifications that could not be written.",
	},
	[]string{"kind"},
)

type Notifier interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// Notification is the message published for every recorded event.
type Notification struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	UserID     int64           `json:"user_id"`
	BookingID  int64           `json:"booking_id"`
	Type       string          `json:"type,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Message    string          `json:"message,omitempty"`
	Amount     string          `json:"amount,omitempty"`
	Refundable *bool           `json:"refundable,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Recorder never returns errors: failures are logged and counted.
type Recorder struct {
	ext      sqlx.ExtContext
	repo     repository.AuditRepository
	notifier Notifier
	topic    string
	timeout  time.Duration
	log      *slog.Logger
	now      func() time.Time
}

const DefaultTimeout = 2 * time.Second

// NewRecorder bounds each post-commit write and publish by timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewRecorder(ext sqlx.ExtContext, repo repository.AuditRepository, notifier Notifier, topic string, timeout time.Duration, log *slog.Logger) *Recorder {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Recorder{
		ext:      ext,
		repo:     repo,
		notifier: notifier,
		topic:    topic,
		timeout:  timeout,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// detach keeps the caller's values but not its cancellation, so a client
// hanging up after commit does not drop the record.
func (r *Recorder) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
}

func (r *Recorder) RecordTicket(ctx context.Context, t domain.Ticket) {
	const op = "internal.audit.RecordTicket"
	ctx, cancel := r.detach(ctx)
	defer cancel()

	if err := r.repo.CreateTicket(ctx, r.ext, &t); err != nil {
		r.fail(op, KindTicket, err, slog.Int64("booking_id", t.BookingID), slog.String("type", string(t.Type)))
		return
	}

	r.publish(ctx, Notification{
		Kind:      KindTicket,
		UserID:    t.UserID,
		BookingID: t.BookingID,
		Type:      string(t.Type),
		Data:      t.Data,
	})
}

func (r *Recorder) RecordAlert(ctx context.Context, a domain.Alert) {
	const op = "internal.audit.RecordAlert"
	ctx, cancel := r.detach(ctx)
	defer cancel()

	if err := r.repo.CreateAlert(ctx, r.ext, &a); err != nil {
		r.fail(op, KindAlert, err, slog.Int64("booking_id", a.BookingID), slog.String("type", string(a.Type)))
		return
	}

	r.publish(ctx, Notification{
		Kind:      KindAlert,
		UserID:    a.UserID,
		BookingID: a.BookingID,
		Type:      string(a.Type),
		Message:   a.Message,
	})
}

// NotifyPayment publishes a settled payment. Refundable is the inverse of the
// booking's non-refundable rate.
func (r *Recorder) NotifyPayment(ctx context.Context, b *domain.Booking, p *domain.Payment) {
	refundable := !b.NonRefundable

	ctx, cancel := r.detach(ctx)
	defer cancel()

	r.publish(ctx, Notification{
		Kind:       KindPayment,
		UserID:     b.ClientID,
		BookingID:  b.ID,
		Type:       string(p.Status),
		Amount:     p.Amount.String(),
		Refundable: &refundable,
	})
}

func (r *Recorder) publish(ctx context.Context, n Notification) {
	const op = "internal.audit.publish"

	n.ID = uuid.NewString()
	n.OccurredAt = r.now()

	if err := r.notifier.Publish(ctx, r.topic, strconv.FormatInt(n.BookingID, 10), n); err != nil {
		r.fail(op, "notification", err, slog.Int64("booking_id", n.BookingID), slog.String("kind", n.Kind))
	}
}

func (r *Recorder) fail(op, kind string, err error, attrs ...any) {
	writeFailures.WithLabelValues(kind).Inc()

	r.log.With(slog.String("op", op)).With(attrs...).Error("failed to record audit event", sl.Err(err))
}
