package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

type Transactor interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// DB is a connection that can both start transactions and run plain reads.
// *sqlx.DB satisfies it.
type DB interface {
	Transactor
	sqlx.ExtContext
}

// EventRecorder receives audit events once the primary transaction has
// committed. It never reports failures back to the caller.
type EventRecorder interface {
	RecordTicket(ctx context.Context, t domain.Ticket)
	RecordAlert(ctx context.Context, a domain.Alert)
	NotifyPayment(ctx context.Context, b *domain.Booking, p *domain.Payment)
}

// ApartmentLocker guards the per-apartment critical section across service
// instances. Lock returns apperrors.ErrApartmentLocked on contention.
type ApartmentLocker interface {
	Lock(ctx context.Context, apartmentID int64) (unlock func(), err error)
}

// AvailabilityCache keeps the list of available apartments. GetAvailable
// returns the cache generation the read happened in; SetAvailable with an
// older generation than the current one is never served.
type AvailabilityCache interface {
	GetAvailable(ctx context.Context) (apartments []domain.Apartment, gen int64, ok bool, err error)
	SetAvailable(ctx context.Context, gen int64, apartments []domain.Apartment) error
	InvalidateAvailable(ctx context.Context) error
}

type BaseService struct {
	db  DB
	log *slog.Logger
}

func NewBaseService(db DB, log *slog.Logger) BaseService {
	return BaseService{
		db:  db,
		log: log,
	}
}

func (s *BaseService) transaction(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			s.log.Error("failed to rollback transaction", slog.String("op", op), sl.Err(err))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return nil
}

type noopLocker struct{}

func (noopLocker) Lock(context.Context, int64) (func(), error) { return func() {}, nil }

type noopCache struct{}

func (noopCache) GetAvailable(context.Context) ([]domain.Apartment, int64, bool, error) {
	return nil, 0, false, nil
}
func (noopCache) SetAvailable(context.Context, int64, []domain.Apartment) error { return nil }
func (noopCache) InvalidateAvailable(context.Context) error { return nil }
