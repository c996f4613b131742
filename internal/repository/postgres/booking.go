package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

var bookingColumns = []string{
	"b.id", "b.apartment_id", "b.client_id", "b.check_in", "b.check_out", "b.guests",
	"b.total_amount", "b.non_refundable", "b.status", "b.payment_completed", "b.payment_date",
	"b.check_in_time", "b.check_out_time", "b.created_at", "b.updated_at",
}

var terminalBookingStatuses = []domain.BookingStatus{domain.BookingCompleted, domain.BookingCancelled}

type BookingRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewBookingRepository(db *sqlx.DB, log *slog.Logger) *BookingRepository {
	return &BookingRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *BookingRepository) CreateBooking(ctx context.Context, tx *sqlx.Tx, b *domain.Booking) error {
	const op = "internal.repository.postgres.CreateBooking"

	query, args, err := r.sq.Insert("bookings").
		Columns("apartment_id", "client_id", "check_in", "check_out", "guests",
			"total_amount", "non_refundable", "status", "payment_completed").
		Values(b.ApartmentID, b.ClientID, b.CheckIn, b.CheckOut, b.Guests,
			b.TotalAmount, b.NonRefundable, b.Status, b.PaymentCompleted).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("%s: %w: apartment '%d' or client '%d'", op, apperrors.ErrNotFound, b.ApartmentID, b.ClientID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *BookingRepository) GetBooking(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.Booking, error) {
	const op = "internal.repository.postgres.GetBooking"

	return r.getBooking(ctx, ext, op, r.selectBookings().Where(sq.Eq{"b.id": id}), id)
}

func (r *BookingRepository) GetBookingWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Booking, error) {
	const op = "internal.repository.postgres.GetBookingWithLock"

	return r.getBooking(ctx, tx, op, r.selectBookings().Where(sq.Eq{"b.id": id}).Suffix("FOR UPDATE"), id)
}

func (r *BookingRepository) selectBookings() sq.SelectBuilder {
	return r.sq.Select(bookingColumns...).From("bookings b")
}

func (r *BookingRepository) getBooking(ctx context.Context, ext sqlx.ExtContext, op string, b sq.SelectBuilder, id int64) (*domain.Booking, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var booking domain.Booking
	if err := sqlx.GetContext(ctx, ext, &booking, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: booking with id '%d'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &booking, nil
}

func (r *BookingRepository) UpdateBooking(ctx context.Context, tx *sqlx.Tx, b *domain.Booking) error {
	const op = "internal.repository.postgres.UpdateBooking"

	query, args, err := r.sq.Update("bookings").
		Set("status", b.Status).
		Set("payment_completed", b.PaymentCompleted).
		Set("payment_date", b.PaymentDate).
		Set("check_in_time", b.CheckInTime).
		Set("check_out_time", b.CheckOutTime).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": b.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w: booking with id '%d'", op, apperrors.ErrNotFound, b.ID)
		}

		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return nil
}

func (r *BookingRepository) ListBookingsByClient(ctx context.Context, ext sqlx.ExtContext, clientID int64) ([]domain.Booking, error) {
	const op = "internal.repository.postgres.ListBookingsByClient"

	return r.list(ctx, ext, op, r.selectBookings().Where(sq.Eq{"b.client_id": clientID}))
}

func (r *BookingRepository) ListBookingsByOwner(ctx context.Context, ext sqlx.ExtContext, ownerID int64) ([]domain.Booking, error) {
	const op = "internal.repository.postgres.ListBookingsByOwner"

	return r.list(ctx, ext, op, r.selectBookings().
		Join("apartments a ON a.id = b.apartment_id").
		Where(sq.Eq{"a.owner_id": ownerID}))
}

func (r *BookingRepository) ListOverlappingBookings(ctx context.Context, tx *sqlx.Tx, apartmentID int64, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	const op = "internal.repository.postgres.ListOverlappingBookings"

	return r.list(ctx, tx, op, r.selectBookings().
		Where(sq.Eq{"b.apartment_id": apartmentID}).
		Where(sq.NotEq{"b.status": terminalBookingStatuses}).
		Where(sq.Lt{"b.check_in": checkOut}).
		Where(sq.Gt{"b.check_out": checkIn}))
}

func (r *BookingRepository) list(ctx context.Context, ext sqlx.ExtContext, op string, b sq.SelectBuilder) ([]domain.Booking, error) {
	query, args, err := b.OrderBy("b.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	bookings := []domain.Booking{}
	if err := sqlx.SelectContext(ctx, ext, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return bookings, nil
}
