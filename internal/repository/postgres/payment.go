package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

var paymentColumns = []string{
	"id", "booking_id", "amount", "platform_fee", "owner_amount", "method", "status", "paid_at", "created_at",
}

type PaymentRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewPaymentRepository(db *sqlx.DB, log *slog.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, tx *sqlx.Tx, p *domain.Payment) error {
	const op = "internal.repository.postgres.CreatePayment"

	query, args, err := r.sq.Insert("payments").
		Columns("booking_id", "amount", "platform_fee", "owner_amount", "method", "status", "paid_at").
		Values(p.BookingID, p.Amount, p.PlatformFee, p.OwnerAmount, p.Method, p.Status, p.PaidAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return &apperrors.PaymentExistsError{BookingID: p.BookingID}
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w: booking with id '%d'", op, apperrors.ErrNotFound, p.BookingID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *PaymentRepository) UpdatePayment(ctx context.Context, tx *sqlx.Tx, p *domain.Payment) error {
	const op = "internal.repository.postgres.UpdatePayment"

	query, args, err := r.sq.Update("payments").
		Set("amount", p.Amount).
		Set("platform_fee", p.PlatformFee).
		Set("owner_amount", p.OwnerAmount).
		Set("method", p.Method).
		Set("status", p.Status).
		Set("paid_at", p.PaidAt).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return execAffectingOne(ctx, tx, op, query, args, "payment", p.ID)
}

func (r *PaymentRepository) GetPaymentByBooking(ctx context.Context, ext sqlx.ExtContext, bookingID int64) (*domain.Payment, error) {
	const op = "internal.repository.postgres.GetPaymentByBooking"

	query, args, err := r.sq.Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var payment domain.Payment
	if err := sqlx.GetContext(ctx, ext, &payment, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: payment for booking '%d'", op, apperrors.ErrNotFound, bookingID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &payment, nil
}
