package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/repository"
	"github.com/jmoiron/sqlx"
)

type SettlementService interface {
	ProcessPayment(ctx context.Context, bookingID int64, method domain.PaymentMethod) (*domain.Payment, error)
	GetPaymentByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error)
}

// Settler is the part of settlement other services run inside their own
// transaction. Callers must hold the booking lock.
type Settler interface {
	// Settle marks the booking paid and writes a PAID payment with the
	// commission split, reusing a pending payment if one exists.
	Settle(ctx context.Context, tx *sqlx.Tx, b *domain.Booking, method domain.PaymentMethod) (*domain.Payment, error)

	// OpenPending creates a PENDING payment sized to the booking total.
	OpenPending(ctx context.Context, tx *sqlx.Tx, b *domain.Booking, method domain.PaymentMethod) (*domain.Payment, error)
}

type SettlementServiceImpl struct {
	BaseService
	bookings   repository.BookingRepository
	payments   repository.PaymentRepository
	commission domain.CommissionPolicy
	recorder   EventRecorder
	now        func() time.Time
}

func NewSettlementService(
	db DB,
	log *slog.Logger,
	bookings repository.BookingRepository,
	payments repository.PaymentRepository,
	commission domain.CommissionPolicy,
	recorder EventRecorder,
) *SettlementServiceImpl {
	return &SettlementServiceImpl{
		BaseService: NewBaseService(db, log),
		bookings:    bookings,
		payments:    payments,
		commission:  commission,
		recorder:    recorder,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *SettlementServiceImpl) ProcessPayment(ctx context.Context, bookingID int64, method domain.PaymentMethod) (*domain.Payment, error) {
	const op = "internal.service.settlement.ProcessPayment"
	log := s.log.With(slog.String("op", op), slog.Int64("booking_id", bookingID), slog.String("method", string(method)))

	if !method.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown payment method '%s'", op, apperrors.ErrValidation, method)
	}

	var (
		booking *domain.Booking
		payment *domain.Payment
	)

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		booking, err = s.bookings.GetBookingWithLock(ctx, tx, bookingID)
		if err != nil {
			return fmt.Errorf("%s: failed to get booking with lock: %w", op, err)
		}

		if !booking.Status.CanSettle() {
			return fmt.Errorf("%s: %w: booking %d is %s", op, apperrors.ErrInvalidState, bookingID, booking.Status)
		}

		if booking.PaymentCompleted {
			return fmt.Errorf("%s: %w: booking %d", op, apperrors.ErrAlreadySettled, bookingID)
		}

		payment, err = s.Settle(ctx, tx, booking, method)

		return err
	})

	if err != nil {
		return nil, err
	}

	log.Info("payment processed", slog.Int64("payment_id", payment.ID), slog.String("amount", payment.Amount.String()))

	s.recorder.RecordTicket(ctx, domain.NewTicket(booking.ClientID, booking.ID, domain.TicketPaymentPaid, map[string]string{
		"amount": payment.Amount.String(),
		"method": string(payment.Method),
	}))
	s.recorder.NotifyPayment(ctx, booking, payment)

	return payment, nil
}

func (s *SettlementServiceImpl) Settle(ctx context.Context, tx *sqlx.Tx, b *domain.Booking, method domain.PaymentMethod) (*domain.Payment, error) {
	const op = "internal.service.settlement.Settle"

	paidAt := s.now()

	fee, owner, err := s.commission.Split(b.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, apperrors.ErrValidation, err)
	}

	payment, err := s.payments.GetPaymentByBooking(ctx, tx, b.ID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		payment = &domain.Payment{BookingID: b.ID}
	case err != nil:
		return nil, fmt.Errorf("%s: failed to get payment: %w", op, err)
	case payment.Status == domain.PaymentPaid:
		return nil, &apperrors.PaymentExistsError{BookingID: b.ID}
	}

	payment.Amount = b.TotalAmount
	payment.PlatformFee = fee
	payment.OwnerAmount = owner
	payment.Method = method
	payment.Status = domain.PaymentPaid
	payment.PaidAt = &paidAt

	if payment.ID == 0 {
		err = s.payments.CreatePayment(ctx, tx, payment)
	} else {
		err = s.payments.UpdatePayment(ctx, tx, payment)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: failed to save payment: %w", op, err)
	}

	b.PaymentCompleted = true
	b.PaymentDate = &paidAt

	if err := s.bookings.UpdateBooking(ctx, tx, b); err != nil {
		return nil, fmt.Errorf("%s: failed to mark booking paid: %w", op, err)
	}

	return payment, nil
}

func (s *SettlementServiceImpl) OpenPending(ctx context.Context, tx *sqlx.Tx, b *domain.Booking, method domain.PaymentMethod) (*domain.Payment, error) {
	const op = "internal.service.settlement.OpenPending"

	fee, owner, err := s.commission.Split(b.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, apperrors.ErrValidation, err)
	}

	payment := &domain.Payment{
		BookingID:   b.ID,
		Amount:      b.TotalAmount,
		PlatformFee: fee,
		OwnerAmount: owner,
		Method:      method,
		Status:      domain.PaymentPending,
	}

	if err := s.payments.CreatePayment(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("%s: failed to create pending payment: %w", op, err)
	}

	return payment, nil
}

func (s *SettlementServiceImpl) GetPaymentByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	const op = "internal.service.settlement.GetPaymentByBooking"

	payment, err := s.payments.GetPaymentByBooking(ctx, s.db, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return payment, nil
}
