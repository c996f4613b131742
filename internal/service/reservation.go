package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/repository"
	"github.com/YusovID/rental-booking-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

const defaultCancelReason = "No reason"

type ReservationService interface {
	CreateBooking(ctx context.Context, req BookingRequest) (*domain.Booking, error)
	PlaceBooking(ctx context.Context, req BookingRequest) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	CheckIn(ctx context.Context, bookingID int64) (*domain.Booking, error)
	CheckOut(ctx context.Context, bookingID int64) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListBookingsByClient(ctx context.Context, clientID int64) ([]domain.Booking, error)
	ListBookingsByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error)
	ListTickets(ctx context.Context, bookingID int64) ([]domain.Ticket, error)
}

type BookingRequest struct {
	ApartmentID   int64
	ClientID      int64
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	NonRefundable bool
}

type ReservationOptions struct {
	// RejectOverlaps refuses a booking whose dates intersect an active one.
	// Off by default: the apartment keeps a single occupancy flag.
	RejectOverlaps bool
	// SettleOnPlacement settles the payment right after PlaceBooking confirms.
	SettleOnPlacement bool
	DefaultMethod     domain.PaymentMethod
}

type ReservationServiceImpl struct {
	BaseService
	users      repository.UserRepository
	apartments repository.ApartmentRepository
	bookings   repository.BookingRepository
	audit      repository.AuditRepository
	settler    Settler
	recorder   EventRecorder
	locker     ApartmentLocker
	cache      AvailabilityCache
	opts       ReservationOptions
	now        func() time.Time
}

func NewReservationService(
	db DB,
	log *slog.Logger,
	users repository.UserRepository,
	apartments repository.ApartmentRepository,
	bookings repository.BookingRepository,
	audit repository.AuditRepository,
	settler Settler,
	recorder EventRecorder,
	locker ApartmentLocker,
	cache AvailabilityCache,
	opts ReservationOptions,
) *ReservationServiceImpl {
	if locker == nil {
		locker = noopLocker{}
	}

	if cache == nil {
		cache = noopCache{}
	}

	if opts.DefaultMethod == "" {
		opts.DefaultMethod = domain.MethodCreditCard
	}

	return &ReservationServiceImpl{
		BaseService: NewBaseService(db, log),
		users:       users,
		apartments:  apartments,
		bookings:    bookings,
		audit:       audit,
		settler:     settler,
		recorder:    recorder,
		locker:      locker,
		cache:       cache,
		opts:        opts,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// pendingEvents collects what a transaction wants recorded after it commits.
type pendingEvents struct {
	tickets          []domain.Ticket
	alerts           []domain.Alert
	apartmentChanged bool
}

func (e *pendingEvents) ticket(b *domain.Booking, t domain.TicketType, fields map[string]string) {
	e.tickets = append(e.tickets, domain.NewTicket(b.ClientID, b.ID, t, fields))
}

func (s *ReservationServiceImpl) CreateBooking(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	const op = "internal.service.reservation.CreateBooking"

	return s.create(ctx, op, req, false)
}

// PlaceBooking is the public booking flow: create and confirm in one
// transaction, then settle immediately when configured to.
func (s *ReservationServiceImpl) PlaceBooking(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	const op = "internal.service.reservation.PlaceBooking"

	return s.create(ctx, op, req, true)
}

func (s *ReservationServiceImpl) create(ctx context.Context, op string, req BookingRequest, place bool) (*domain.Booking, error) {
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("apartment_id", req.ApartmentID),
		slog.Int64("client_id", req.ClientID),
	)

	checkIn, checkOut := domain.Day(req.CheckIn), domain.Day(req.CheckOut)

	nights := domain.Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, fmt.Errorf("%s: %w: %s - %s", op, apperrors.ErrInvalidRange,
			checkIn.Format(time.DateOnly), checkOut.Format(time.DateOnly))
	}

	if nights > domain.MaxStayNights {
		return nil, fmt.Errorf("%s: %w: stay of %d nights exceeds %d", op, apperrors.ErrValidation, nights, domain.MaxStayNights)
	}

	if req.Guests < 1 {
		return nil, fmt.Errorf("%s: %w: at least one guest is required", op, apperrors.ErrValidation)
	}

	var (
		booking *domain.Booking
		unlock  func()
	)

	defer func() {
		if unlock != nil {
			unlock()
		}
	}()

	now := s.now()
	ev := &pendingEvents{apartmentChanged: true}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		client, err := s.users.GetUser(ctx, tx, req.ClientID)
		if err != nil {
			return fmt.Errorf("%s: failed to get client: %w", op, err)
		}

		if !client.Role.CanBook() {
			return fmt.Errorf("%s: %w: user %d is %s", op, apperrors.ErrRoleNotAllowed, client.ID, client.Role)
		}

		unlock, err = s.locker.Lock(ctx, req.ApartmentID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		apartment, err := s.apartments.GetApartmentWithLock(ctx, tx, req.ApartmentID)
		if err != nil {
			return fmt.Errorf("%s: failed to get apartment with lock: %w", op, err)
		}

		if apartment.Status == domain.ApartmentArchived {
			return fmt.Errorf("%s: %w: apartment %d is archived", op, apperrors.ErrApartmentUnavailable, apartment.ID)
		}

		if apartment.MaxGuests > 0 && req.Guests > apartment.MaxGuests {
			return fmt.Errorf("%s: %w: apartment %d hosts at most %d guests", op, apperrors.ErrValidation, apartment.ID, apartment.MaxGuests)
		}

		if s.opts.RejectOverlaps {
			overlapping, err := s.bookings.ListOverlappingBookings(ctx, tx, apartment.ID, checkIn, checkOut)
			if err != nil {
				return fmt.Errorf("%s: failed to check overlapping bookings: %w", op, err)
			}

			if len(overlapping) > 0 {
				return fmt.Errorf("%s: %w: %d active bookings overlap", op, apperrors.ErrApartmentUnavailable, len(overlapping))
			}
		}

		total, err := apartment.PricePerNight.Times(nights)
		if err != nil {
			return fmt.Errorf("%s: %w: %v", op, apperrors.ErrValidation, err)
		}

		booking = &domain.Booking{
			ApartmentID:   apartment.ID,
			ClientID:      client.ID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Guests:        req.Guests,
			TotalAmount:   total,
			NonRefundable: req.NonRefundable,
			Status:        domain.BookingCreated,
		}

		if err := s.bookings.CreateBooking(ctx, tx, booking); err != nil {
			return fmt.Errorf("%s: failed to create booking: %w", op, err)
		}

		if err := s.apartments.UpdateApartmentStatus(ctx, tx, apartment.ID, domain.ApartmentBooked, now); err != nil {
			return fmt.Errorf("%s: failed to mark apartment booked: %w", op, err)
		}

		ev.ticket(booking, domain.TicketBookingCreated, map[string]string{"total": booking.TotalAmount.String()})

		if booking.NonRefundable {
			ev.alerts = append(ev.alerts, domain.NewNonRefundableAlert(client.ID, booking.ID, now))
		}

		if !place {
			return nil
		}

		booking.Status = domain.BookingConfirmed

		if err := s.bookings.UpdateBooking(ctx, tx, booking); err != nil {
			return fmt.Errorf("%s: failed to confirm booking: %w", op, err)
		}

		ev.ticket(booking, domain.TicketStatusChanged, map[string]string{"status": string(domain.BookingConfirmed)})

		if s.opts.SettleOnPlacement {
			if _, err := s.settler.Settle(ctx, tx, booking, s.opts.DefaultMethod); err != nil {
				return fmt.Errorf("%s: failed to settle booking: %w", op, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Info("booking created",
		slog.Int64("booking_id", booking.ID),
		slog.String("status", string(booking.Status)),
		slog.String("total", booking.TotalAmount.String()),
	)

	s.flush(ctx, log, ev)

	return booking, nil
}

func (s *ReservationServiceImpl) ConfirmBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	const op = "internal.service.reservation.ConfirmBooking"

	return s.transition(ctx, op, bookingID, domain.BookingConfirmed,
		func(_ *sqlx.Tx, b *domain.Booking, _ time.Time, ev *pendingEvents) error {
			ev.ticket(b, domain.TicketStatusChanged, map[string]string{"status": string(domain.BookingConfirmed)})
			return nil
		})
}

func (s *ReservationServiceImpl) CheckIn(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	const op = "internal.service.reservation.CheckIn"

	return s.transition(ctx, op, bookingID, domain.BookingCheckedIn,
		func(tx *sqlx.Tx, b *domain.Booking, now time.Time, ev *pendingEvents) error {
			if err := s.setApartmentStatus(ctx, tx, b.ApartmentID, domain.ApartmentOccupied, now, ev); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			b.CheckInTime = &now

			if !b.PaymentCompleted {
				if _, err := s.settler.OpenPending(ctx, tx, b, s.opts.DefaultMethod); err != nil {
					return fmt.Errorf("%s: %w", op, err)
				}
			}

			ev.ticket(b, domain.TicketStatusChanged, map[string]string{"status": string(domain.BookingCheckedIn)})

			return nil
		})
}

// CheckOut finishes the stay. CompleteBooking is the same transition.
func (s *ReservationServiceImpl) CheckOut(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	const op = "internal.service.reservation.CheckOut"

	return s.complete(ctx, op, bookingID)
}

func (s *ReservationServiceImpl) CompleteBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	const op = "internal.service.reservation.CompleteBooking"

	return s.complete(ctx, op, bookingID)
}

func (s *ReservationServiceImpl) complete(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	return s.transition(ctx, op, bookingID, domain.BookingCompleted,
		func(tx *sqlx.Tx, b *domain.Booking, now time.Time, ev *pendingEvents) error {
			if err := s.setApartmentStatus(ctx, tx, b.ApartmentID, domain.ApartmentAvailable, now, ev); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			b.CheckOutTime = &now

			ev.ticket(b, domain.TicketStatusChanged, map[string]string{"status": string(domain.BookingCompleted)})

			return nil
		})
}

func (s *ReservationServiceImpl) CancelBooking(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	const op = "internal.service.reservation.CancelBooking"

	if reason == "" {
		reason = defaultCancelReason
	}

	return s.transition(ctx, op, bookingID, domain.BookingCancelled,
		func(tx *sqlx.Tx, b *domain.Booking, now time.Time, ev *pendingEvents) error {
			if err := s.setApartmentStatus(ctx, tx, b.ApartmentID, domain.ApartmentAvailable, now, ev); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}

			ev.ticket(b, domain.TicketStatusChanged, map[string]string{
				"status": string(domain.BookingCancelled),
				"reason": reason,
			})

			return nil
		})
}

type applyFunc func(tx *sqlx.Tx, b *domain.Booking, now time.Time, ev *pendingEvents) error

// transition moves a booking to status to under the apartment lock and runs
// apply for the side effects of that move.
func (s *ReservationServiceImpl) transition(ctx context.Context, op string, bookingID int64, to domain.BookingStatus, apply applyFunc) (*domain.Booking, error) {
	log := s.log.With(slog.String("op", op), slog.Int64("booking_id", bookingID))

	var (
		booking *domain.Booking
		from    domain.BookingStatus
		unlock  func()
	)

	defer func() {
		if unlock != nil {
			unlock()
		}
	}()

	now := s.now()
	ev := &pendingEvents{}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		current, err := s.bookings.GetBooking(ctx, tx, bookingID)
		if err != nil {
			return fmt.Errorf("%s: failed to get booking: %w", op, err)
		}

		unlock, err = s.locker.Lock(ctx, current.ApartmentID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		if _, err := s.apartments.GetApartmentWithLock(ctx, tx, current.ApartmentID); err != nil {
			return fmt.Errorf("%s: failed to get apartment with lock: %w", op, err)
		}

		booking, err = s.bookings.GetBookingWithLock(ctx, tx, bookingID)
		if err != nil {
			return fmt.Errorf("%s: failed to get booking with lock: %w", op, err)
		}

		from = booking.Status
		if !from.CanTransitionTo(to) {
			return &apperrors.TransitionError{BookingID: booking.ID, From: string(from), To: string(to)}
		}

		booking.Status = to

		if err := apply(tx, booking, now, ev); err != nil {
			return err
		}

		if err := s.bookings.UpdateBooking(ctx, tx, booking); err != nil {
			return fmt.Errorf("%s: failed to update booking: %w", op, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Info("booking status changed", slog.String("from", string(from)), slog.String("to", string(to)))

	s.flush(ctx, log, ev)

	return booking, nil
}

// setApartmentStatus stamps the apartment without checking which booking
// holds it.
func (s *ReservationServiceImpl) setApartmentStatus(ctx context.Context, tx *sqlx.Tx, apartmentID int64, status domain.ApartmentStatus, now time.Time, ev *pendingEvents) error {
	if err := s.apartments.UpdateApartmentStatus(ctx, tx, apartmentID, status, now); err != nil {
		return fmt.Errorf("failed to set apartment status %s: %w", status, err)
	}

	ev.apartmentChanged = true

	return nil
}

func (s *ReservationServiceImpl) flush(ctx context.Context, log *slog.Logger, ev *pendingEvents) {
	for _, t := range ev.tickets {
		s.recorder.RecordTicket(ctx, t)
	}

	for _, a := range ev.alerts {
		s.recorder.RecordAlert(ctx, a)
	}

	if ev.apartmentChanged {
		if err := s.cache.InvalidateAvailable(ctx); err != nil {
			log.Warn("failed to invalidate available apartments cache", sl.Err(err))
		}
	}
}

func (s *ReservationServiceImpl) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	const op = "internal.service.reservation.GetBooking"

	booking, err := s.bookings.GetBooking(ctx, s.db, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return booking, nil
}

func (s *ReservationServiceImpl) ListBookingsByClient(ctx context.Context, clientID int64) ([]domain.Booking, error) {
	const op = "internal.service.reservation.ListBookingsByClient"

	bookings, err := s.bookings.ListBookingsByClient(ctx, s.db, clientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *ReservationServiceImpl) ListBookingsByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	const op = "internal.service.reservation.ListBookingsByOwner"

	bookings, err := s.bookings.ListBookingsByOwner(ctx, s.db, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *ReservationServiceImpl) ListTickets(ctx context.Context, bookingID int64) ([]domain.Ticket, error) {
	const op = "internal.service.reservation.ListTickets"

	if _, err := s.bookings.GetBooking(ctx, s.db, bookingID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tickets, err := s.audit.ListTicketsByBooking(ctx, s.db, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tickets, nil
}
