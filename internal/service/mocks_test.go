package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// TransactorMock hands out transactions. Plain reads receive the mock itself
// as their sqlx.ExtContext and never touch it.
type TransactorMock struct {
	mock.Mock
	sqlx.ExtContext
}

var _ DB = (*TransactorMock)(nil)

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) CreateUser(ctx context.Context, tx *sqlx.Tx, u *domain.User) error {
	args := m.Called(ctx, tx, u)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.User, error) {
	args := m.Called(ctx, ext, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetUserWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.User, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) UpdateReputation(ctx context.Context, tx *sqlx.Tx, id int64, agg domain.Aggregate) error {
	args := m.Called(ctx, tx, id, agg)
	return args.Error(0)
}

type ApartmentRepositoryMock struct {
	mock.Mock
}

var _ repository.ApartmentRepository = (*ApartmentRepositoryMock)(nil)

func (m *ApartmentRepositoryMock) CreateApartment(ctx context.Context, tx *sqlx.Tx, a *domain.Apartment) error {
	args := m.Called(ctx, tx, a)
	return args.Error(0)
}

func (m *ApartmentRepositoryMock) GetApartment(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.Apartment, error) {
	args := m.Called(ctx, ext, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Apartment), args.Error(1)
}

func (m *ApartmentRepositoryMock) GetApartmentWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Apartment, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Apartment), args.Error(1)
}

func (m *ApartmentRepositoryMock) UpdateApartmentStatus(ctx context.Context, tx *sqlx.Tx, id int64, status domain.ApartmentStatus, at time.Time) error {
	args := m.Called(ctx, tx, id, status, at)
	return args.Error(0)
}

func (m *ApartmentRepositoryMock) UpdateApartmentRating(ctx context.Context, tx *sqlx.Tx, id int64, agg domain.Aggregate) error {
	args := m.Called(ctx, tx, id, agg)
	return args.Error(0)
}

func (m *ApartmentRepositoryMock) ListApartmentsByStatus(ctx context.Context, ext sqlx.ExtContext, status domain.ApartmentStatus) ([]domain.Apartment, error) {
	args := m.Called(ctx, ext, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Apartment), args.Error(1)
}

func (m *ApartmentRepositoryMock) ListApartmentsByOwner(ctx context.Context, ext sqlx.ExtContext, ownerID int64) ([]domain.Apartment, error) {
	args := m.Called(ctx, ext, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Apartment), args.Error(1)
}

type BookingRepositoryMock struct {
	mock.Mock
}

var _ repository.BookingRepository = (*BookingRepositoryMock)(nil)

func (m *BookingRepositoryMock) CreateBooking(ctx context.Context, tx *sqlx.Tx, b *domain.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}

func (m *BookingRepositoryMock) GetBooking(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, ext, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) GetBookingWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) UpdateBooking(ctx context.Context, tx *sqlx.Tx, b *domain.Booking) error {
	args := m.Called(ctx, tx, b)
	return args.Error(0)
}

func (m *BookingRepositoryMock) ListBookingsByClient(ctx context.Context, ext sqlx.ExtContext, clientID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, ext, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) ListBookingsByOwner(ctx context.Context, ext sqlx.ExtContext, ownerID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, ext, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *BookingRepositoryMock) ListOverlappingBookings(ctx context.Context, tx *sqlx.Tx, apartmentID int64, checkIn, checkOut time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, tx, apartmentID, checkIn, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Booking), args.Error(1)
}

type PaymentRepositoryMock struct {
	mock.Mock
}

var _ repository.PaymentRepository = (*PaymentRepositoryMock)(nil)

func (m *PaymentRepositoryMock) CreatePayment(ctx context.Context, tx *sqlx.Tx, p *domain.Payment) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}

func (m *PaymentRepositoryMock) UpdatePayment(ctx context.Context, tx *sqlx.Tx, p *domain.Payment) error {
	args := m.Called(ctx, tx, p)
	return args.Error(0)
}

func (m *PaymentRepositoryMock) GetPaymentByBooking(ctx context.Context, ext sqlx.ExtContext, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, ext, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}

type RatingRepositoryMock struct {
	mock.Mock
}

var _ repository.RatingRepository = (*RatingRepositoryMock)(nil)

func (m *RatingRepositoryMock) CreateRating(ctx context.Context, tx *sqlx.Tx, r *domain.Rating) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *RatingRepositoryMock) ListRatingsByRatedUser(ctx context.Context, ext sqlx.ExtContext, userID int64, ratingType domain.RatingType) ([]domain.Rating, error) {
	args := m.Called(ctx, ext, userID, ratingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Rating), args.Error(1)
}

func (m *RatingRepositoryMock) ListScoresByRatedUser(ctx context.Context, ext sqlx.ExtContext, userID int64) ([]int, error) {
	args := m.Called(ctx, ext, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]int), args.Error(1)
}

type ReviewRepositoryMock struct {
	mock.Mock
}

var _ repository.ReviewRepository = (*ReviewRepositoryMock)(nil)

func (m *ReviewRepositoryMock) CreateReview(ctx context.Context, tx *sqlx.Tx, r *domain.Review) error {
	args := m.Called(ctx, tx, r)
	return args.Error(0)
}

func (m *ReviewRepositoryMock) ListReviewsByApartment(ctx context.Context, ext sqlx.ExtContext, apartmentID int64) ([]domain.Review, error) {
	args := m.Called(ctx, ext, apartmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ListReviewsByTargetUser(ctx context.Context, ext sqlx.ExtContext, userID int64) ([]domain.Review, error) {
	args := m.Called(ctx, ext, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *ReviewRepositoryMock) ListScoresByApartment(ctx context.Context, ext sqlx.ExtContext, apartmentID int64) ([]int, error) {
	args := m.Called(ctx, ext, apartmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]int), args.Error(1)
}

type AuditRepositoryMock struct {
	mock.Mock
}

var _ repository.AuditRepository = (*AuditRepositoryMock)(nil)

func (m *AuditRepositoryMock) CreateTicket(ctx context.Context, ext sqlx.ExtContext, t *domain.Ticket) error {
	args := m.Called(ctx, ext, t)
	return args.Error(0)
}

func (m *AuditRepositoryMock) CreateAlert(ctx context.Context, ext sqlx.ExtContext, a *domain.Alert) error {
	args := m.Called(ctx, ext, a)
	return args.Error(0)
}

func (m *AuditRepositoryMock) ListTicketsByBooking(ctx context.Context, ext sqlx.ExtContext, bookingID int64) ([]domain.Ticket, error) {
	args := m.Called(ctx, ext, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Ticket), args.Error(1)
}

type ReportRepositoryMock struct {
	mock.Mock
}

var _ repository.ReportRepository = (*ReportRepositoryMock)(nil)

func (m *ReportRepositoryMock) GetPlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.PlatformStats), args.Error(1)
}

func (m *ReportRepositoryMock) GetOwnerStats(ctx context.Context, ownerID int64) (*domain.OwnerStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.OwnerStats), args.Error(1)
}

type SettlerMock struct {
	mock.Mock
}

var _ Settler = (*SettlerMock)(nil)

func (m *SettlerMock) Settle(ctx context.Context, tx *sqlx.Tx, b *domain.Booking, method domain.PaymentMethod) (*domain.Payment, error) {
	args := m.Called(ctx, tx, b, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *SettlerMock) OpenPending(ctx context.Context, tx *sqlx.Tx, b *domain.Booking, method domain.PaymentMethod) (*domain.Payment, error) {
	args := m.Called(ctx, tx, b, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}

type EventRecorderMock struct {
	mock.Mock
}

var _ EventRecorder = (*EventRecorderMock)(nil)

func (m *EventRecorderMock) RecordTicket(ctx context.Context, t domain.Ticket) {
	m.Called(ctx, t)
}

func (m *EventRecorderMock) RecordAlert(ctx context.Context, a domain.Alert) {
	m.Called(ctx, a)
}

func (m *EventRecorderMock) NotifyPayment(ctx context.Context, b *domain.Booking, p *domain.Payment) {
	m.Called(ctx, b, p)
}

type ApartmentLockerMock struct {
	mock.Mock
}

var _ ApartmentLocker = (*ApartmentLockerMock)(nil)

func (m *ApartmentLockerMock) Lock(ctx context.Context, apartmentID int64) (func(), error) {
	args := m.Called(ctx, apartmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(func()), args.Error(1)
}

type AvailabilityCacheMock struct {
	mock.Mock
}

var _ AvailabilityCache = (*AvailabilityCacheMock)(nil)

func (m *AvailabilityCacheMock) GetAvailable(ctx context.Context) ([]domain.Apartment, int64, bool, error) {
	args := m.Called(ctx)

	var apartments []domain.Apartment
	if args.Get(0) != nil {
		apartments = args.Get(0).([]domain.Apartment)
	}

	return apartments, args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *AvailabilityCacheMock) SetAvailable(ctx context.Context, gen int64, apartments []domain.Apartment) error {
	args := m.Called(ctx, gen, apartments)
	return args.Error(0)
}

func (m *AvailabilityCacheMock) InvalidateAvailable(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
