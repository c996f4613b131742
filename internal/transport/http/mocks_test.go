package http

import (
	"context"

	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/service"
	"github.com/stretchr/testify/mock"
)

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) CreateUser(ctx context.Context, req service.UserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserServiceMock) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

type ApartmentServiceMock struct {
	mock.Mock
}

func (m *ApartmentServiceMock) CreateApartment(ctx context.Context, req service.ApartmentRequest) (*domain.Apartment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Apartment), args.Error(1)
}

func (m *ApartmentServiceMock) GetApartment(ctx context.Context, apartmentID int64) (*domain.Apartment, error) {
	args := m.Called(ctx, apartmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Apartment), args.Error(1)
}

func (m *ApartmentServiceMock) ListAvailable(ctx context.Context) ([]domain.Apartment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Apartment), args.Error(1)
}

func (m *ApartmentServiceMock) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Apartment, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Apartment), args.Error(1)
}

func (m *ApartmentServiceMock) ArchiveApartment(ctx context.Context, apartmentID int64) (*domain.Apartment, error) {
	args := m.Called(ctx, apartmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Apartment), args.Error(1)
}

type ReservationServiceMock struct {
	mock.Mock
}

func (m *ReservationServiceMock) booking(args mock.Arguments) (*domain.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *ReservationServiceMock) bookings(args mock.Arguments) ([]domain.Booking, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *ReservationServiceMock) CreateBooking(ctx context.Context, req service.BookingRequest) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, req))
}

func (m *ReservationServiceMock) PlaceBooking(ctx context.Context, req service.BookingRequest) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, req))
}

func (m *ReservationServiceMock) ConfirmBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, bookingID))
}

func (m *ReservationServiceMock) CheckIn(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, bookingID))
}

func (m *ReservationServiceMock) CheckOut(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, bookingID))
}

func (m *ReservationServiceMock) CompleteBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, bookingID))
}

func (m *ReservationServiceMock) CancelBooking(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, bookingID, reason))
}

func (m *ReservationServiceMock) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return m.booking(m.Called(ctx, bookingID))
}

func (m *ReservationServiceMock) ListBookingsByClient(ctx context.Context, clientID int64) ([]domain.Booking, error) {
	return m.bookings(m.Called(ctx, clientID))
}

func (m *ReservationServiceMock) ListBookingsByOwner(ctx context.Context, ownerID int64) ([]domain.Booking, error) {
	return m.bookings(m.Called(ctx, ownerID))
}

func (m *ReservationServiceMock) ListTickets(ctx context.Context, bookingID int64) ([]domain.Ticket, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Ticket), args.Error(1)
}

type SettlementServiceMock struct {
	mock.Mock
}

func (m *SettlementServiceMock) ProcessPayment(ctx context.Context, bookingID int64, method domain.PaymentMethod) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *SettlementServiceMock) GetPaymentByBooking(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Payment), args.Error(1)
}

type ReputationServiceMock struct {
	mock.Mock
}

func (m *ReputationServiceMock) SubmitRating(ctx context.Context, req service.RatingRequest) (*domain.Rating, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Rating), args.Error(1)
}

func (m *ReputationServiceMock) SubmitReview(ctx context.Context, req service.ReviewRequest) (*domain.Review, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *ReputationServiceMock) ListRatingsForUser(ctx context.Context, userID int64, ratingType domain.RatingType) ([]domain.Rating, error) {
	args := m.Called(ctx, userID, ratingType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Rating), args.Error(1)
}

func (m *ReputationServiceMock) ListReviewsForApartment(ctx context.Context, apartmentID int64) ([]domain.Review, error) {
	args := m.Called(ctx, apartmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *ReputationServiceMock) ListReviewsForOwner(ctx context.Context, ownerID int64) ([]domain.Review, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Review), args.Error(1)
}

type ReportServiceMock struct {
	mock.Mock
}

func (m *ReportServiceMock) PlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.PlatformStats), args.Error(1)
}

func (m *ReportServiceMock) OwnerStats(ctx context.Context, ownerID int64) (*domain.OwnerStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.OwnerStats), args.Error(1)
}
