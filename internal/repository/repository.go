// Package repository defines the persistence contracts used by the service layer.
// Methods taking sqlx.ExtContext run either on a transaction or on the plain
// connection; methods taking *sqlx.Tx must run inside the caller's transaction.
package repository

import (
	"context"
	"time"

	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

// UserRepository stores users and their reputation aggregate.
type UserRepository interface {
	// CreateUser inserts u and fills its ID and CreatedAt.
	// It returns apperrors.ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, tx *sqlx.Tx, u *domain.User) error

	// GetUser returns apperrors.ErrNotFound if the user does not exist.
	GetUser(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.User, error)

	// GetUserWithLock reads the user with "FOR UPDATE".
	GetUserWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.User, error)

	UpdateReputation(ctx context.Context, tx *sqlx.Tx, id int64, agg domain.Aggregate) error
}

// ApartmentRepository stores apartments, their occupancy flag and rating aggregate.
type ApartmentRepository interface {
	// CreateApartment inserts a and fills its ID and CreatedAt.
	// It returns apperrors.ErrNotFound if the owner does not exist.
	CreateApartment(ctx context.Context, tx *sqlx.Tx, a *domain.Apartment) error

	GetApartment(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.Apartment, error)

	// GetApartmentWithLock reads the apartment with "FOR UPDATE". Every booking
	// mutation takes this lock first, which serializes them per apartment.
	GetApartmentWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Apartment, error)

	UpdateApartmentStatus(ctx context.Context, tx *sqlx.Tx, id int64, status domain.ApartmentStatus, at time.Time) error
	UpdateApartmentRating(ctx context.Context, tx *sqlx.Tx, id int64, agg domain.Aggregate) error

	ListApartmentsByStatus(ctx context.Context, ext sqlx.ExtContext, status domain.ApartmentStatus) ([]domain.Apartment, error)
	ListApartmentsByOwner(ctx context.Context, ext sqlx.ExtContext, ownerID int64) ([]domain.Apartment, error)
}

// BookingRepository stores bookings. Bookings are never deleted.
type BookingRepository interface {
	// CreateBooking inserts b and fills its ID, CreatedAt and UpdatedAt.
	CreateBooking(ctx context.Context, tx *sqlx.Tx, b *domain.Booking) error

	GetBooking(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.Booking, error)
	GetBookingWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Booking, error)

	// UpdateBooking persists the mutable fields of b: status, payment flags
	// and stay timestamps.
	UpdateBooking(ctx context.Context, tx *sqlx.Tx, b *domain.Booking) error

	ListBookingsByClient(ctx context.Context, ext sqlx.ExtContext, clientID int64) ([]domain.Booking, error)
	ListBookingsByOwner(ctx context.Context, ext sqlx.ExtContext, ownerID int64) ([]domain.Booking, error)

	// ListOverlappingBookings returns non-terminal bookings of the apartment
	// whose [check_in, check_out) range intersects the given one.
	ListOverlappingBookings(ctx context.Context, tx *sqlx.Tx, apartmentID int64, checkIn, checkOut time.Time) ([]domain.Booking, error)
}

// PaymentRepository stores at most one payment per booking.
type PaymentRepository interface {
	// CreatePayment returns *apperrors.PaymentExistsError when the booking
	// already has a payment.
	CreatePayment(ctx context.Context, tx *sqlx.Tx, p *domain.Payment) error
	UpdatePayment(ctx context.Context, tx *sqlx.Tx, p *domain.Payment) error
	GetPaymentByBooking(ctx context.Context, ext sqlx.ExtContext, bookingID int64) (*domain.Payment, error)
}

type RatingRepository interface {
	CreateRating(ctx context.Context, tx *sqlx.Tx, r *domain.Rating) error

	// ListRatingsByRatedUser filters by ratingType when it is not empty.
	ListRatingsByRatedUser(ctx context.Context, ext sqlx.ExtContext, userID int64, ratingType domain.RatingType) ([]domain.Rating, error)

	// ListScoresByRatedUser returns every rating score addressed to the user.
	ListScoresByRatedUser(ctx context.Context, ext sqlx.ExtContext, userID int64) ([]int, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, tx *sqlx.Tx, r *domain.Review) error

	ListReviewsByApartment(ctx context.Context, ext sqlx.ExtContext, apartmentID int64) ([]domain.Review, error)
	ListReviewsByTargetUser(ctx context.Context, ext sqlx.ExtContext, userID int64) ([]domain.Review, error)

	ListScoresByApartment(ctx context.Context, ext sqlx.ExtContext, apartmentID int64) ([]int, error)
}

// AuditRepository appends tickets and alerts. Both are write-once.
type AuditRepository interface {
	CreateTicket(ctx context.Context, ext sqlx.ExtContext, t *domain.Ticket) error
	CreateAlert(ctx context.Context, ext sqlx.ExtContext, a *domain.Alert) error
	ListTicketsByBooking(ctx context.Context, ext sqlx.ExtContext, bookingID int64) ([]domain.Ticket, error)
}

// ReportRepository runs the aggregate queries behind the admin statistics.
type ReportRepository interface {
	GetPlatformStats(ctx context.Context) (*domain.PlatformStats, error)
	GetOwnerStats(ctx context.Context, ownerID int64) (*domain.OwnerStats, error)
}
