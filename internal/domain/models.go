package domain

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleClient Role = "CLIENT"
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleOwner || r == RoleAdmin
}

// CanBook reports whether the role may reserve apartments.
func (r Role) CanBook() bool { return r == RoleClient }

// CanOwn reports whether the role may list apartments.
func (r Role) CanOwn() bool { return r == RoleOwner }

// CanRate reports whether a user with role r may leave a rating of type t.
// Owners rate clients, clients rate owners.
func (r Role) CanRate(t RatingType) bool {
	switch t {
	case RatingClient:
		return r == RoleOwner
	case RatingOwner:
		return r == RoleClient
	default:
		return false
	}
}

// CanBeRated reports whether a user with role r may receive a rating of type t.
func (r Role) CanBeRated(t RatingType) bool {
	switch t {
	case RatingClient:
		return r == RoleClient
	case RatingOwner:
		return r == RoleOwner
	default:
		return false
	}
}

type User struct {
	ID              int64     `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
	Phone           string    `db:"phone" json:"phone,omitempty"`
	Role            Role      `db:"role" json:"role"`
	ReputationScore float64   `db:"reputation_score" json:"reputation_score"`
	TotalRatings    int       `db:"total_ratings" json:"total_ratings"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type ApartmentStatus string

const (
	ApartmentAvailable ApartmentStatus = "AVAILABLE"
	ApartmentBooked    ApartmentStatus = "BOOKED"
	ApartmentOccupied  ApartmentStatus = "OCCUPIED"
	ApartmentArchived  ApartmentStatus = "ARCHIVED"
)

type Apartment struct {
	ID               int64           `db:"id" json:"id"`
	OwnerID          int64           `db:"owner_id" json:"owner_id"`
	Title            string          `db:"title" json:"title"`
	Description      string          `db:"description" json:"description,omitempty"`
	Address          string          `db:"address" json:"address"`
	City             string          `db:"city" json:"city"`
	Rooms            int             `db:"rooms" json:"rooms"`
	MaxGuests        int             `db:"max_guests" json:"max_guests"`
	PricePerNight    Money           `db:"price_per_night" json:"price_per_night"`
	Status           ApartmentStatus `db:"status" json:"status"`
	LastStatusUpdate *time.Time      `db:"last_status_update" json:"last_status_update,omitempty"`
	AverageRating    float64         `db:"average_rating" json:"average_rating"`
	ReviewsCount     int             `db:"reviews_count" json:"reviews_count"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodDebitCard    PaymentMethod = "DEBIT_CARD"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodPayPal       PaymentMethod = "PAYPAL"
	MethodCash         PaymentMethod = "CASH"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCreditCard, MethodDebitCard, MethodBankTransfer, MethodPayPal, MethodCash:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID          int64         `db:"id" json:"id"`
	BookingID   int64         `db:"booking_id" json:"booking_id"`
	Amount      Money         `db:"amount" json:"amount"`
	PlatformFee Money         `db:"platform_fee" json:"platform_fee"`
	OwnerAmount Money         `db:"owner_amount" json:"owner_amount"`
	Method      PaymentMethod `db:"method" json:"method"`
	Status      PaymentStatus `db:"status" json:"status"`
	PaidAt      *time.Time    `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
}

type RatingType string

const (
	// RatingClient is left by an owner about a client.
	RatingClient RatingType = "CLIENT_RATING"
	// RatingOwner is left by a client about an owner.
	RatingOwner RatingType = "OWNER_RATING"
)

func (t RatingType) Valid() bool {
	return t == RatingClient || t == RatingOwner
}

type Rating struct {
	ID          int64      `db:"id" json:"id"`
	RaterID     int64      `db:"rater_id" json:"rater_id"`
	RatedUserID int64      `db:"rated_user_id" json:"rated_user_id"`
	BookingID   *int64     `db:"booking_id" json:"booking_id,omitempty"`
	Score       int        `db:"score" json:"score"`
	Comment     string     `db:"comment" json:"comment,omitempty"`
	Type        RatingType `db:"type" json:"type"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type ReviewTarget string

const (
	ReviewProperty ReviewTarget = "PROPERTY"
	ReviewOwner    ReviewTarget = "OWNER"
	ReviewClient   ReviewTarget = "CLIENT"
)

type Review struct {
	ID                int64        `db:"id" json:"id"`
	AuthorID          int64        `db:"author_id" json:"author_id"`
	TargetType        ReviewTarget `db:"target_type" json:"target_type"`
	TargetApartmentID *int64       `db:"target_apartment_id" json:"target_apartment_id,omitempty"`
	TargetUserID      *int64       `db:"target_user_id" json:"target_user_id,omitempty"`
	BookingID         *int64       `db:"booking_id" json:"booking_id,omitempty"`
	Rating            int          `db:"rating" json:"rating"`
	Comment           string       `db:"comment" json:"comment,omitempty"`
	CreatedAt         time.Time    `db:"created_at" json:"created_at"`
}

type TicketType string

const (
	TicketBookingCreated TicketType = "BOOKING_CREATED"
	TicketBookingUpdated TicketType = "BOOKING_UPDATED"
	TicketPaymentPaid    TicketType = "PAYMENT_PAID"
	TicketStatusChanged  TicketType = "STATUS_CHANGED"
)

// Ticket is an append-only audit record of a booking event. Data is opaque JSON.
type Ticket struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	BookingID int64           `db:"booking_id" json:"booking_id"`
	Type      TicketType      `db:"type" json:"type"`
	Data      json.RawMessage `db:"data" json:"data"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type AlertType string

const AlertNonRefundable AlertType = "NON_REFUNDABLE_WARNING"

type Alert struct {
	ID         int64      `db:"id" json:"id"`
	UserID     int64      `db:"user_id" json:"user_id"`
	BookingID  int64      `db:"booking_id" json:"booking_id"`
	Type       AlertType  `db:"type" json:"type"`
	Message    string     `db:"message" json:"message"`
	Accepted   bool       `db:"accepted" json:"accepted"`
	AcceptedAt *time.Time `db:"accepted_at" json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

type PlatformStats struct {
	TotalUsers      int   `db:"total_users" json:"total_users"`
	TotalClients    int   `db:"total_clients" json:"total_clients"`
	TotalOwners     int   `db:"total_owners" json:"total_owners"`
	TotalApartments int   `db:"total_apartments" json:"total_apartments"`
	TotalBookings   int   `db:"total_bookings" json:"total_bookings"`
	TotalPayments   int   `db:"total_payments" json:"total_payments"`
	TotalRevenue    Money `db:"total_revenue" json:"total_revenue"`
	PlatformRevenue Money `db:"platform_revenue" json:"platform_revenue"`
}

type OwnerStats struct {
	OwnerID         int64 `db:"owner_id" json:"owner_id"`
	TotalApartments int   `db:"total_apartments" json:"total_apartments"`
	TotalBookings   int   `db:"total_bookings" json:"total_bookings"`
	OwnerRevenue    Money `db:"owner_revenue" json:"owner_revenue"`
	TotalAmount     Money `db:"total_amount" json:"total_amount"`
}
