package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingCreated    BookingStatus = "CREATED"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
	BookingCompleted  BookingStatus = "COMPLETED"
	BookingCancelled  BookingStatus = "CANCELLED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingCreated:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingConfirmed, BookingCheckedIn, BookingCancelled},
	BookingCheckedIn:  {BookingCheckedOut, BookingCompleted, BookingCancelled},
	BookingCheckedOut: {BookingCompleted, BookingCancelled},
}

// CanTransitionTo reports whether a booking in s may move to next.
// Terminal states allow nothing.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// IsActive reports whether the booking still holds its apartment.
func (s BookingStatus) IsActive() bool {
	return !s.IsTerminal()
}

// CanSettle reports whether payment may be collected in this state.
func (s BookingStatus) CanSettle() bool {
	return s == BookingCheckedIn || s == BookingCheckedOut
}

type Booking struct {
	ID               int64         `db:"id" json:"id"`
	ApartmentID      int64         `db:"apartment_id" json:"apartment_id"`
	ClientID         int64         `db:"client_id" json:"client_id"`
	CheckIn          time.Time     `db:"check_in" json:"check_in"`
	CheckOut         time.Time     `db:"check_out" json:"check_out"`
	Guests           int           `db:"guests" json:"guests"`
	TotalAmount      Money         `db:"total_amount" json:"total_amount"`
	NonRefundable    bool          `db:"non_refundable" json:"non_refundable"`
	Status           BookingStatus `db:"status" json:"status"`
	PaymentCompleted bool          `db:"payment_completed" json:"payment_completed"`
	PaymentDate      *time.Time    `db:"payment_date" json:"payment_date,omitempty"`
	CheckInTime      *time.Time    `db:"check_in_time" json:"check_in_time,omitempty"`
	CheckOutTime     *time.Time    `db:"check_out_time" json:"check_out_time,omitempty"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updated_at"`
}

// Day truncates t to the start of its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MaxStayNights is the longest stay a single booking may cover.
const MaxStayNights = 365

const secondsPerDay = 24 * 60 * 60

// Nights counts whole days between check-in and check-out dates.
// The result is zero or negative for an empty or inverted range.
func Nights(checkIn, checkOut time.Time) int {
	return int((Day(checkOut).Unix() - Day(checkIn).Unix()) / secondsPerDay)
}

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) share at least one night.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return Day(aIn).Before(Day(bOut)) && Day(bIn).Before(Day(aOut))
}
