package domain

import (
	"encoding/json"
	"time"
)

const NonRefundableMessage = "Please note: the amount paid for this rate is non-refundable."

// NewTicket builds a ticket whose data is the JSON encoding of fields.
func NewTicket(userID, bookingID int64, t TicketType, fields map[string]string) Ticket {
	data, err := json.Marshal(fields)
	if err != nil || fields == nil {
		data = []byte("{}")
	}

	return Ticket{
		UserID:    userID,
		BookingID: bookingID,
		Type:      t,
		Data:      data,
	}
}

// NewNonRefundableAlert is accepted on creation: the client agrees to the
// terms when booking.
func NewNonRefundableAlert(userID, bookingID int64, at time.Time) Alert {
	return Alert{
		UserID:     userID,
		BookingID:  bookingID,
		Type:       AlertNonRefundable,
		Message:    NonRefundableMessage,
		Accepted:   true,
		AcceptedAt: &at,
	}
}
