package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/service"
)

// placeBooking creates a booking and confirms it in one step.
func (s *Server) placeBooking(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.placeBooking"

	var req createBookingRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	checkIn, err := time.Parse(time.DateOnly, req.CheckIn)
	if err != nil {
		s.handleServiceError(w, r, op, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err))
		return
	}

	checkOut, err := time.Parse(time.DateOnly, req.CheckOut)
	if err != nil {
		s.handleServiceError(w, r, op, fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err))
		return
	}

	booking, err := s.reservations.PlaceBooking(r.Context(), service.BookingRequest{
		ApartmentID:   req.ApartmentID,
		ClientID:      req.ClientID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		NonRefundable: req.NonRefundable,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Booking{"booking": booking})
}

func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	s.bookingAction(w, r, "internal.transport.http.getBooking", s.reservations.GetBooking)
}

func (s *Server) confirmBooking(w http.ResponseWriter, r *http.Request) {
	s.bookingAction(w, r, "internal.transport.http.confirmBooking", s.reservations.ConfirmBooking)
}

func (s *Server) checkIn(w http.ResponseWriter, r *http.Request) {
	s.bookingAction(w, r, "internal.transport.http.checkIn", s.reservations.CheckIn)
}

func (s *Server) checkOut(w http.ResponseWriter, r *http.Request) {
	s.bookingAction(w, r, "internal.transport.http.checkOut", s.reservations.CheckOut)
}

func (s *Server) completeBooking(w http.ResponseWriter, r *http.Request) {
	s.bookingAction(w, r, "internal.transport.http.completeBooking", s.reservations.CompleteBooking)
}

func (s *Server) bookingAction(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	action func(ctx context.Context, bookingID int64) (*domain.Booking, error),
) {
	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	booking, err := action(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Booking{"booking": booking})
}

func (s *Server) cancelBooking(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.cancelBooking"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req cancelBookingRequest
	if err := s.decodeOptional(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	booking, err := s.reservations.CancelBooking(r.Context(), id, req.Reason)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Booking{"booking": booking})
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listBookings"

	clientID, byClient, err := queryID(r, "client_id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	ownerID, byOwner, err := queryID(r, "owner_id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var bookings []domain.Booking

	switch {
	case byClient && !byOwner:
		bookings, err = s.reservations.ListBookingsByClient(r.Context(), clientID)
	case byOwner && !byClient:
		bookings, err = s.reservations.ListBookingsByOwner(r.Context(), ownerID)
	default:
		err = fmt.Errorf("%w: exactly one of client_id or owner_id is required", apperrors.ErrInvalidRequest)
	}

	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if bookings == nil {
		bookings = []domain.Booking{}
	}

	s.respond(w, http.StatusOK, map[string][]domain.Booking{"bookings": bookings})
}

func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listTickets"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	tickets, err := s.reservations.ListTickets(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if tickets == nil {
		tickets = []domain.Ticket{}
	}

	s.respond(w, http.StatusOK, map[string][]domain.Ticket{"tickets": tickets})
}

func (s *Server) processPayment(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.processPayment"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var req processPaymentRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	payment, err := s.settlement.ProcessPayment(r.Context(), id, domain.PaymentMethod(req.Method))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Payment{"payment": payment})
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getPayment"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	payment, err := s.settlement.GetPaymentByBooking(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Payment{"payment": payment})
}
