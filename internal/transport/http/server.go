// Package http exposes the booking services over a JSON HTTP API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/service"
	"github.com/YusovID/rental-booking-service/internal/validation"
	"github.com/YusovID/rental-booking-service/pkg/logger/sl"
	"github.com/YusovID/rental-booking-service/swagger"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services groups the use cases the transport calls into.
type Services struct {
	Users        service.UserService
	Apartments   service.ApartmentService
	Reservations service.ReservationService
	Settlement   service.SettlementService
	Reputation   service.ReputationService
	Reports      service.ReportService
}

type Server struct {
	log          *slog.Logger
	users        service.UserService
	apartments   service.ApartmentService
	reservations service.ReservationService
	settlement   service.SettlementService
	reputation   service.ReputationService
	reports      service.ReportService
}

func NewServer(log *slog.Logger, svc Services) *Server {
	return &Server{
		log:          log,
		users:        svc.Users,
		apartments:   svc.Apartments,
		reservations: svc.Reservations,
		settlement:   svc.Settlement,
		reputation:   svc.Reputation,
		reports:      svc.Reports,
	}
}

// Routes builds the router with middleware and every API endpoint.
func (s *Server) Routes() http.Handler {
	mux := chi.NewRouter()

	mux.Use(s.requestID)
	mux.Use(s.logRequest)
	mux.Use(s.metricsMiddleware)

	swaggerHandler, err := swagger.GetHandler()
	if err != nil {
		s.log.Error("failed to get swagger handler", sl.Err(err))
	} else {
		mux.Mount("/swagger", http.StripPrefix("/swagger", swaggerHandler))
	}

	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/users", func(r chi.Router) {
		r.Post("/", s.createUser)
		r.Get("/{id}", s.getUser)
	})

	mux.Route("/apartments", func(r chi.Router) {
		r.Post("/", s.createApartment)
		r.Get("/", s.listApartments)
		r.Get("/{id}", s.getApartment)
		r.Post("/{id}/archive", s.archiveApartment)
	})

	mux.Route("/bookings", func(r chi.Router) {
		r.Post("/", s.placeBooking)
		r.Get("/", s.listBookings)
		r.Get("/{id}", s.getBooking)
		r.Post("/{id}/confirm", s.confirmBooking)
		r.Post("/{id}/checkin", s.checkIn)
		r.Post("/{id}/checkout", s.checkOut)
		r.Post("/{id}/complete", s.completeBooking)
		r.Post("/{id}/cancel", s.cancelBooking)
		r.Get("/{id}/tickets", s.listTickets)
	})

	mux.Route("/payments/booking/{id}", func(r chi.Router) {
		r.Post("/", s.processPayment)
		r.Get("/", s.getPayment)
	})

	mux.Post("/ratings", s.submitRating)
	mux.Get("/ratings/user/{id}", s.listRatings)

	mux.Post("/reviews", s.submitReview)
	mux.Get("/reviews/apartment/{id}", s.listApartmentReviews)
	mux.Get("/reviews/owner/{id}", s.listOwnerReviews)

	mux.Get("/admin/stats", s.platformStats)
	mux.Get("/admin/owners/{id}/stats", s.ownerStats)

	return mux
}

// respond encodes data as JSON with the given status code.
func (s *Server) respond(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.log.Error("failed to encode response", sl.Err(err))
		}
	}
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message

	s.respond(w, status, body)
}

// decodeAndValidate decodes a JSON body into v and runs its validate tags.
func (s *Server) decodeAndValidate(r *http.Request, v interface{}) error {
	if err := s.decode(r.Body, v); err != nil {
		return err
	}

	return validation.ValidateStruct(v)
}

func (s *Server) decode(body io.ReadCloser, v interface{}) error {
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return nil
}

// decodeOptional is decode for endpoints whose body may be empty.
func (s *Server) decodeOptional(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRequest, err)
	}

	return validation.ValidateStruct(v)
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: '%s' is not a valid id", apperrors.ErrInvalidRequest, raw)
	}

	return id, nil
}

func queryID(r *http.Request, name string) (int64, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, true, fmt.Errorf("%w: query parameter '%s' is not a valid id", apperrors.ErrInvalidRequest, name)
	}

	return id, true, nil
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{apperrors.ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
	{apperrors.ErrValidation, http.StatusBadRequest, "VALIDATION_FAILED"},
	{apperrors.ErrInvalidRange, http.StatusBadRequest, "INVALID_RANGE"},
	{apperrors.ErrInvalidScore, http.StatusBadRequest, "INVALID_SCORE"},
	{apperrors.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
	{apperrors.ErrInvalidState, http.StatusConflict, "INVALID_STATE"},
	{apperrors.ErrAlreadySettled, http.StatusConflict, "ALREADY_SETTLED"},
	{apperrors.ErrInvalidRelationship, http.StatusConflict, "INVALID_RELATIONSHIP"},
	{apperrors.ErrInvalidBooking, http.StatusConflict, "INVALID_BOOKING"},
	{apperrors.ErrRoleNotAllowed, http.StatusConflict, "ROLE_NOT_ALLOWED"},
	{apperrors.ErrApartmentUnavailable, http.StatusConflict, "APARTMENT_UNAVAILABLE"},
	{apperrors.ErrApartmentLocked, http.StatusConflict, "APARTMENT_LOCKED"},
	{apperrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
}

// handleServiceError logs err and maps it to an HTTP error response.
func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := s.log.With(slog.String("op", op), slog.String("request_id", getRequestID(r.Context())))

	var (
		validationErr *validation.ValidationError
		transitionErr *apperrors.TransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusBadRequest, "VALIDATION_FAILED", validationErr.Error())
		return
	case errors.As(err, &transitionErr):
		log.Warn("request rejected", sl.Err(err))
		s.respondError(w, http.StatusConflict, "INVALID_TRANSITION", transitionErr.Error())
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			log.Warn("request rejected", sl.Err(err))
			s.respondError(w, m.status, m.code, m.target.Error())

			return
		}
	}

	log.Error("service error occurred", sl.Err(err))
	s.respondError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
}
