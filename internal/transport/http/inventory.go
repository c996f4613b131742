package http

import (
	"net/http"

	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/service"
)

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createUser"

	var req createUserRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.users.CreateUser(r.Context(), service.UserRequest{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.User{"user": user})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getUser"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	user, err := s.users.GetUser(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.User{"user": user})
}

func (s *Server) createApartment(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.createApartment"

	var req createApartmentRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	apartment, err := s.apartments.CreateApartment(r.Context(), service.ApartmentRequest{
		OwnerID:       req.OwnerID,
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		Rooms:         req.Rooms,
		MaxGuests:     req.MaxGuests,
		PricePerNight: domain.Money(req.PricePerNight),
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Apartment{"apartment": apartment})
}

func (s *Server) getApartment(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.getApartment"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	apartment, err := s.apartments.GetApartment(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Apartment{"apartment": apartment})
}

// listApartments returns an owner's apartments when owner_id is given and
// the available ones otherwise.
func (s *Server) listApartments(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listApartments"

	ownerID, byOwner, err := queryID(r, "owner_id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	var apartments []domain.Apartment
	if byOwner {
		apartments, err = s.apartments.ListByOwner(r.Context(), ownerID)
	} else {
		apartments, err = s.apartments.ListAvailable(r.Context())
	}

	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if apartments == nil {
		apartments = []domain.Apartment{}
	}

	s.respond(w, http.StatusOK, map[string][]domain.Apartment{"apartments": apartments})
}

func (s *Server) archiveApartment(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.archiveApartment"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	apartment, err := s.apartments.ArchiveApartment(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.Apartment{"apartment": apartment})
}

func (s *Server) platformStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.platformStats"

	stats, err := s.reports.PlatformStats(r.Context())
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.PlatformStats{"stats": stats})
}

func (s *Server) ownerStats(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.ownerStats"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	stats, err := s.reports.OwnerStats(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusOK, map[string]*domain.OwnerStats{"stats": stats})
}
