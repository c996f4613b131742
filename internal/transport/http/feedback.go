package http

import (
	"net/http"

	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/service"
	"github.com/YusovID/rental-booking-service/internal/validation"
)

func (s *Server) submitRating(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.submitRating"

	var req submitRatingRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	rating, err := s.reputation.SubmitRating(r.Context(), service.RatingRequest{
		RaterID:     req.RaterID,
		RatedUserID: req.RatedUserID,
		Score:       req.Score,
		Type:        domain.RatingType(req.Type),
		BookingID:   req.BookingID,
		Comment:     req.Comment,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Rating{"rating": rating})
}

func (s *Server) listRatings(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listRatings"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	ratingType := r.URL.Query().Get("type")
	if ratingType != "" && !domain.RatingType(ratingType).Valid() {
		s.handleServiceError(w, r, op, &validation.ValidationError{
			Errors: []string{"query parameter 'type' must be CLIENT_RATING or OWNER_RATING"},
		})

		return
	}

	ratings, err := s.reputation.ListRatingsForUser(r.Context(), id, domain.RatingType(ratingType))
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	if ratings == nil {
		ratings = []domain.Rating{}
	}

	s.respond(w, http.StatusOK, map[string][]domain.Rating{"ratings": ratings})
}

func (s *Server) submitReview(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.submitReview"

	var req submitReviewRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	review, err := s.reputation.SubmitReview(r.Context(), service.ReviewRequest{
		ApartmentID: req.ApartmentID,
		ReviewerID:  req.ReviewerID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		BookingID:   req.BookingID,
	})
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respond(w, http.StatusCreated, map[string]*domain.Review{"review": review})
}

func (s *Server) listApartmentReviews(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listApartmentReviews"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	reviews, err := s.reputation.ListReviewsForApartment(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondReviews(w, reviews)
}

func (s *Server) listOwnerReviews(w http.ResponseWriter, r *http.Request) {
	const op = "internal.transport.http.listOwnerReviews"

	id, err := idParam(r, "id")
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	reviews, err := s.reputation.ListReviewsForOwner(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, op, err)
		return
	}

	s.respondReviews(w, reviews)
}

func (s *Server) respondReviews(w http.ResponseWriter, reviews []domain.Review) {
	if reviews == nil {
		reviews = []domain.Review{}
	}

	s.respond(w, http.StatusOK, map[string][]domain.Review{"reviews": reviews})
}
