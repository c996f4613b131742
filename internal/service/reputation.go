package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/repository"
	"github.com/YusovID/rental-booking-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

type ReputationService interface {
	SubmitRating(ctx context.Context, req RatingRequest) (*domain.Rating, error)
	SubmitReview(ctx context.Context, req ReviewRequest) (*domain.Review, error)
	ListRatingsForUser(ctx context.Context, userID int64, ratingType domain.RatingType) ([]domain.Rating, error)
	ListReviewsForApartment(ctx context.Context, apartmentID int64) ([]domain.Review, error)
	ListReviewsForOwner(ctx context.Context, ownerID int64) ([]domain.Review, error)
}

type RatingRequest struct {
	RaterID     int64
	RatedUserID int64
	Score       int
	Type        domain.RatingType
	BookingID   *int64
	Comment     string
}

type ReviewRequest struct {
	ApartmentID int64
	ReviewerID  int64
	Rating      int
	Comment     string
	BookingID   *int64
}

// ReputationServiceImpl recomputes aggregates from a full scan inside the
// write transaction, with the target row locked.
type ReputationServiceImpl struct {
	BaseService
	users      repository.UserRepository
	apartments repository.ApartmentRepository
	bookings   repository.BookingRepository
	ratings    repository.RatingRepository
	reviews    repository.ReviewRepository
	cache      AvailabilityCache
}

func NewReputationService(
	db DB,
	log *slog.Logger,
	users repository.UserRepository,
	apartments repository.ApartmentRepository,
	bookings repository.BookingRepository,
	ratings repository.RatingRepository,
	reviews repository.ReviewRepository,
	cache AvailabilityCache,
) *ReputationServiceImpl {
	if cache == nil {
		cache = noopCache{}
	}

	return &ReputationServiceImpl{
		BaseService: NewBaseService(db, log),
		users:       users,
		apartments:  apartments,
		bookings:    bookings,
		ratings:     ratings,
		reviews:     reviews,
		cache:       cache,
	}
}

func (s *ReputationServiceImpl) SubmitRating(ctx context.Context, req RatingRequest) (*domain.Rating, error) {
	const op = "internal.service.reputation.SubmitRating"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("rater_id", req.RaterID),
		slog.Int64("rated_user_id", req.RatedUserID),
		slog.String("type", string(req.Type)),
	)

	if !domain.ValidScore(req.Score) {
		return nil, fmt.Errorf("%s: %w: got %d", op, apperrors.ErrInvalidScore, req.Score)
	}

	if !req.Type.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown rating type '%s'", op, apperrors.ErrValidation, req.Type)
	}

	rating := &domain.Rating{
		RaterID:     req.RaterID,
		RatedUserID: req.RatedUserID,
		BookingID:   req.BookingID,
		Score:       req.Score,
		Comment:     req.Comment,
		Type:        req.Type,
	}

	var agg domain.Aggregate

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		rater, err := s.users.GetUser(ctx, tx, req.RaterID)
		if err != nil {
			return fmt.Errorf("%s: failed to get rater: %w", op, err)
		}

		rated, err := s.users.GetUserWithLock(ctx, tx, req.RatedUserID)
		if err != nil {
			return fmt.Errorf("%s: failed to get rated user: %w", op, err)
		}

		if !rater.Role.CanRate(req.Type) || !rated.Role.CanBeRated(req.Type) {
			return fmt.Errorf("%s: %w: %s cannot leave %s for %s", op, apperrors.ErrInvalidRelationship, rater.Role, req.Type, rated.Role)
		}

		if req.BookingID != nil {
			if err := s.checkBookingDirection(ctx, tx, *req.BookingID, req.Type, rater.ID, rated.ID); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		if err := s.ratings.CreateRating(ctx, tx, rating); err != nil {
			return fmt.Errorf("%s: failed to create rating: %w", op, err)
		}

		agg, err = s.recomputeUser(ctx, tx, rated.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Info("rating submitted", slog.Float64("reputation", agg.Score), slog.Int("total_ratings", agg.Count))

	return rating, nil
}

// checkBookingDirection requires that the booking links rater and rated in the
// direction the rating type implies: owners rate the booking's client,
// clients rate the apartment's owner.
func (s *ReputationServiceImpl) checkBookingDirection(ctx context.Context, tx *sqlx.Tx, bookingID int64, t domain.RatingType, raterID, ratedID int64) error {
	booking, err := s.bookings.GetBooking(ctx, tx, bookingID)
	if err != nil {
		return fmt.Errorf("failed to get booking: %w", err)
	}

	apartment, err := s.apartments.GetApartment(ctx, tx, booking.ApartmentID)
	if err != nil {
		return fmt.Errorf("failed to get apartment: %w", err)
	}

	var ok bool

	switch t {
	case domain.RatingClient:
		ok = raterID == apartment.OwnerID && ratedID == booking.ClientID
	case domain.RatingOwner:
		ok = raterID == booking.ClientID && ratedID == apartment.OwnerID
	}

	if !ok {
		return fmt.Errorf("%w: booking %d", apperrors.ErrInvalidRelationship, bookingID)
	}

	return nil
}

func (s *ReputationServiceImpl) SubmitReview(ctx context.Context, req ReviewRequest) (*domain.Review, error) {
	const op = "internal.service.reputation.SubmitReview"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("apartment_id", req.ApartmentID),
		slog.Int64("reviewer_id", req.ReviewerID),
	)

	if !domain.ValidScore(req.Rating) {
		return nil, fmt.Errorf("%s: %w: got %d", op, apperrors.ErrInvalidScore, req.Rating)
	}

	var (
		review       *domain.Review
		apartmentAgg domain.Aggregate
	)

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		reviewer, err := s.users.GetUser(ctx, tx, req.ReviewerID)
		if err != nil {
			return fmt.Errorf("%s: failed to get reviewer: %w", op, err)
		}

		apartment, err := s.apartments.GetApartmentWithLock(ctx, tx, req.ApartmentID)
		if err != nil {
			return fmt.Errorf("%s: failed to get apartment with lock: %w", op, err)
		}

		if req.BookingID != nil {
			booking, err := s.bookings.GetBooking(ctx, tx, *req.BookingID)
			if err != nil {
				return fmt.Errorf("%s: failed to get booking: %w", op, err)
			}

			if booking.ClientID != reviewer.ID || booking.ApartmentID != apartment.ID {
				return fmt.Errorf("%s: %w: booking %d", op, apperrors.ErrInvalidBooking, booking.ID)
			}
		}

		ownerID := apartment.OwnerID
		review = &domain.Review{
			AuthorID:          reviewer.ID,
			TargetType:        domain.ReviewProperty,
			TargetApartmentID: &apartment.ID,
			TargetUserID:      &ownerID,
			BookingID:         req.BookingID,
			Rating:            req.Rating,
			Comment:           req.Comment,
		}

		if err := s.reviews.CreateReview(ctx, tx, review); err != nil {
			return fmt.Errorf("%s: failed to create review: %w", op, err)
		}

		apartmentAgg, err = s.recomputeApartment(ctx, tx, apartment.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Info("review submitted", slog.Float64("apartment_rating", apartmentAgg.Score))

	if err := s.cache.InvalidateAvailable(ctx); err != nil {
		log.Warn("failed to invalidate available apartments cache", sl.Err(err))
	}

	return review, nil
}

// recomputeUser averages the ratings the user received. Reviews feed the
// apartment aggregate only.
func (s *ReputationServiceImpl) recomputeUser(ctx context.Context, tx *sqlx.Tx, userID int64) (domain.Aggregate, error) {
	scores, err := s.ratings.ListScoresByRatedUser(ctx, tx, userID)
	if err != nil {
		return domain.Aggregate{}, fmt.Errorf("failed to list rating scores: %w", err)
	}

	agg := domain.AggregateScores(scores, domain.DefaultReputation)

	if err := s.users.UpdateReputation(ctx, tx, userID, agg); err != nil {
		return domain.Aggregate{}, fmt.Errorf("failed to update reputation: %w", err)
	}

	return agg, nil
}

func (s *ReputationServiceImpl) recomputeApartment(ctx context.Context, tx *sqlx.Tx, apartmentID int64) (domain.Aggregate, error) {
	scores, err := s.reviews.ListScoresByApartment(ctx, tx, apartmentID)
	if err != nil {
		return domain.Aggregate{}, fmt.Errorf("failed to list apartment scores: %w", err)
	}

	agg := domain.AggregateScores(scores, domain.UnratedApartmentScore)

	if err := s.apartments.UpdateApartmentRating(ctx, tx, apartmentID, agg); err != nil {
		return domain.Aggregate{}, fmt.Errorf("failed to update apartment rating: %w", err)
	}

	return agg, nil
}

func (s *ReputationServiceImpl) ListRatingsForUser(ctx context.Context, userID int64, ratingType domain.RatingType) ([]domain.Rating, error) {
	const op = "internal.service.reputation.ListRatingsForUser"

	if _, err := s.users.GetUser(ctx, s.db, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ratings, err := s.ratings.ListRatingsByRatedUser(ctx, s.db, userID, ratingType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ratings, nil
}

func (s *ReputationServiceImpl) ListReviewsForApartment(ctx context.Context, apartmentID int64) ([]domain.Review, error) {
	const op = "internal.service.reputation.ListReviewsForApartment"

	if _, err := s.apartments.GetApartment(ctx, s.db, apartmentID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reviews, err := s.reviews.ListReviewsByApartment(ctx, s.db, apartmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reviews, nil
}

func (s *ReputationServiceImpl) ListReviewsForOwner(ctx context.Context, ownerID int64) ([]domain.Review, error) {
	const op = "internal.service.reputation.ListReviewsForOwner"

	if _, err := s.users.GetUser(ctx, s.db, ownerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reviews, err := s.reviews.ListReviewsByTargetUser(ctx, s.db, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return reviews, nil
}
