package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

var (
	ratingColumns = []string{"id", "rater_id", "rated_user_id", "booking_id", "score", "comment", "type", "created_at"}
	reviewColumns = []string{
		"id", "author_id", "target_type", "target_apartment_id", "target_user_id",
		"booking_id", "rating", "comment", "created_at",
	}
)

type RatingRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewRatingRepository(db *sqlx.DB, log *slog.Logger) *RatingRepository {
	return &RatingRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *RatingRepository) CreateRating(ctx context.Context, tx *sqlx.Tx, rating *domain.Rating) error {
	const op = "internal.repository.postgres.CreateRating"

	query, args, err := r.sq.Insert("ratings").
		Columns("rater_id", "rated_user_id", "booking_id", "score", "comment", "type").
		Values(rating.RaterID, rating.RatedUserID, rating.BookingID, rating.Score, rating.Comment, rating.Type).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&rating.ID, &rating.CreatedAt); err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("%s: %w: rating references a missing user or booking", op, apperrors.ErrNotFound)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *RatingRepository) ListRatingsByRatedUser(ctx context.Context, ext sqlx.ExtContext, userID int64, ratingType domain.RatingType) ([]domain.Rating, error) {
	const op = "internal.repository.postgres.ListRatingsByRatedUser"

	where := sq.Eq{"rated_user_id": userID}
	if ratingType != "" {
		where["type"] = ratingType
	}

	query, args, err := r.sq.Select(ratingColumns...).
		From("ratings").
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	ratings := []domain.Rating{}
	if err := sqlx.SelectContext(ctx, ext, &ratings, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return ratings, nil
}

func (r *RatingRepository) ListScoresByRatedUser(ctx context.Context, ext sqlx.ExtContext, userID int64) ([]int, error) {
	const op = "internal.repository.postgres.ListScoresByRatedUser"

	return selectScores(ctx, ext, op, r.sq.Select("score").From("ratings").Where(sq.Eq{"rated_user_id": userID}))
}

type ReviewRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReviewRepository(db *sqlx.DB, log *slog.Logger) *ReviewRepository {
	return &ReviewRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, tx *sqlx.Tx, review *domain.Review) error {
	const op = "internal.repository.postgres.CreateReview"

	query, args, err := r.sq.Insert("reviews").
		Columns("author_id", "target_type", "target_apartment_id", "target_user_id", "booking_id", "rating", "comment").
		Values(review.AuthorID, review.TargetType, review.TargetApartmentID, review.TargetUserID,
			review.BookingID, review.Rating, review.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&review.ID, &review.CreatedAt); err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("%s: %w: review references a missing entity", op, apperrors.ErrNotFound)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *ReviewRepository) ListReviewsByApartment(ctx context.Context, ext sqlx.ExtContext, apartmentID int64) ([]domain.Review, error) {
	const op = "internal.repository.postgres.ListReviewsByApartment"

	return r.list(ctx, ext, op, sq.Eq{"target_apartment_id": apartmentID})
}

func (r *ReviewRepository) ListReviewsByTargetUser(ctx context.Context, ext sqlx.ExtContext, userID int64) ([]domain.Review, error) {
	const op = "internal.repository.postgres.ListReviewsByTargetUser"

	return r.list(ctx, ext, op, sq.Eq{"target_user_id": userID})
}

func (r *ReviewRepository) list(ctx context.Context, ext sqlx.ExtContext, op string, where sq.Eq) ([]domain.Review, error) {
	query, args, err := r.sq.Select(reviewColumns...).
		From("reviews").
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	reviews := []domain.Review{}
	if err := sqlx.SelectContext(ctx, ext, &reviews, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return reviews, nil
}

func (r *ReviewRepository) ListScoresByApartment(ctx context.Context, ext sqlx.ExtContext, apartmentID int64) ([]int, error) {
	const op = "internal.repository.postgres.ListScoresByApartment"

	return selectScores(ctx, ext, op, r.sq.Select("rating").From("reviews").Where(sq.Eq{"target_apartment_id": apartmentID}))
}

func selectScores(ctx context.Context, ext sqlx.ExtContext, op string, b sq.SelectBuilder) ([]int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var scores []int
	if err := sqlx.SelectContext(ctx, ext, &scores, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return scores, nil
}
