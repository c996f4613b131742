package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

var apartmentColumns = []string{
	"id", "owner_id", "title", "description", "address", "city", "rooms", "max_guests",
	"price_per_night", "status", "last_status_update", "average_rating", "reviews_count", "created_at",
}

type ApartmentRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewApartmentRepository(db *sqlx.DB, log *slog.Logger) *ApartmentRepository {
	return &ApartmentRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ApartmentRepository) CreateApartment(ctx context.Context, tx *sqlx.Tx, a *domain.Apartment) error {
	const op = "internal.repository.postgres.CreateApartment"

	query, args, err := r.sq.Insert("apartments").
		Columns("owner_id", "title", "description", "address", "city", "rooms", "max_guests",
			"price_per_night", "status", "last_status_update").
		Values(a.OwnerID, a.Title, a.Description, a.Address, a.City, a.Rooms, a.MaxGuests,
			a.PricePerNight, a.Status, a.LastStatusUpdate).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		if pqCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("%s: %w: owner with id '%d'", op, apperrors.ErrNotFound, a.OwnerID)
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *ApartmentRepository) GetApartment(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.Apartment, error) {
	const op = "internal.repository.postgres.GetApartment"

	return r.getApartment(ctx, ext, op, r.byID(id), id)
}

func (r *ApartmentRepository) GetApartmentWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Apartment, error) {
	const op = "internal.repository.postgres.GetApartmentWithLock"

	return r.getApartment(ctx, tx, op, r.byID(id).Suffix("FOR UPDATE"), id)
}

func (r *ApartmentRepository) byID(id int64) sq.SelectBuilder {
	return r.sq.Select(apartmentColumns...).From("apartments").Where(sq.Eq{"id": id})
}

func (r *ApartmentRepository) getApartment(ctx context.Context, ext sqlx.ExtContext, op string, b sq.SelectBuilder, id int64) (*domain.Apartment, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var apartment domain.Apartment
	if err := sqlx.GetContext(ctx, ext, &apartment, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: apartment with id '%d'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &apartment, nil
}

func (r *ApartmentRepository) UpdateApartmentStatus(ctx context.Context, tx *sqlx.Tx, id int64, status domain.ApartmentStatus, at time.Time) error {
	const op = "internal.repository.postgres.UpdateApartmentStatus"

	query, args, err := r.sq.Update("apartments").
		Set("status", status).
		Set("last_status_update", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return execAffectingOne(ctx, tx, op, query, args, "apartment", id)
}

func (r *ApartmentRepository) UpdateApartmentRating(ctx context.Context, tx *sqlx.Tx, id int64, agg domain.Aggregate) error {
	const op = "internal.repository.postgres.UpdateApartmentRating"

	query, args, err := r.sq.Update("apartments").
		Set("average_rating", agg.Score).
		Set("reviews_count", agg.Count).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return execAffectingOne(ctx, tx, op, query, args, "apartment", id)
}

func (r *ApartmentRepository) ListApartmentsByStatus(ctx context.Context, ext sqlx.ExtContext, status domain.ApartmentStatus) ([]domain.Apartment, error) {
	const op = "internal.repository.postgres.ListApartmentsByStatus"

	return r.list(ctx, ext, op, sq.Eq{"status": status})
}

func (r *ApartmentRepository) ListApartmentsByOwner(ctx context.Context, ext sqlx.ExtContext, ownerID int64) ([]domain.Apartment, error) {
	const op = "internal.repository.postgres.ListApartmentsByOwner"

	return r.list(ctx, ext, op, sq.Eq{"owner_id": ownerID})
}

func (r *ApartmentRepository) list(ctx context.Context, ext sqlx.ExtContext, op string, where sq.Eq) ([]domain.Apartment, error) {
	query, args, err := r.sq.Select(apartmentColumns...).
		From("apartments").
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	apartments := []domain.Apartment{}
	if err := sqlx.SelectContext(ctx, ext, &apartments, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return apartments, nil
}
