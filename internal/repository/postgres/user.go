package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

var userColumns = []string{
	"id", "email", "first_name", "last_name", "phone", "role",
	"reputation_score", "total_ratings", "created_at",
}

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, tx *sqlx.Tx, u *domain.User) error {
	const op = "internal.repository.postgres.CreateUser"

	query, args, err := r.sq.Insert("users").
		Columns("email", "first_name", "last_name", "phone", "role", "reputation_score", "total_ratings").
		Values(u.Email, u.FirstName, u.LastName, u.Phone, u.Role, u.ReputationScore, u.TotalRatings).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt); err != nil {
		if pqCode(err) == codeUniqueViolation {
			return &apperrors.EmailTakenError{Email: u.Email}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *UserRepository) GetUser(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUser"

	return r.getUser(ctx, ext, op, r.sq.Select(userColumns...).From("users").Where(sq.Eq{"id": id}), id)
}

func (r *UserRepository) GetUserWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserWithLock"

	return r.getUser(ctx, tx, op, r.sq.Select(userColumns...).From("users").Where(sq.Eq{"id": id}).Suffix("FOR UPDATE"), id)
}

func (r *UserRepository) getUser(ctx context.Context, ext sqlx.ExtContext, op string, b sq.SelectBuilder, id int64) (*domain.User, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := sqlx.GetContext(ctx, ext, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id '%d'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepository) UpdateReputation(ctx context.Context, tx *sqlx.Tx, id int64, agg domain.Aggregate) error {
	const op = "internal.repository.postgres.UpdateReputation"

	query, args, err := r.sq.Update("users").
		Set("reputation_score", agg.Score).
		Set("total_ratings", agg.Count).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	return execAffectingOne(ctx, tx, op, query, args, "user", id)
}

// execAffectingOne runs an UPDATE and maps zero affected rows to ErrNotFound.
func execAffectingOne(ctx context.Context, ext sqlx.ExtContext, op, query string, args []interface{}, entity string, id int64) error {
	res, err := ext.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	if n == 0 {
		return fmt.Errorf("%s: %w: %s with id '%d'", op, apperrors.ErrNotFound, entity, id)
	}

	return nil
}
