package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ReportRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewReportRepository(db *sqlx.DB, log *slog.Logger) *ReportRepository {
	return &ReportRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ReportRepository) GetPlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	const op = "internal.repository.postgres.GetPlatformStats"

	query, args, err := r.sq.Select(
		"(SELECT COUNT(*) FROM users) AS total_users",
		"(SELECT COUNT(*) FROM users WHERE role = 'CLIENT') AS total_clients",
		"(SELECT COUNT(*) FROM users WHERE role = 'OWNER') AS total_owners",
		"(SELECT COUNT(*) FROM apartments) AS total_apartments",
		"(SELECT COUNT(*) FROM bookings) AS total_bookings",
		"(SELECT COUNT(*) FROM payments) AS total_payments",
		"(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'PAID') AS total_revenue",
		"(SELECT COALESCE(SUM(platform_fee), 0) FROM payments WHERE status = 'PAID') AS platform_revenue",
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var stats domain.PlatformStats
	if err := r.db.GetContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &stats, nil
}

func (r *ReportRepository) GetOwnerStats(ctx context.Context, ownerID int64) (*domain.OwnerStats, error) {
	const op = "internal.repository.postgres.GetOwnerStats"

	query, args, err := r.sq.Select(
		"a.owner_id",
		"COUNT(DISTINCT a.id) AS total_apartments",
		"COUNT(DISTINCT b.id) AS total_bookings",
		"COALESCE(SUM(p.owner_amount) FILTER (WHERE p.status = 'PAID'), 0) AS owner_revenue",
		"COALESCE(SUM(p.amount) FILTER (WHERE p.status = 'PAID'), 0) AS total_amount",
	).
		From("apartments a").
		LeftJoin("bookings b ON b.apartment_id = a.id").
		LeftJoin("payments p ON p.booking_id = b.id").
		Where(sq.Eq{"a.owner_id": ownerID}).
		GroupBy("a.owner_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	stats := []domain.OwnerStats{}
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	if len(stats) == 0 {
		return &domain.OwnerStats{OwnerID: ownerID}, nil
	}

	return &stats[0], nil
}
