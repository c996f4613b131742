package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/jmoiron/sqlx"
)

type AuditRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewAuditRepository(db *sqlx.DB, log *slog.Logger) *AuditRepository {
	return &AuditRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *AuditRepository) CreateTicket(ctx context.Context, ext sqlx.ExtContext, t *domain.Ticket) error {
	const op = "internal.repository.postgres.CreateTicket"

	data := "{}"
	if len(t.Data) > 0 {
		data = string(t.Data)
	}

	query, args, err := r.sq.Insert("tickets").
		Columns("user_id", "booking_id", "type", "data").
		Values(t.UserID, t.BookingID, t.Type, sq.Expr("?::jsonb", data)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := ext.QueryRowxContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *AuditRepository) CreateAlert(ctx context.Context, ext sqlx.ExtContext, a *domain.Alert) error {
	const op = "internal.repository.postgres.CreateAlert"

	query, args, err := r.sq.Insert("alerts").
		Columns("user_id", "booking_id", "type", "message", "accepted", "accepted_at").
		Values(a.UserID, a.BookingID, a.Type, a.Message, a.Accepted, a.AcceptedAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := ext.QueryRowxContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *AuditRepository) ListTicketsByBooking(ctx context.Context, ext sqlx.ExtContext, bookingID int64) ([]domain.Ticket, error) {
	const op = "internal.repository.postgres.ListTicketsByBooking"

	query, args, err := r.sq.Select("id", "user_id", "booking_id", "type", "data", "created_at").
		From("tickets").
		Where(sq.Eq{"booking_id": bookingID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	tickets := []domain.Ticket{}
	if err := sqlx.SelectContext(ctx, ext, &tickets, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return tickets, nil
}
