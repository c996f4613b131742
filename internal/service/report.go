package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/repository"
)

type ReportService interface {
	PlatformStats(ctx context.Context) (*domain.PlatformStats, error)
	OwnerStats(ctx context.Context, ownerID int64) (*domain.OwnerStats, error)
}

type ReportServiceImpl struct {
	BaseService
	users   repository.UserRepository
	reports repository.ReportRepository
}

func NewReportService(db DB, log *slog.Logger, users repository.UserRepository, reports repository.ReportRepository) *ReportServiceImpl {
	return &ReportServiceImpl{
		BaseService: NewBaseService(db, log),
		users:       users,
		reports:     reports,
	}
}

func (s *ReportServiceImpl) PlatformStats(ctx context.Context) (*domain.PlatformStats, error) {
	const op = "internal.service.report.PlatformStats"

	stats, err := s.reports.GetPlatformStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}

func (s *ReportServiceImpl) OwnerStats(ctx context.Context, ownerID int64) (*domain.OwnerStats, error) {
	const op = "internal.service.report.OwnerStats"

	owner, err := s.users.GetUser(ctx, s.db, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !owner.Role.CanOwn() {
		return nil, fmt.Errorf("%s: %w: user %d is %s", op, apperrors.ErrRoleNotAllowed, owner.ID, owner.Role)
	}

	stats, err := s.reports.GetOwnerStats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}
