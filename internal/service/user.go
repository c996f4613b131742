package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/repository"
	"github.com/jmoiron/sqlx"
)

type UserService interface {
	CreateUser(ctx context.Context, req UserRequest) (*domain.User, error)
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

type UserRequest struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Role      domain.Role
}

type UserServiceImpl struct {
	BaseService
	repo repository.UserRepository
}

func NewUserService(db DB, log *slog.Logger, repo repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{
		BaseService: NewBaseService(db, log),
		repo:        repo,
	}
}

// CreateUser registers a user with the starting reputation.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req UserRequest) (*domain.User, error) {
	const op = "internal.service.user.CreateUser"

	if !req.Role.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown role '%s'", op, apperrors.ErrValidation, req.Role)
	}

	user := &domain.User{
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Role:            req.Role,
		ReputationScore: domain.DefaultReputation,
	}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		return s.repo.CreateUser(ctx, tx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user created", slog.String("op", op), slog.Int64("user_id", user.ID), slog.String("role", string(user.Role)))

	return user, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.repo.GetUser(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.GetUser failed: %w", err)
	}

	return user, nil
}
