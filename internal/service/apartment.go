package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/YusovID/rental-booking-service/internal/apperrors"
	"github.com/YusovID/rental-booking-service/internal/domain"
	"github.com/YusovID/rental-booking-service/internal/repository"
	"github.com/YusovID/rental-booking-service/pkg/logger/sl"
	"github.com/jmoiron/sqlx"
)

type ApartmentService interface {
	CreateApartment(ctx context.Context, req ApartmentRequest) (*domain.Apartment, error)
	GetApartment(ctx context.Context, apartmentID int64) (*domain.Apartment, error)
	ListAvailable(ctx context.Context) ([]domain.Apartment, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Apartment, error)
	ArchiveApartment(ctx context.Context, apartmentID int64) (*domain.Apartment, error)
}

type ApartmentRequest struct {
	OwnerID       int64
	Title         string
	Description   string
	Address       string
	City          string
	Rooms         int
	MaxGuests     int
	PricePerNight domain.Money
}

type ApartmentServiceImpl struct {
	BaseService
	users      repository.UserRepository
	apartments repository.ApartmentRepository
	cache      AvailabilityCache
	now        func() time.Time
}

func NewApartmentService(
	db DB,
	log *slog.Logger,
	users repository.UserRepository,
	apartments repository.ApartmentRepository,
	cache AvailabilityCache,
) *ApartmentServiceImpl {
	if cache == nil {
		cache = noopCache{}
	}

	return &ApartmentServiceImpl{
		BaseService: NewBaseService(db, log),
		users:       users,
		apartments:  apartments,
		cache:       cache,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *ApartmentServiceImpl) CreateApartment(ctx context.Context, req ApartmentRequest) (*domain.Apartment, error) {
	const op = "internal.service.apartment.CreateApartment"
	log := s.log.With(slog.String("op", op), slog.Int64("owner_id", req.OwnerID))

	if req.PricePerNight < 0 || req.PricePerNight > domain.MaxPricePerNight {
		return nil, fmt.Errorf("%s: %w: price per night %s is out of range", op, apperrors.ErrValidation, req.PricePerNight)
	}

	now := s.now()
	apartment := &domain.Apartment{
		OwnerID:          req.OwnerID,
		Title:            req.Title,
		Description:      req.Description,
		Address:          req.Address,
		City:             req.City,
		Rooms:            req.Rooms,
		MaxGuests:        req.MaxGuests,
		PricePerNight:    req.PricePerNight,
		Status:           domain.ApartmentAvailable,
		LastStatusUpdate: &now,
	}

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		owner, err := s.users.GetUser(ctx, tx, req.OwnerID)
		if err != nil {
			return fmt.Errorf("%s: failed to get owner: %w", op, err)
		}

		if !owner.Role.CanOwn() {
			return fmt.Errorf("%s: %w: user %d is %s", op, apperrors.ErrRoleNotAllowed, owner.ID, owner.Role)
		}

		if err := s.apartments.CreateApartment(ctx, tx, apartment); err != nil {
			return fmt.Errorf("%s: failed to create apartment: %w", op, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Info("apartment created", slog.Int64("apartment_id", apartment.ID))

	s.invalidate(ctx, log)

	return apartment, nil
}

func (s *ApartmentServiceImpl) GetApartment(ctx context.Context, apartmentID int64) (*domain.Apartment, error) {
	const op = "internal.service.apartment.GetApartment"

	apartment, err := s.apartments.GetApartment(ctx, s.db, apartmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return apartment, nil
}

// ListAvailable reads through the cache. Cache failures degrade to a
// database read that is not written back.
func (s *ApartmentServiceImpl) ListAvailable(ctx context.Context) ([]domain.Apartment, error) {
	const op = "internal.service.apartment.ListAvailable"
	log := s.log.With(slog.String("op", op))

	cached, gen, ok, err := s.cache.GetAvailable(ctx)
	if err != nil {
		log.Warn("failed to read available apartments cache", sl.Err(err))
	}

	if ok {
		return cached, nil
	}

	fill := err == nil

	apartments, err := s.apartments.ListApartmentsByStatus(ctx, s.db, domain.ApartmentAvailable)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if fill {
		if err := s.cache.SetAvailable(ctx, gen, apartments); err != nil {
			log.Warn("failed to fill available apartments cache", sl.Err(err))
		}
	}

	return apartments, nil
}

func (s *ApartmentServiceImpl) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Apartment, error) {
	const op = "internal.service.apartment.ListByOwner"

	apartments, err := s.apartments.ListApartmentsByOwner(ctx, s.db, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return apartments, nil
}

// ArchiveApartment takes an apartment off the market. An apartment that is
// currently booked or occupied cannot be archived.
func (s *ApartmentServiceImpl) ArchiveApartment(ctx context.Context, apartmentID int64) (*domain.Apartment, error) {
	const op = "internal.service.apartment.ArchiveApartment"
	log := s.log.With(slog.String("op", op), slog.Int64("apartment_id", apartmentID))

	var apartment *domain.Apartment

	now := s.now()

	err := s.transaction(ctx, op, func(tx *sqlx.Tx) error {
		var err error

		apartment, err = s.apartments.GetApartmentWithLock(ctx, tx, apartmentID)
		if err != nil {
			return fmt.Errorf("%s: failed to get apartment with lock: %w", op, err)
		}

		switch apartment.Status {
		case domain.ApartmentArchived:
			return nil
		case domain.ApartmentBooked, domain.ApartmentOccupied:
			return fmt.Errorf("%s: %w: apartment %d is %s", op, apperrors.ErrInvalidState, apartment.ID, apartment.Status)
		}

		if err := s.apartments.UpdateApartmentStatus(ctx, tx, apartment.ID, domain.ApartmentArchived, now); err != nil {
			return fmt.Errorf("%s: failed to archive apartment: %w", op, err)
		}

		apartment.Status = domain.ApartmentArchived
		apartment.LastStatusUpdate = &now

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Info("apartment archived")

	s.invalidate(ctx, log)

	return apartment, nil
}

func (s *ApartmentServiceImpl) invalidate(ctx context.Context, log *slog.Logger) {
	if err := s.cache.InvalidateAvailable(ctx); err != nil {
		log.Warn("failed to invalidate available apartments cache", sl.Err(err))
	}
}
