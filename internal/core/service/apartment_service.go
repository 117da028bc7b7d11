package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// ApartmentService implements apartment management with ownership checks.
type ApartmentService struct {
	repo   ports.ApartmentRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewApartmentService(repo ports.ApartmentRepository, users ports.UserRepository, logger zerolog.Logger) *ApartmentService {
	return &ApartmentService{repo: repo, users: users, logger: logger}
}

// Create registers a new apartment owned by the calling landlord.
func (s *ApartmentService) Create(ctx context.Context, actor ports.Actor, input ports.CreateApartmentInput) (*domain.Apartment, error) {
	if actor.RoleName != domain.RoleLandlord {
		return nil, domain.ErrForbidden
	}

	status := input.Status
	if status == "" {
		status = domain.ApartmentAvailable
	}

	apartment := &domain.Apartment{
		Name:        input.Name,
		Address:     input.Address,
		RentPrice:   input.RentPrice,
		Description: input.Description,
		Status:      status,
		LandlordID:  actor.UserID,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, apartment)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("apartment_id", created.ID).Int("landlord_id", actor.UserID).Msg("apartment created")
	return s.withLandlord(ctx, created), nil
}

func (s *ApartmentService) Get(ctx context.Context, id int) (*domain.Apartment, error) {
	apartment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withLandlord(ctx, apartment), nil
}

func (s *ApartmentService) List(ctx context.Context, skip, limit int) ([]*domain.Apartment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	apartments, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	for i, a := range apartments {
		apartments[i] = s.withLandlord(ctx, a)
	}
	return apartments, nil
}

// Update replaces the mutable fields. Only the owning landlord or an Admin
// may update; ownership never changes on update.
func (s *ApartmentService) Update(ctx context.Context, actor ports.Actor, id int, input ports.CreateApartmentInput) (*domain.Apartment, error) {
	apartment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.RoleName != domain.RoleAdmin && apartment.LandlordID != actor.UserID {
		return nil, domain.ErrForbidden
	}

	apartment.Name = input.Name
	apartment.Address = input.Address
	apartment.RentPrice = input.RentPrice
	apartment.Description = input.Description
	if input.Status != "" {
		apartment.Status = input.Status
	}

	updated, err := s.repo.Update(ctx, apartment)
	if err != nil {
		return nil, err
	}
	return s.withLandlord(ctx, updated), nil
}

func (s *ApartmentService) Delete(ctx context.Context, actor ports.Actor, id int) error {
	apartment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.RoleName != domain.RoleAdmin && apartment.LandlordID != actor.UserID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *ApartmentService) withLandlord(ctx context.Context, a *domain.Apartment) *domain.Apartment {
	if a == nil {
		return nil
	}
	if owner, err := s.users.FindByID(ctx, a.LandlordID); err == nil {
		a.Landlord = &domain.LandlordRef{ID: owner.ID, Username: owner.Username}
	}
	return a
}
