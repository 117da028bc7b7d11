package service

import (
	"context"
	"time"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// RentalService implements rental agreement management.
type RentalService struct {
	repo       ports.RentalRepository
	apartments ports.ApartmentRepository
	tenants    ports.TenantRepository
}

func NewRentalService(repo ports.RentalRepository, apartments ports.ApartmentRepository, tenants ports.TenantRepository) *RentalService {
	return &RentalService{repo: repo, apartments: apartments, tenants: tenants}
}

func (s *RentalService) Create(ctx context.Context, input ports.CreateRentalInput) (*domain.Rental, error) {
	if _, err := s.apartments.FindByID(ctx, input.ApartmentID); err != nil {
		return nil, domain.ErrApartmentNotFound
	}
	if _, err := s.tenants.FindByID(ctx, input.TenantID); err != nil {
		return nil, domain.ErrTenantNotFound
	}

	status := input.Status
	if status == "" {
		status = domain.RentalActive
	}

	rental := &domain.Rental{
		ApartmentID: input.ApartmentID,
		TenantID:    input.TenantID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
		TotalAmount: input.TotalAmount,
		CreatedAt:   time.Now().UTC(),
	}
	return s.repo.Create(ctx, rental)
}

func (s *RentalService) Get(ctx context.Context, id int) (*domain.Rental, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RentalService) List(ctx context.Context, skip, limit int) ([]*domain.Rental, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *RentalService) Update(ctx context.Context, id int, input ports.UpdateRentalInput) (*domain.Rental, error) {
	rental, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.StartDate != nil {
		rental.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		rental.EndDate = *input.EndDate
	}
	if input.Status != nil {
		rental.Status = *input.Status
	}
	if input.TotalAmount != nil {
		rental.TotalAmount = *input.TotalAmount
	}

	return s.repo.Update(ctx, rental)
}

func (s *RentalService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
