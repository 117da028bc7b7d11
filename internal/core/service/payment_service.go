package service

import (
	"context"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// PaymentService implements payment management.
type PaymentService struct {
	repo    ports.PaymentRepository
	rentals ports.RentalRepository
}

func NewPaymentService(repo ports.PaymentRepository, rentals ports.RentalRepository) *PaymentService {
	return &PaymentService{repo: repo, rentals: rentals}
}

func (s *PaymentService) Create(ctx context.Context, input ports.PaymentInput) (*domain.Payment, error) {
	if _, err := s.rentals.FindByID(ctx, input.RentalID); err != nil {
		return nil, domain.ErrRentalNotFound
	}

	payment := &domain.Payment{
		RentalID:    input.RentalID,
		PaymentDate: input.PaymentDate,
		Amount:      input.Amount,
		Method:      input.Method,
		Status:      input.Status,
	}
	return s.repo.Create(ctx, payment)
}

func (s *PaymentService) Get(ctx context.Context, id int) (*domain.Payment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PaymentService) List(ctx context.Context, skip, limit int) ([]*domain.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, skip, limit)
}

func (s *PaymentService) Update(ctx context.Context, id int, input ports.PaymentInput) (*domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.rentals.FindByID(ctx, input.RentalID); err != nil {
		return nil, domain.ErrRentalNotFound
	}

	payment.RentalID = input.RentalID
	payment.PaymentDate = input.PaymentDate
	payment.Amount = input.Amount
	payment.Method = input.Method
	payment.Status = input.Status

	return s.repo.Update(ctx, payment)
}

func (s *PaymentService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
