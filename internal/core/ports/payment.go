package ports

import (
	"context"
	"time"

	"github.com/rentdesk/property-system/internal/core/domain"
)

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id int) (*domain.Payment, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	Delete(ctx context.Context, id int) error
}

// PaymentInput carries all data needed to create or replace a payment.
type PaymentInput struct {
	RentalID    int
	PaymentDate time.Time
	Amount      float64
	Method      domain.PaymentMethod
	Status      domain.PaymentStatus
}

// PaymentService defines use-case operations for payments. Create and
// Update verify the referenced rental exists.
type PaymentService interface {
	Create(ctx context.Context, input PaymentInput) (*domain.Payment, error)
	Get(ctx context.Context, id int) (*domain.Payment, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Payment, error)
	Update(ctx context.Context, id int, input PaymentInput) (*domain.Payment, error)
	Delete(ctx context.Context, id int) error
}
