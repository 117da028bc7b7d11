package ports

import (
	"context"
	"time"

	"github.com/rentdesk/property-system/internal/core/domain"
)

// RentalRepository defines persistence operations for rentals.
type RentalRepository interface {
	Create(ctx context.Context, r *domain.Rental) (*domain.Rental, error)
	FindByID(ctx context.Context, id int) (*domain.Rental, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Rental, error)
	Update(ctx context.Context, r *domain.Rental) (*domain.Rental, error)
	Delete(ctx context.Context, id int) error
}

// CreateRentalInput carries all data needed to create a rental.
type CreateRentalInput struct {
	ApartmentID int
	TenantID    int
	StartDate   time.Time
	EndDate     time.Time
	Status      domain.RentalStatus
	TotalAmount float64
}

// UpdateRentalInput carries a partial rental update. Nil fields are untouched.
type UpdateRentalInput struct {
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *domain.RentalStatus
	TotalAmount *float64
}

// RentalService defines use-case operations for rentals. Create verifies
// both the apartment and the tenant exist.
type RentalService interface {
	Create(ctx context.Context, input CreateRentalInput) (*domain.Rental, error)
	Get(ctx context.Context, id int) (*domain.Rental, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Rental, error)
	Update(ctx context.Context, id int, input UpdateRentalInput) (*domain.Rental, error)
	Delete(ctx context.Context, id int) error
}
