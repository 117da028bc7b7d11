package ports

import (
	"context"

	"github.com/rentdesk/property-system/internal/core/domain"
)

// ApartmentRepository defines persistence operations for apartments.
type ApartmentRepository interface {
	Create(ctx context.Context, a *domain.Apartment) (*domain.Apartment, error)
	FindByID(ctx context.Context, id int) (*domain.Apartment, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Apartment, error)
	Update(ctx context.Context, a *domain.Apartment) (*domain.Apartment, error)
	Delete(ctx context.Context, id int) error
}

// CreateApartmentInput carries all data needed to create an apartment.
// LandlordID is taken from the authenticated caller, never from the payload.
type CreateApartmentInput struct {
	Name        string
	Address     string
	RentPrice   float64
	Description string
	Status      domain.ApartmentStatus
	LandlordID  int
}

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	UserID   int
	RoleName string
}

// ApartmentService defines use-case operations for apartments.
// Create requires the Landlord role; Update and Delete require the owning
// landlord or an Admin.
type ApartmentService interface {
	Create(ctx context.Context, actor Actor, input CreateApartmentInput) (*domain.Apartment, error)
	Get(ctx context.Context, id int) (*domain.Apartment, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Apartment, error)
	Update(ctx context.Context, actor Actor, id int, input CreateApartmentInput) (*domain.Apartment, error)
	Delete(ctx context.Context, actor Actor, id int) error
}
