package ports

import (
	"context"

	"github.com/rentdesk/property-system/internal/core/domain"
)

// TenantRepository defines persistence operations for tenant profiles.
type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	FindByID(ctx context.Context, id int) (*domain.Tenant, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error)
	Delete(ctx context.Context, id int) error
}

// CreateTenantInput carries all data needed to create a tenant profile.
type CreateTenantInput struct {
	UserID  int
	Phone   string
	Address string
}

// UpdateTenantInput carries a partial tenant update. Nil fields are untouched.
type UpdateTenantInput struct {
	UserID  *int
	Phone   *string
	Address *string
}

// TenantService defines use-case operations for tenant profiles.
type TenantService interface {
	Create(ctx context.Context, input CreateTenantInput) (*domain.Tenant, error)
	Get(ctx context.Context, id int) (*domain.Tenant, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Tenant, error)
	Update(ctx context.Context, id int, input UpdateTenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, id int) error
}
