package service

import (
	"context"
	"time"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// TenantService implements tenant profile management.
type TenantService struct {
	repo  ports.TenantRepository
	users ports.UserRepository
}

func NewTenantService(repo ports.TenantRepository, users ports.UserRepository) *TenantService {
	return &TenantService{repo: repo, users: users}
}

func (s *TenantService) Create(ctx context.Context, input ports.CreateTenantInput) (*domain.Tenant, error) {
	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return nil, domain.ErrUserNotFound
	}

	tenant := &domain.Tenant{
		UserID:    input.UserID,
		Phone:     input.Phone,
		Address:   input.Address,
		CreatedAt: time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return s.withUser(ctx, created), nil
}

func (s *TenantService) Get(ctx context.Context, id int) (*domain.Tenant, error) {
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withUser(ctx, tenant), nil
}

func (s *TenantService) List(ctx context.Context, skip, limit int) ([]*domain.Tenant, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	tenants, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	for i, t := range tenants {
		tenants[i] = s.withUser(ctx, t)
	}
	return tenants, nil
}

func (s *TenantService) Update(ctx context.Context, id int, input ports.UpdateTenantInput) (*domain.Tenant, error) {
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.UserID != nil {
		if _, err := s.users.FindByID(ctx, *input.UserID); err != nil {
			return nil, domain.ErrUserNotFound
		}
		tenant.UserID = *input.UserID
	}
	if input.Phone != nil {
		tenant.Phone = *input.Phone
	}
	if input.Address != nil {
		tenant.Address = *input.Address
	}

	updated, err := s.repo.Update(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return s.withUser(ctx, updated), nil
}

func (s *TenantService) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TenantService) withUser(ctx context.Context, t *domain.Tenant) *domain.Tenant {
	if t == nil {
		return nil
	}
	if user, err := s.users.FindByID(ctx, t.UserID); err == nil {
		t.User = &domain.TenantUserRef{ID: user.ID, Username: user.Username, Email: user.Email}
	}
	return t
}
