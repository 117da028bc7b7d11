package service

import (
	"context"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// RoleService implements role management.
type RoleService struct {
	roles ports.RoleRepository
	users ports.UserRepository
}

func NewRoleService(roles ports.RoleRepository, users ports.UserRepository) *RoleService {
	return &RoleService{roles: roles, users: users}
}

func (s *RoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	if existing, err := s.roles.FindByName(ctx, name); err == nil && existing != nil {
		return nil, domain.ErrRoleExists
	}
	return s.roles.Create(ctx, &domain.Role{Name: name})
}

func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.List(ctx)
}

func (s *RoleService) Update(ctx context.Context, id int, name string) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing, err := s.roles.FindByName(ctx, name); err == nil && existing.ID != id {
		return nil, domain.ErrRoleExists
	}
	role.Name = name
	return s.roles.Update(ctx, role)
}

// Delete refuses while any user still references the role.
func (s *RoleService) Delete(ctx context.Context, id int) error {
	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.users.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrRoleInUse
	}
	return s.roles.Delete(ctx, id)
}
