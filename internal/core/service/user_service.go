package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// UserService implements account management.
type UserService struct {
	users ports.UserRepository
	roles ports.RoleRepository
}

func NewUserService(users ports.UserRepository, roles ports.RoleRepository) *UserService {
	return &UserService{users: users, roles: roles}
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if _, err := s.roles.FindByID(ctx, input.RoleID); err != nil {
		return nil, domain.ErrRoleNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        strings.ToLower(input.Email),
		PasswordHash: string(hash),
		RoleID:       input.RoleID,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.withRole(ctx, created), nil
}

// Get returns the user with its role resolved. A dangling role id leaves
// Role nil: the account exists but is denied every role-gated screen.
func (s *UserService) Get(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withRole(ctx, user), nil
}

func (s *UserService) List(ctx context.Context, skip, limit int) (*ports.UserList, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	users, total, err := s.users.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	for i, u := range users {
		users[i] = s.withRole(ctx, u)
	}
	return &ports.UserList{Users: users, Total: total}, nil
}

func (s *UserService) Update(ctx context.Context, id int, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = strings.ToLower(*input.Email)
	}
	if input.RoleID != nil {
		if _, err := s.roles.FindByID(ctx, *input.RoleID); err != nil {
			return nil, domain.ErrRoleNotFound
		}
		user.RoleID = *input.RoleID
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.withRole(ctx, updated), nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.users.Delete(ctx, id)
}

func (s *UserService) withRole(ctx context.Context, user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	if role, err := s.roles.FindByID(ctx, user.RoleID); err == nil {
		user.Role = role
	} else {
		user.Role = nil
	}
	return user
}
