package ports

import (
	"context"

	"github.com/rentdesk/property-system/internal/core/domain"
)

// CreateUserInput carries all data needed to create a user account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	RoleID   int
}

// UpdateUserInput carries a partial user update. Nil fields are untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	RoleID   *int
}

// UserList is a page of users plus the total count.
type UserList struct {
	Users []*domain.User
	Total int64
}

// UserService defines use-case operations for user accounts. Get resolves
// the embedded role; a missing role record yields Role == nil, which is a
// valid (access-denied-everywhere) state, not an error.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	List(ctx context.Context, skip, limit int) (*UserList, error)
	Update(ctx context.Context, id int, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int) error
}

// RoleService defines use-case operations for roles.
type RoleService interface {
	Create(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	Update(ctx context.Context, id int, name string) (*domain.Role, error)
	// Delete refuses with domain.ErrRoleInUse while users reference the role.
	Delete(ctx context.Context, id int) error
}
