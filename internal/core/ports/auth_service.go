package ports

import (
	"context"

	"github.com/rentdesk/property-system/internal/core/domain"
)

// LoginResult is what a successful login yields: the bearer credential plus
// the identity reference the client persists alongside it.
type LoginResult struct {
	AccessToken string
	TokenType   string
	UserID      int
	Username    string
	RoleID      int
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Signup(ctx context.Context, input CreateUserInput) (*domain.User, error)
}
