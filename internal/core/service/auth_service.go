package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// LoginLimiter throttles authentication attempts per account (Redis).
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
}

// AuthService implements login and signup.
type AuthService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	limiter   LoginLimiter
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, limiter LoginLimiter, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &AuthService{users: users, roles: roles, limiter: limiter, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login verifies the credentials and mints a bearer token. The username
// field accepts either the username or the registered email. Invalid
// account and invalid password collapse into ErrInvalidCredentials so the
// response does not reveal which part was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login limiter unavailable, allowing attempt")
		} else if !ok {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	roleName := ""
	if role, err := s.roles.FindByID(ctx, user.RoleID); err == nil {
		roleName = role.Name
	}

	token, err := s.generateToken(user, roleName)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		Username:    user.Username,
		RoleID:      user.RoleID,
	}, nil
}

// Signup creates a new account after validating the requested role exists.
func (s *AuthService) Signup(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.roles.FindByID(ctx, input.RoleID); err != nil {
		return nil, domain.ErrRoleNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		RoleID:       input.RoleID,
		CreatedAt:    time.Now().UTC(),
	}
	return s.users.Create(ctx, user)
}

func (s *AuthService) generateToken(user *domain.User, roleName string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.Email,
		"user_id":  user.ID,
		"username": user.Username,
		"role_id":  user.RoleID,
		"role":     roleName,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
