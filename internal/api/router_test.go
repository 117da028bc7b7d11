package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rentdesk/property-system/internal/api/handler"
	"github.com/rentdesk/property-system/internal/console/client"
	"github.com/rentdesk/property-system/internal/console/gate"
	"github.com/rentdesk/property-system/internal/console/session"
	"github.com/rentdesk/property-system/internal/core/access"
	"github.com/rentdesk/property-system/internal/core/domain"
	"github.com/rentdesk/property-system/internal/core/ports"
)

// These tests mount the real route table and drive it with the console's own
// client and gate, so route-level RBAC and the console flows are exercised
// against each other rather than against hand-written stub servers.

const routerTestSecret = "router-test-secret"

type stubAuthService struct{}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username != "tina" || password != "hunter22" {
		return nil, domain.ErrInvalidCredentials
	}
	claims := jwt.MapClaims{
		"sub":      "tina@example.com",
		"username": "tina",
		"user_id":  9,
		"role_id":  3,
		"role":     domain.RoleTenant,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(routerTestSecret))
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{
		AccessToken: signed,
		TokenType:   "bearer",
		UserID:      9,
		Username:    "tina",
		RoleID:      3,
	}, nil
}

func (s *stubAuthService) Signup(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

type stubUserService struct {
	listCalls atomic.Int32
}

func (s *stubUserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserService) Get(ctx context.Context, id int) (*domain.User, error) {
	if id != 9 {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{
		ID:       9,
		Username: "tina",
		Email:    "tina@example.com",
		RoleID:   3,
		Role:     &domain.Role{ID: 3, Name: domain.RoleTenant},
	}, nil
}

func (s *stubUserService) List(ctx context.Context, skip, limit int) (*ports.UserList, error) {
	s.listCalls.Add(1)
	return &ports.UserList{}, nil
}

func (s *stubUserService) Update(ctx context.Context, id int, input ports.UpdateUserInput) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUserService) Delete(ctx context.Context, id int) error {
	return errors.New("not implemented")
}

type fakeNav struct {
	screen access.Screen
}

func (n *fakeNav) Current() access.Screen     { return n.screen }
func (n *fakeNav) NavigateTo(s access.Screen) { n.screen = s }

func newRouteTableServer(t *testing.T) (*httptest.Server, *stubUserService) {
	t.Helper()
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())

	users := &stubUserService{}
	registerRoutes(e, routeHandlers{
		auth:        handler.NewAuthHandler(&stubAuthService{}),
		user:        handler.NewUserHandler(users),
		role:        handler.NewRoleHandler(nil),
		apartment:   handler.NewApartmentHandler(nil),
		tenant:      handler.NewTenantHandler(nil),
		rental:      handler.NewRentalHandler(nil),
		payment:     handler.NewPaymentHandler(nil),
		maintenance: handler.NewMaintenanceHandler(nil),
	}, routerTestSecret)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv, users
}

func newConsole(t *testing.T, baseURL, sessionFile string) (*gate.Gate, *client.Client, *fakeNav) {
	t.Helper()
	store, err := session.NewStore(sessionFile)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	c := client.New(baseURL, store, zerolog.Nop())
	nav := &fakeNav{screen: access.ScreenLogin}
	g := gate.New(store, c, nav, zerolog.Nop())
	return g, c, nav
}

// A tenant must be able to sign in end to end: the identity fetch right
// after login goes through the mounted routes, not an admin-only gate.
func TestRoutes_TenantEstablishesSession(t *testing.T) {
	srv, _ := newRouteTableServer(t)
	g, _, nav := newConsole(t, srv.URL, filepath.Join(t.TempDir(), "session.json"))

	if err := g.Login(context.Background(), "tina", "hunter22"); err != nil {
		t.Fatalf("tenant login: %v", err)
	}

	sess := g.Session()
	if sess.State != gate.StateAuthenticated {
		t.Fatalf("expected authenticated session, got state %v", sess.State)
	}
	if sess.RoleName() != domain.RoleTenant {
		t.Fatalf("expected role %q, got %q", domain.RoleTenant, sess.RoleName())
	}
	if nav.Current() != access.DefaultScreen {
		t.Fatalf("expected landing on %q, got %q", access.DefaultScreen, nav.Current())
	}
}

// Restoring a persisted tenant session re-runs the identity fetch against
// the same routes.
func TestRoutes_TenantSessionRestores(t *testing.T) {
	srv, _ := newRouteTableServer(t)
	sessionFile := filepath.Join(t.TempDir(), "session.json")

	g, _, _ := newConsole(t, srv.URL, sessionFile)
	if err := g.Login(context.Background(), "tina", "hunter22"); err != nil {
		t.Fatalf("tenant login: %v", err)
	}

	g2, _, nav2 := newConsole(t, srv.URL, sessionFile)
	if err := g2.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	sess := g2.Session()
	if sess.State != gate.StateAuthenticated || sess.RoleName() != domain.RoleTenant {
		t.Fatalf("expected restored tenant session, got state %v role %q", sess.State, sess.RoleName())
	}
	if nav2.Current() != access.DefaultScreen {
		t.Fatalf("expected landing on %q, got %q", access.DefaultScreen, nav2.Current())
	}
}

// The admin gate still holds on the user list, and a 403 there is an
// authorization answer, not a reason to drop the session.
func TestRoutes_TenantDeniedUserList(t *testing.T) {
	srv, users := newRouteTableServer(t)
	g, c, _ := newConsole(t, srv.URL, filepath.Join(t.TempDir(), "session.json"))

	if err := g.Login(context.Background(), "tina", "hunter22"); err != nil {
		t.Fatalf("tenant login: %v", err)
	}

	_, err := c.List(context.Background(), "users", nil)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusForbidden {
		t.Fatalf("expected 403 from user list, got %v", err)
	}
	if n := users.listCalls.Load(); n != 0 {
		t.Fatalf("user list handler must not run for a tenant, ran %d times", n)
	}
	if sess := g.Session(); sess.State != gate.StateAuthenticated {
		t.Fatalf("403 must not end the session, got state %v", sess.State)
	}
}
