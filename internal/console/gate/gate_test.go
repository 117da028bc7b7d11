package gate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rentdesk/property-system/internal/console/client"
	"github.com/rentdesk/property-system/internal/console/session"
	"github.com/rentdesk/property-system/internal/core/access"
)

type fakeNav struct {
	mu      sync.Mutex
	current access.Screen
	moves   []access.Screen
}

func (n *fakeNav) Current() access.Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *fakeNav) NavigateTo(s access.Screen) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = s
	n.moves = append(n.moves, s)
}

func (n *fakeNav) lastMove() (access.Screen, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.moves) == 0 {
		return "", false
	}
	return n.moves[len(n.moves)-1], true
}

// testBackend is a minimal API: one account, one identity record.
type testBackend struct {
	mu           sync.Mutex
	token        string
	userID       int
	identity     map[string]any
	identityHook func(w http.ResponseWriter) bool // return true when handled
}

func (b *testBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("username") != "alice" || r.FormValue("password") != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": b.token,
			"token_type":   "bearer",
			"user_id":      b.userID,
			"username":     "alice",
			"role_id":      1,
		})
	})
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		hook := b.identityHook
		token := b.token
		identity := b.identity
		b.mu.Unlock()

		if hook != nil && hook(w) {
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(identity)
	})
	return mux
}

func newTestGate(t *testing.T, backend *testBackend) (*Gate, *session.Store, *fakeNav, *client.Client) {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	nav := &fakeNav{current: access.ScreenLogin}
	c := client.New(srv.URL, store, zerolog.Nop())
	g := New(store, c, nav, zerolog.Nop())
	return g, store, nav, c
}

func adminBackend() *testBackend {
	return &testBackend{
		token:  "tok-alice",
		userID: 7,
		identity: map[string]any{
			"id":       7,
			"username": "alice",
			"email":    "alice@example.com",
			"role_id":  1,
			"role":     map[string]any{"id": 1, "name": "Admin"},
		},
	}
}

func TestGate_Restore_AbsentSession(t *testing.T) {
	g, _, nav, _ := newTestGate(t, adminBackend())

	if err := g.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}

	sess := g.Session()
	if sess.State != StateUnauthenticated || sess.Identity != nil {
		t.Fatalf("expected unauthenticated, got %+v", sess)
	}
	if _, moved := nav.lastMove(); moved {
		t.Fatalf("absent session should not navigate")
	}
}

func TestGate_Restore_Success(t *testing.T) {
	g, store, nav, _ := newTestGate(t, adminBackend())
	if err := store.Save("tok-alice", 7); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := g.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}

	sess := g.Session()
	if !sess.Authenticated() {
		t.Fatalf("expected authenticated, got %+v", sess)
	}
	if sess.RoleName() != "Admin" {
		t.Fatalf("expected Admin role, got %q", sess.RoleName())
	}
	if got, _ := nav.lastMove(); got != access.DefaultScreen {
		t.Fatalf("expected redirect off login to default, got %q", got)
	}
}

func TestGate_Restore_BadToken(t *testing.T) {
	g, store, nav, _ := newTestGate(t, adminBackend())
	if err := store.Save("tok-stale", 7); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := g.Restore(context.Background()); err != nil {
		t.Fatalf("restore must recover silently, got %v", err)
	}

	if g.Session().State != StateUnauthenticated {
		t.Fatalf("expected unauthenticated")
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected store cleared")
	}
	if nav.Current() != access.ScreenLogin {
		t.Fatalf("expected login screen, got %q", nav.Current())
	}
}

func TestGate_Login_Success(t *testing.T) {
	g, store, nav, _ := newTestGate(t, adminBackend())

	if err := g.Login(context.Background(), "alice", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}

	sess := g.Session()
	if !sess.Authenticated() || sess.Identity.Username != "alice" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	stored, ok := store.Load()
	if !ok || stored.Token != "tok-alice" || stored.UserID != 7 {
		t.Fatalf("unexpected persisted session: %+v ok=%v", stored, ok)
	}
	if nav.Current() != access.DefaultScreen {
		t.Fatalf("expected default screen, got %q", nav.Current())
	}
}

func TestGate_Login_Rejected(t *testing.T) {
	g, store, _, _ := newTestGate(t, adminBackend())

	err := g.Login(context.Background(), "alice", "wrong")
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Detail != "invalid credentials" {
		t.Fatalf("expected server detail, got %v", err)
	}
	if g.Session().State != StateUnauthenticated {
		t.Fatalf("expected unauthenticated")
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("no credential may remain after rejected login")
	}
}

func TestGate_Login_PartialRollback(t *testing.T) {
	backend := adminBackend()
	backend.identityHook = func(w http.ResponseWriter) bool {
		w.WriteHeader(http.StatusInternalServerError)
		return true
	}
	g, store, _, _ := newTestGate(t, backend)

	err := g.Login(context.Background(), "alice", "hunter22")
	if !errors.Is(err, ErrIdentityFetch) {
		t.Fatalf("expected ErrIdentityFetch, got %v", err)
	}
	if g.Session().State != StateUnauthenticated {
		t.Fatalf("expected unauthenticated after rollback")
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("credential must be rolled back after failed identity fetch")
	}
}

func TestGate_Logout_Idempotent(t *testing.T) {
	g, store, nav, _ := newTestGate(t, adminBackend())

	if err := g.Login(context.Background(), "alice", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}

	g.Logout()
	first := g.Session()
	g.Logout()
	second := g.Session()

	if first.State != StateUnauthenticated || second.State != StateUnauthenticated {
		t.Fatalf("expected unauthenticated after both logouts")
	}
	if first.Identity != nil || second.Identity != nil {
		t.Fatalf("expected no identity after logout")
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected store cleared")
	}
	if nav.Current() != access.ScreenLogin {
		t.Fatalf("expected login screen")
	}
}

func TestGate_RestorationEquivalence(t *testing.T) {
	backend := adminBackend()

	loginGate, loginStore, _, _ := newTestGate(t, backend)
	if err := loginGate.Login(context.Background(), "alice", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}
	viaLogin := loginGate.Session()

	restoreGate, restoreStore, _, _ := newTestGate(t, backend)
	stored, _ := loginStore.Load()
	if err := restoreStore.Save(stored.Token, stored.UserID); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := restoreGate.Restore(context.Background()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	viaRestore := restoreGate.Session()

	if viaLogin.State != viaRestore.State {
		t.Fatalf("state mismatch: %v vs %v", viaLogin.State, viaRestore.State)
	}
	if viaLogin.Identity.ID != viaRestore.Identity.ID || viaLogin.Identity.Username != viaRestore.Identity.Username {
		t.Fatalf("identity mismatch: %+v vs %+v", viaLogin.Identity, viaRestore.Identity)
	}
	if viaLogin.RoleName() != viaRestore.RoleName() {
		t.Fatalf("role mismatch: %q vs %q", viaLogin.RoleName(), viaRestore.RoleName())
	}
}

func TestGate_ForcedSignOutOn401(t *testing.T) {
	backend := adminBackend()
	g, store, nav, c := newTestGate(t, backend)

	if err := g.Login(context.Background(), "alice", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}
	updates := g.Subscribe()

	// The server starts rejecting the credential.
	backend.mu.Lock()
	backend.token = "rotated"
	backend.mu.Unlock()

	var identity Identity
	err := c.Get(context.Background(), "users", 7, &identity)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}

	if g.Session().State != StateUnauthenticated {
		t.Fatalf("expected forced sign-out")
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected store cleared")
	}
	if nav.Current() != access.ScreenLogin {
		t.Fatalf("expected login screen")
	}

	select {
	case snapshot := <-updates:
		if snapshot.State != StateUnauthenticated {
			t.Fatalf("subscriber saw %v, want unauthenticated", snapshot.State)
		}
	default:
		t.Fatalf("subscriber not notified of forced sign-out")
	}
}

func TestGate_StaleRestoreDiscarded(t *testing.T) {
	backend := adminBackend()
	enter := make(chan struct{})
	release := make(chan struct{})
	backend.identityHook = func(w http.ResponseWriter) bool {
		close(enter)
		<-release
		return false // fall through to the normal identity response
	}

	g, store, _, _ := newTestGate(t, backend)
	if err := store.Save("tok-alice", 7); err != nil {
		t.Fatalf("save: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- g.Restore(context.Background()) }()

	<-enter
	g.Logout() // user signs out while the restore fetch is in flight
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("restore: %v", err)
	}
	if g.Session().State != StateUnauthenticated {
		t.Fatalf("stale restore result must not re-authenticate a cleared session")
	}
	if _, ok := store.Load(); ok {
		t.Fatalf("expected store to stay cleared")
	}
}

func TestGate_SingleTransitionInFlight(t *testing.T) {
	backend := adminBackend()
	enter := make(chan struct{})
	release := make(chan struct{})
	backend.identityHook = func(w http.ResponseWriter) bool {
		close(enter)
		<-release
		return false
	}

	g, _, _, _ := newTestGate(t, backend)

	done := make(chan error, 1)
	go func() { done <- g.Login(context.Background(), "alice", "hunter22") }()

	<-enter
	if err := g.Login(context.Background(), "alice", "hunter22"); !errors.Is(err, ErrTransitionInFlight) {
		t.Fatalf("expected ErrTransitionInFlight, got %v", err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("first login: %v", err)
	}
	if !g.Session().Authenticated() {
		t.Fatalf("expected authenticated after first login")
	}
}

func TestGate_NullRoleSession(t *testing.T) {
	backend := adminBackend()
	backend.identity = map[string]any{
		"id":       7,
		"username": "alice",
		"email":    "alice@example.com",
		"role_id":  0,
		"role":     nil,
	}
	g, _, _, _ := newTestGate(t, backend)

	if err := g.Login(context.Background(), "alice", "hunter22"); err != nil {
		t.Fatalf("login: %v", err)
	}

	sess := g.Session()
	if !sess.Authenticated() {
		t.Fatalf("identity without role is still authenticated")
	}
	if sess.RoleName() != "" {
		t.Fatalf("expected empty role name, got %q", sess.RoleName())
	}
}
