// Package gate owns the console's authenticated session. It is a small
// state machine: Initializing on startup, then Authenticated or
// Unauthenticated, with login, logout, and forced sign-out driving the
// transitions. All session readers observe changes through Subscribe;
// nothing else in the console holds mutable session state.
package gate

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rentdesk/property-system/internal/console/client"
	"github.com/rentdesk/property-system/internal/console/session"
	"github.com/rentdesk/property-system/internal/core/access"
)

// State is the gate's position in its lifecycle.
type State int

const (
	StateInitializing State = iota
	StateAuthenticated
	StateUnauthenticated
)

// Role is the permission class attached to an identity.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Identity is the authenticated user's profile. Role may be nil: the
// account exists but has no assigned role, which grants access to nothing.
type Identity struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	RoleID   int    `json:"role_id"`
	Role     *Role  `json:"role"`
}

// Session is the derived session snapshot handed to readers. It is a
// value; holding one never observes later transitions.
type Session struct {
	State    State
	Identity *Identity
}

// Authenticated reports whether the session holds a live identity.
func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated
}

// RoleName returns the identity's role name, or "" when unauthenticated
// or the identity has no role.
func (s Session) RoleName() string {
	if s.Identity == nil || s.Identity.Role == nil {
		return ""
	}
	return s.Identity.Role.Name
}

// Navigator applies navigation effects. The gate computes where to go;
// rendering the move is the shell's concern, which keeps the state machine
// testable without a real screen stack.
type Navigator interface {
	Current() access.Screen
	NavigateTo(access.Screen)
}

var (
	// ErrTransitionInFlight is returned when a restore or login is started
	// while another one is still running.
	ErrTransitionInFlight = errors.New("gate: authentication transition already in flight")
	// ErrIdentityFetch is returned when login authenticates but the identity
	// cannot be fetched; the partially persisted credential is rolled back.
	ErrIdentityFetch = errors.New("gate: failed to fetch user data")
)

// Gate is the authorization gate. Create with New, call Restore once at
// startup, then drive it with Login and Logout.
type Gate struct {
	store  *session.Store
	client *client.Client
	nav    Navigator
	log    zerolog.Logger

	mu         sync.Mutex
	busy       bool
	generation uint64
	state      State
	identity   *Identity
	subs       []chan Session
}

// New wires the gate to its collaborators and registers the forced
// sign-out hook for rejected credentials.
func New(store *session.Store, c *client.Client, nav Navigator, log zerolog.Logger) *Gate {
	g := &Gate{
		store:  store,
		client: c,
		nav:    nav,
		log:    log,
		state:  StateInitializing,
	}
	c.OnUnauthorized(g.forceSignOut)
	return g
}

// Session returns the current session snapshot.
func (g *Gate) Session() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Session{State: g.state, Identity: g.identity}
}

// Subscribe returns a channel receiving a snapshot after every transition.
// Slow subscribers miss intermediate snapshots rather than blocking the gate.
func (g *Gate) Subscribe() <-chan Session {
	ch := make(chan Session, 8)
	g.mu.Lock()
	g.subs = append(g.subs, ch)
	g.mu.Unlock()
	return ch
}

// Restore attempts to re-establish the session persisted by a previous run.
// Every failure path recovers silently into Unauthenticated: navigating to
// the login screen is the user-facing signal.
func (g *Gate) Restore(ctx context.Context) error {
	gen, err := g.begin()
	if err != nil {
		return err
	}
	defer g.end()

	stored, ok := g.store.Load()
	if !ok {
		// Stale partial state, if any, goes with it.
		g.discardSession()
		g.apply(gen, StateUnauthenticated, nil)
		return nil
	}

	g.client.SetToken(stored.Token)
	identity, err := g.fetchIdentity(ctx, stored.UserID)
	if err != nil {
		g.log.Debug().Err(err).Int("user_id", stored.UserID).Msg("session restore failed")
		g.discardSession()
		if g.apply(gen, StateUnauthenticated, nil) {
			g.nav.NavigateTo(access.ScreenLogin)
		}
		return nil
	}

	if g.apply(gen, StateAuthenticated, identity) {
		if g.nav.Current() == access.ScreenLogin {
			g.nav.NavigateTo(access.DefaultScreen)
		}
	}
	return nil
}

// Login authenticates with the server and establishes the session. The
// credential pair is persisted before the identity fetch because that fetch
// must itself be authenticated; if it then fails, the persistence is rolled
// back and ErrIdentityFetch is returned.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	gen, err := g.begin()
	if err != nil {
		return err
	}
	defer g.end()

	result, err := g.client.Login(ctx, username, password)
	if err != nil {
		g.discardSession()
		g.apply(gen, StateUnauthenticated, nil)
		return err
	}

	g.client.SetToken(result.AccessToken)
	if err := g.store.Save(result.AccessToken, result.UserID); err != nil {
		g.discardSession()
		g.apply(gen, StateUnauthenticated, nil)
		return err
	}

	identity, err := g.fetchIdentity(ctx, result.UserID)
	if err != nil {
		g.log.Debug().Err(err).Int("user_id", result.UserID).Msg("identity fetch after login failed")
		g.discardSession()
		g.apply(gen, StateUnauthenticated, nil)
		return ErrIdentityFetch
	}

	if !g.apply(gen, StateAuthenticated, identity) {
		// A forced sign-out won the race; the session is already gone.
		return ErrIdentityFetch
	}
	g.nav.NavigateTo(access.DefaultScreen)
	return nil
}

// Logout tears the session down. It never fails, needs no network call,
// and is safe to invoke when already unauthenticated.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.generation++
	g.state = StateUnauthenticated
	g.identity = nil
	snapshot := Session{State: g.state}
	g.notifyLocked(snapshot)
	g.mu.Unlock()

	g.discardSession()
	g.nav.NavigateTo(access.ScreenLogin)
}

// forceSignOut handles a credential rejected mid-flight. The client has
// already cleared the store and deduplicated concurrent 401s, so this runs
// at most once per credential.
func (g *Gate) forceSignOut() {
	g.log.Info().Msg("credential rejected, signing out")
	g.Logout()
}

// begin claims the single transition slot and stamps a new generation.
func (g *Gate) begin() (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return 0, ErrTransitionInFlight
	}
	g.busy = true
	g.generation++
	return g.generation, nil
}

func (g *Gate) end() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

// apply commits a transition if gen is still current. A stale gen means a
// logout or forced sign-out happened while the network call was in flight;
// its result must not re-authenticate the cleared session.
func (g *Gate) apply(gen uint64, state State, identity *Identity) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation {
		return false
	}
	g.state = state
	g.identity = identity
	g.notifyLocked(Session{State: state, Identity: identity})
	return true
}

func (g *Gate) notifyLocked(snapshot Session) {
	for _, ch := range g.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// discardSession drops the credential everywhere it lives.
func (g *Gate) discardSession() {
	g.client.ClearToken()
	if err := g.store.Clear(); err != nil {
		g.log.Warn().Err(err).Msg("failed to clear session store")
	}
}

// fetchIdentity loads the user record behind the credential. An empty
// record is an invalid session, same as a failed fetch.
func (g *Gate) fetchIdentity(ctx context.Context, userID int) (*Identity, error) {
	var identity Identity
	if err := g.client.Get(ctx, "users", userID, &identity); err != nil {
		return nil, err
	}
	if identity.ID == 0 {
		return nil, ErrIdentityFetch
	}
	return &identity, nil
}
