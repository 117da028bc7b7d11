package policy

import (
	"testing"

	"github.com/rentdesk/property-system/internal/console/gate"
	"github.com/rentdesk/property-system/internal/core/access"
	"github.com/rentdesk/property-system/internal/core/domain"
)

func sessionWithRole(name string) gate.Session {
	identity := &gate.Identity{ID: 1, Username: "u"}
	if name != "" {
		identity.Role = &gate.Role{ID: 1, Name: name}
	}
	return gate.Session{State: gate.StateAuthenticated, Identity: identity}
}

func anonymous() gate.Session {
	return gate.Session{State: gate.StateUnauthenticated}
}

func TestDecide_UnauthenticatedRedirectsToLogin(t *testing.T) {
	for _, entry := range access.Entries {
		decision, dest := Decide(anonymous(), entry.Screen)
		if decision != RedirectLogin || dest != access.ScreenLogin {
			t.Errorf("%s: expected login redirect, got %v/%q", entry.Screen, decision, dest)
		}
	}
}

func TestDecide_WrongRoleRedirectsToDefault(t *testing.T) {
	decision, dest := Decide(sessionWithRole(domain.RoleTenant), access.ScreenUsers)
	if decision != RedirectDefault || dest != access.DefaultScreen {
		t.Fatalf("expected default redirect, got %v/%q", decision, dest)
	}
}

func TestDecide_AllowedRoleRenders(t *testing.T) {
	decision, dest := Decide(sessionWithRole(domain.RoleAdmin), access.ScreenUsers)
	if decision != Render || dest != access.ScreenUsers {
		t.Fatalf("expected render, got %v/%q", decision, dest)
	}
}

func TestDecide_NullRoleDeniedEverywhere(t *testing.T) {
	sess := sessionWithRole("")
	for _, entry := range access.Entries {
		if entry.Screen == access.DefaultScreen {
			continue
		}
		decision, dest := Decide(sess, entry.Screen)
		if decision != RedirectDefault || dest != access.DefaultScreen {
			t.Errorf("%s: null role must be denied, got %v/%q", entry.Screen, decision, dest)
		}
	}
}

// The default screen is the destination of every authorization redirect, so
// a denial there must render rather than redirect onto itself.
func TestDecide_NullRoleRendersDefaultScreen(t *testing.T) {
	sess := sessionWithRole("")
	decision, dest := Decide(sess, access.DefaultScreen)
	if decision != Render || dest != access.DefaultScreen {
		t.Fatalf("default screen must be terminal for a null role, got %v/%q", decision, dest)
	}
	if entries := Menu(sess); len(entries) != 0 {
		t.Fatalf("expected empty menu for null role, got %d entries", len(entries))
	}
}

func TestDecide_LoginScreen(t *testing.T) {
	if decision, _ := Decide(anonymous(), access.ScreenLogin); decision != Render {
		t.Fatalf("anonymous user must reach login, got %v", decision)
	}
	if decision, dest := Decide(sessionWithRole(domain.RoleAdmin), access.ScreenLogin); decision != RedirectDefault || dest != access.DefaultScreen {
		t.Fatalf("authenticated user on login must land on default, got %v/%q", decision, dest)
	}
}

func TestDecide_UnknownScreenRedirectsToDefault(t *testing.T) {
	decision, dest := Decide(sessionWithRole(domain.RoleAdmin), access.Screen("settings"))
	if decision != RedirectDefault || dest != access.DefaultScreen {
		t.Fatalf("unknown screen must redirect to default, got %v/%q", decision, dest)
	}
}

// Every screen and every role: the guard's verdict and the menu's contents
// must agree.
func TestMenuGuardConsistency(t *testing.T) {
	roles := []string{domain.RoleAdmin, domain.RoleLandlord, domain.RoleTenant, ""}

	for _, role := range roles {
		sess := sessionWithRole(role)
		visible := make(map[access.Screen]bool)
		for _, entry := range Menu(sess) {
			visible[entry.Screen] = true
		}

		for _, entry := range access.Entries {
			if role == "" && entry.Screen == access.DefaultScreen {
				// Terminal fallback, rendered without a menu entry.
				continue
			}
			decision, _ := Decide(sess, entry.Screen)
			allowed := decision == Render
			if allowed != visible[entry.Screen] {
				t.Errorf("role %q screen %s: guard allows=%v, menu shows=%v",
					role, entry.Screen, allowed, visible[entry.Screen])
			}
		}
	}
}

func TestMenu_AnonymousIsEmpty(t *testing.T) {
	if entries := Menu(anonymous()); len(entries) != 0 {
		t.Fatalf("expected empty menu for anonymous session, got %d entries", len(entries))
	}
}
