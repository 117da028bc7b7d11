package shell

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rentdesk/property-system/internal/console/client"
	"github.com/rentdesk/property-system/internal/console/gate"
	"github.com/rentdesk/property-system/internal/console/session"
	"github.com/rentdesk/property-system/internal/core/access"
)

func tenantBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.FormValue("username") == "tina" && r.FormValue("password") == "hunter22":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-tina",
				"token_type":   "bearer",
				"user_id":      9,
				"username":     "tina",
				"role_id":      3,
			})
		case r.FormValue("username") == "nora" && r.FormValue("password") == "hunter22":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok-nora",
				"token_type":   "bearer",
				"user_id":      12,
				"username":     "nora",
				"role_id":      nil,
			})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid credentials"})
		}
	})
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "12" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":       12,
				"username": "nora",
				"email":    "nora@example.com",
				"role_id":  nil,
				"role":     nil,
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       9,
			"username": "tina",
			"email":    "tina@example.com",
			"role_id":  3,
			"role":     map[string]any{"id": 3, "name": "Tenant"},
		})
	})
	mux.HandleFunc("GET /apartments", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "name": "Loft 1"},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runShell(t *testing.T, script string) string {
	t.Helper()
	srv := tenantBackend(t)

	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	c := client.New(srv.URL, store, zerolog.Nop())

	var out strings.Builder
	sh := New(c, strings.NewReader(script), &out, zerolog.Nop())
	g := gate.New(store, c, sh, zerolog.Nop())
	sh.Bind(g)

	if err := sh.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestShell_TenantMenuOmitsAdminScreens(t *testing.T) {
	out := runShell(t, "tina\nhunter22\nquit\n")

	if !strings.Contains(out, "signed in as tina (Tenant)") {
		t.Fatalf("missing identity line in output:\n%s", out)
	}
	if !strings.Contains(out, "Apartments") {
		t.Fatalf("tenant menu should list Apartments:\n%s", out)
	}
	if strings.Contains(out, "Users") || strings.Contains(out, "Roles") {
		t.Fatalf("tenant menu must not list admin screens:\n%s", out)
	}
}

func TestShell_RejectedLoginStaysOnLoginScreen(t *testing.T) {
	out := runShell(t, "tina\nwrong\nquit\n")

	if !strings.Contains(out, "login failed: invalid credentials") {
		t.Fatalf("missing login failure message:\n%s", out)
	}
	if strings.Contains(out, "signed in as") {
		t.Fatalf("must not reach an authenticated screen:\n%s", out)
	}
}

func TestShell_NavigationByMenuNumber(t *testing.T) {
	// Tenant menu order: Dashboard, Apartments, Rentals, Payments, Maintenance.
	out := runShell(t, "tina\nhunter22\n2\nquit\n")

	if !strings.Contains(out, "["+string(access.ScreenApartments)+"]") {
		t.Fatalf("expected apartments screen after selecting entry 2:\n%s", out)
	}
	if !strings.Contains(out, "Loft 1") {
		t.Fatalf("expected apartment listing:\n%s", out)
	}
}

// A signed-in user whose role is null reaches no screen, but the loop must
// still land somewhere that reads input instead of chasing the default-screen
// redirect forever.
func TestShell_NullRoleLandsOnEmptyDashboard(t *testing.T) {
	out := runShell(t, "nora\nhunter22\nquit\n")

	if !strings.Contains(out, "signed in as nora (no role)") {
		t.Fatalf("missing identity line for null-role user:\n%s", out)
	}
	if !strings.Contains(out, "["+string(access.DefaultScreen)+"]") {
		t.Fatalf("null-role user should land on the default screen:\n%s", out)
	}
	if strings.Contains(out, "1. ") {
		t.Fatalf("null-role menu must be empty:\n%s", out)
	}
}

func TestShell_NullRoleCanLogout(t *testing.T) {
	out := runShell(t, "nora\nhunter22\nlogout\nquit\n")

	if strings.Count(out, "-- sign in") < 2 {
		t.Fatalf("expected to return to the sign-in screen after logout:\n%s", out)
	}
}

func TestShell_LogoutReturnsToLogin(t *testing.T) {
	out := runShell(t, "tina\nhunter22\nlogout\nquit\n")

	// After logout the loop lands back on the sign-in prompt.
	if strings.Count(out, "-- sign in") < 2 {
		t.Fatalf("expected to return to the sign-in screen after logout:\n%s", out)
	}
}
