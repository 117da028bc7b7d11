// Package access holds the screen access policy: the single static table
// mapping each back-office screen to the role names allowed to reach it.
// The console route guard, the navigation menu, and the server's route-level
// RBAC are all derived from this table so they cannot diverge.
package access

import "github.com/rentdesk/property-system/internal/core/domain"

// Screen identifies a back-office screen.
type Screen string

const (
	ScreenLogin       Screen = "login"
	ScreenDashboard   Screen = "dashboard"
	ScreenUsers       Screen = "users"
	ScreenRoles       Screen = "roles"
	ScreenApartments  Screen = "apartments"
	ScreenTenants     Screen = "tenants"
	ScreenRentals     Screen = "rentals"
	ScreenPayments    Screen = "payments"
	ScreenMaintenance Screen = "maintenance"
)

// DefaultScreen is where authenticated users land after login and where
// authorization-denied navigations are redirected.
const DefaultScreen = ScreenDashboard

// Entry describes one screen: its menu title, the REST resource it renders,
// and the closed set of role names allowed to reach it.
type Entry struct {
	Screen       Screen
	Title        string
	Resource     string
	AllowedRoles []string
}

// Entries is the ordered policy table. Order is the menu order.
// ScreenLogin is intentionally absent: it is reachable only when
// unauthenticated and never appears in the menu.
var Entries = []Entry{
	{ScreenDashboard, "Dashboard", "", []string{domain.RoleAdmin, domain.RoleLandlord, domain.RoleTenant}},
	{ScreenUsers, "Users", "users", []string{domain.RoleAdmin}},
	{ScreenRoles, "Roles", "users/roles", []string{domain.RoleAdmin}},
	{ScreenApartments, "Apartments", "apartments", []string{domain.RoleAdmin, domain.RoleLandlord, domain.RoleTenant}},
	{ScreenTenants, "Tenants", "tenants", []string{domain.RoleAdmin, domain.RoleLandlord}},
	{ScreenRentals, "Rentals", "rentals", []string{domain.RoleAdmin, domain.RoleLandlord, domain.RoleTenant}},
	{ScreenPayments, "Payments", "payments", []string{domain.RoleAdmin, domain.RoleLandlord, domain.RoleTenant}},
	{ScreenMaintenance, "Maintenance", "maintenance", []string{domain.RoleAdmin, domain.RoleLandlord, domain.RoleTenant}},
}

// Lookup returns the policy entry for a screen. The boolean is false for
// unknown screens and for ScreenLogin.
func Lookup(s Screen) (Entry, bool) {
	for _, e := range Entries {
		if e.Screen == s {
			return e, true
		}
	}
	return Entry{}, false
}

// Allows reports whether roleName may reach screen. An empty roleName
// (identity without an assigned role) matches no allow-list.
func Allows(s Screen, roleName string) bool {
	e, ok := Lookup(s)
	if !ok {
		return false
	}
	if roleName == "" {
		return false
	}
	for _, r := range e.AllowedRoles {
		if r == roleName {
			return true
		}
	}
	return false
}

// VisibleTo returns the ordered menu entries reachable by roleName.
func VisibleTo(roleName string) []Entry {
	var out []Entry
	for _, e := range Entries {
		if Allows(e.Screen, roleName) {
			out = append(out, e)
		}
	}
	return out
}
