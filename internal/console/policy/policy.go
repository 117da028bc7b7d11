// Package policy is the console's route guard. It decides, purely from the
// current session and the screen access table, whether a requested screen
// renders or redirects. It never performs the navigation itself.
package policy

import (
	"github.com/rentdesk/property-system/internal/console/gate"
	"github.com/rentdesk/property-system/internal/core/access"
)

// Decision is the guard's verdict for a navigation request.
type Decision int

const (
	// Render shows the requested screen.
	Render Decision = iota
	// RedirectLogin sends an unauthenticated user to the login screen.
	RedirectLogin
	// RedirectDefault sends an authenticated but unauthorized user to the
	// default screen; being valid but not permitted is a routing decision,
	// not an error.
	RedirectDefault
)

// Decide evaluates a navigation request. The returned screen is where the
// caller should end up: the target itself on Render, the login or default
// screen otherwise.
func Decide(sess gate.Session, target access.Screen) (Decision, access.Screen) {
	if target == access.ScreenLogin {
		if sess.Authenticated() {
			return RedirectDefault, access.DefaultScreen
		}
		return Render, target
	}
	if !sess.Authenticated() {
		return RedirectLogin, access.ScreenLogin
	}
	if !access.Allows(target, sess.RoleName()) {
		// A role that cannot reach even the default screen still needs
		// somewhere terminal to stand, or redirects would chase their own
		// destination. The default screen renders with an empty menu.
		if target == access.DefaultScreen {
			return Render, target
		}
		return RedirectDefault, access.DefaultScreen
	}
	return Render, target
}

// Menu returns the ordered navigation entries visible to the session's
// role. The same table backs Decide, so a menu entry is always reachable
// and a reachable screen always has its menu entry.
func Menu(sess gate.Session) []access.Entry {
	if !sess.Authenticated() {
		return nil
	}
	return access.VisibleTo(sess.RoleName())
}
