// Package shell is the console's interactive surface: a role-filtered menu,
// the current-identity display, and generic list rendering for each entity
// screen. It stays deliberately thin; every access decision comes from the
// route guard and every request goes through the resource client.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rentdesk/property-system/internal/console/client"
	"github.com/rentdesk/property-system/internal/console/gate"
	"github.com/rentdesk/property-system/internal/console/policy"
	"github.com/rentdesk/property-system/internal/core/access"
)

// Shell runs the console loop. It implements gate.Navigator so the gate's
// redirects move the visible screen.
type Shell struct {
	gate   *gate.Gate
	client *client.Client
	in     *bufio.Scanner
	out    io.Writer
	log    zerolog.Logger

	mu      sync.Mutex
	current access.Screen
}

// New builds a Shell reading commands from in and rendering to out.
// Bind the gate afterwards; the gate needs the shell as its Navigator.
func New(c *client.Client, in io.Reader, out io.Writer, log zerolog.Logger) *Shell {
	return &Shell{
		client:  c,
		in:      bufio.NewScanner(in),
		out:     out,
		log:     log,
		current: access.ScreenLogin,
	}
}

// Bind attaches the gate once it has been constructed with this shell as
// its Navigator.
func (s *Shell) Bind(g *gate.Gate) {
	s.gate = g
}

// Current returns the screen on display.
func (s *Shell) Current() access.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// NavigateTo switches the visible screen.
func (s *Shell) NavigateTo(screen access.Screen) {
	s.mu.Lock()
	s.current = screen
	s.mu.Unlock()
}

// Run restores the session and enters the command loop. It returns when
// the input ends, the user quits, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.gate.Restore(ctx); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		sess := s.gate.Session()
		decision, dest := policy.Decide(sess, s.Current())
		if decision != policy.Render {
			s.NavigateTo(dest)
			continue
		}

		if s.Current() == access.ScreenLogin {
			quit, err := s.loginScreen(ctx)
			if quit || err != nil {
				return err
			}
			continue
		}

		s.renderScreen(ctx, sess)
		quit := s.prompt(sess)
		if quit {
			return nil
		}
	}
}

// loginScreen prompts for credentials. Returns quit=true on EOF or "quit".
func (s *Shell) loginScreen(ctx context.Context) (bool, error) {
	fmt.Fprintln(s.out, "-- sign in (or 'quit') --")
	fmt.Fprint(s.out, "username: ")
	username, ok := s.readLine()
	if !ok || username == "quit" {
		return true, nil
	}
	fmt.Fprint(s.out, "password: ")
	password, ok := s.readLine()
	if !ok {
		return true, nil
	}

	if err := s.gate.Login(ctx, username, password); err != nil {
		fmt.Fprintf(s.out, "login failed: %s\n", loginMessage(err))
	}
	return false, nil
}

// renderScreen shows the identity line, the menu, and the current screen's
// records.
func (s *Shell) renderScreen(ctx context.Context, sess gate.Session) {
	role := sess.RoleName()
	if role == "" {
		role = "no role"
	}
	fmt.Fprintf(s.out, "\n[%s] signed in as %s (%s)\n", s.Current(), sess.Identity.Username, role)

	for i, entry := range policy.Menu(sess) {
		marker := "  "
		if entry.Screen == s.Current() {
			marker = "> "
		}
		fmt.Fprintf(s.out, "%s%d. %s\n", marker, i+1, entry.Title)
	}

	entry, ok := access.Lookup(s.Current())
	if !ok || entry.Resource == "" {
		return
	}

	list, err := s.client.List(ctx, entry.Resource, nil)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "-- %s (%d total) --\n", entry.Title, list.Total)
	for _, item := range list.Items {
		fmt.Fprintln(s.out, compactRow(item))
	}
}

// prompt reads one command: a menu number, "logout", or "quit".
func (s *Shell) prompt(sess gate.Session) (quit bool) {
	fmt.Fprint(s.out, "screen # / logout / quit: ")
	line, ok := s.readLine()
	if !ok || line == "quit" {
		return true
	}

	switch {
	case line == "logout":
		s.gate.Logout()
	case line == "":
	default:
		if n, err := strconv.Atoi(line); err == nil {
			menu := policy.Menu(sess)
			if n >= 1 && n <= len(menu) {
				s.NavigateTo(menu[n-1].Screen)
			}
		}
	}
	return false
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// loginMessage prefers the server's detail over wrapper noise.
func loginMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}

// compactRow renders one record as "id  {rest}" without decoding into a
// typed struct; screens are schema-agnostic here.
func compactRow(raw json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return string(raw)
	}
	id := "?"
	if rawID, ok := fields["id"]; ok {
		id = string(rawID)
	}
	return fmt.Sprintf("  #%s %s", id, string(raw))
}
