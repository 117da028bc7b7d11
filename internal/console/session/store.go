// Package session persists the console's credential pair: the bearer token
// and the id of the user it belongs to. Both are stored together and cleared
// together; a file holding only one of them is treated as absent.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Session is the persisted credential pair.
type Session struct {
	Token  string `json:"token"`
	UserID int    `json:"user_id"`
}

// Store is a file-backed session store. Saves are atomic: the new content
// is written to a temp file and renamed over the old one, so a crash never
// leaves a partial session on disk.
type Store struct {
	path string
}

// NewStore returns a Store persisting to path. When path is empty the
// default location under the user config directory is used.
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("session: resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "rentdesk", "session.json")
	}
	return &Store{path: path}, nil
}

// Save persists the credential pair.
func (s *Store) Save(token string, userID int) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}

	data, err := json.Marshal(Session{Token: token, UserID: userID})
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}

// Load returns the persisted pair. ok is false when the file is missing,
// unreadable, or holds a partial pair; a credential without a known subject
// is as useless as no credential at all.
func (s *Store) Load() (Session, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, false
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, false
	}
	if sess.Token == "" || sess.UserID == 0 {
		return Session{}, false
	}
	return sess, true
}

// Clear removes the persisted pair. Clearing an already-empty store is a
// no-op, not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
