// Package session is the single source of truth for "is this client
// currently authenticated". The flag lives in memory and is written through
// to a state file so it survives restarts. Nothing validates credentials
// here; this is a cache of a boolean the server told the client to believe.
package session

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	flagFile  = "authenticated"
	emailFile = "email"
)

// Store holds the session flag plus the last-used email (display convenience
// only, not a credential). All flag mutation goes through SetAuthenticated —
// single-writer by construction, so memory and disk cannot diverge outside
// the transition itself.
type Store struct {
	dir           string
	authenticated bool
	email         string
	onChange      func()
}

// New seeds a Store from the state directory. Missing or unreadable files
// mean logged-out; no network call is made.
func New(dir string) *Store {
	s := &Store{dir: dir}
	if data, err := os.ReadFile(filepath.Join(dir, flagFile)); err == nil {
		s.authenticated = strings.TrimSpace(string(data)) == "true"
	}
	if data, err := os.ReadFile(filepath.Join(dir, emailFile)); err == nil {
		s.email = strings.TrimSpace(string(data))
	}
	return s
}

// Authenticated returns the current flag. Pure read, no side effect.
func (s *Store) Authenticated() bool {
	return s.authenticated
}

// Email returns the last-used email, or "" when none was remembered.
func (s *Store) Email() string {
	return s.email
}

// Subscribe registers a callback invoked after every flag transition.
func (s *Store) Subscribe(fn func()) {
	s.onChange = fn
}

// SetAuthenticated updates the in-memory flag and synchronously writes it
// through: the flag file is written when true and removed entirely when
// false. Only "authenticated" is worth persisting, not its absence. Storage
// failures are swallowed; the in-memory flag keeps working for the life of
// the process.
func (s *Store) SetAuthenticated(v bool) {
	s.authenticated = v
	if v {
		if err := os.MkdirAll(s.dir, 0o700); err == nil {
			os.WriteFile(filepath.Join(s.dir, flagFile), []byte("true\n"), 0o600) //nolint:errcheck // best-effort persistence
		}
	} else {
		os.Remove(filepath.Join(s.dir, flagFile)) //nolint:errcheck // absent already is fine
	}
	if s.onChange != nil {
		s.onChange()
	}
}

// RememberEmail persists the last-used email for login prefill.
func (s *Store) RememberEmail(email string) {
	s.email = email
	if err := os.MkdirAll(s.dir, 0o700); err == nil {
		os.WriteFile(filepath.Join(s.dir, emailFile), []byte(email+"\n"), 0o600) //nolint:errcheck // best-effort persistence
	}
}

// ForgetEmail drops the remembered email, memory and disk.
func (s *Store) ForgetEmail() {
	s.email = ""
	os.Remove(filepath.Join(s.dir, emailFile)) //nolint:errcheck // absent already is fine
}
