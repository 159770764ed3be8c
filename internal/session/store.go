// Package session owns the persisted credential: the access token and the
// username it belongs to. It is the client-side analog of the browser's
// localStorage slot, backed by a JSON file so the login survives process
// restarts.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"vaultguard-client/internal/logging"
)

// ErrIncompleteCredential rejects a Set with a missing token or username.
// Both fields persist atomically or not at all.
var ErrIncompleteCredential = errors.New("credential requires both token and username")

// Credential identifies the authenticated user. No expiry is tracked
// locally; an expired token is discovered when the server rejects it.
type Credential struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Store persists at most one credential. All methods are safe for
// concurrent use; Clear is idempotent.
type Store struct {
	mu   sync.Mutex
	path string
	cur  *Credential
}

// NewStore loads any previously persisted credential from path. A missing
// or unreadable file simply means "not logged in".
func NewStore(path string) *Store {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil || cred.Token == "" || cred.Username == "" {
		logger := logging.ForComponent("session")
		logger.Warn().Str("path", path).Msg("discarding unreadable session file")
		return s
	}
	s.cur = &cred
	return s
}

// Set persists the credential, replacing any previous one.
func (s *Store) Set(cred Credential) error {
	if cred.Token == "" || cred.Username == "" {
		return ErrIncompleteCredential
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(cred); err != nil {
		return err
	}
	s.cur = &cred
	return nil
}

// Get returns the current credential, if any.
func (s *Store) Get() (Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return Credential{}, false
	}
	return *s.cur, true
}

// Clear removes the credential. The boolean reports whether a credential
// was actually removed, which lets the gateway fire its forced-logout hook
// exactly once when several requests fail at the same time.
func (s *Store) Clear() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return false, nil
	}
	s.cur = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return true, err
	}
	return true, nil
}

// IsAuthenticated reports whether a credential is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur != nil
}

// write lands the file via temp-and-rename so a crash mid-write never
// leaves a torn credential behind.
func (s *Store) write(cred Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
