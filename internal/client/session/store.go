// Package session holds the client's credential state: the bearer token,
// cached display fields, and the authentication status derived from them.
package session

import (
	"encoding/json"
	"os"
	"sync"
)

// fileState is the persisted shape of the store. The token is authoritative
// for identity and role; username and avatar are display-only caches that may
// go stale without harm.
type fileState struct {
	Token     string `json:"token,omitempty"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Banned    bool   `json:"banned,omitempty"`
}

// Store is the single source of truth for the credential blob and the small
// display-cache fields, scoped to one client instance and persisted as a JSON
// state file.
type Store struct {
	mu       sync.Mutex
	path     string
	state    fileState
	onChange func()
}

// NewStore creates a store backed by the state file at path. Call Load before
// first use; a missing file is a fresh, signed-out state.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// OnChange registers a hook invoked synchronously after every mutation, once
// the new state is persisted and visible to readers. The publisher registers
// itself here so dependent code observes a consistent value immediately after
// the mutating call returns.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Load reads the state file. A missing file leaves the store empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = fileState{}
			return nil
		}
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&s.state)
}

// save writes the current state. Caller holds s.mu.
func (s *Store) save() error {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(&s.state)
}

// notify fires the change hook outside the lock so subscribers may read back.
func (s *Store) notify() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetToken persists a freshly issued token, refreshes the cached username from
// its claims, and resets the banned flag: a successful login supersedes any
// earlier ban signal.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	s.state.Token = token
	if claims, ok := DecodeClaims(token); ok {
		s.state.Username = claims.Username()
	}
	s.state.Banned = false
	err := s.save()
	s.mu.Unlock()

	s.notify()
	return err
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// Username returns the cached display username.
func (s *Store) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Username
}

// AvatarURL returns the cached avatar location.
func (s *Store) AvatarURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AvatarURL
}

// SetAvatarURL updates the display-only avatar cache.
func (s *Store) SetAvatarURL(u string) error {
	s.mu.Lock()
	s.state.AvatarURL = u
	err := s.save()
	s.mu.Unlock()

	s.notify()
	return err
}

// Banned reports whether the backend has signalled the account is banned.
func (s *Store) Banned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Banned
}

// SetBanned records a ban signal received mid-session.
func (s *Store) SetBanned(banned bool) error {
	s.mu.Lock()
	s.state.Banned = banned
	err := s.save()
	s.mu.Unlock()

	s.notify()
	return err
}

// Clear removes the token and all cached display fields in a single swap, so
// callers never observe a partially cleared state. The banned flag survives:
// it is a server-side signal, not a display cache, and must keep forcing the
// session unauthenticated until the next successful login.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.state = fileState{Banned: s.state.Banned}
	err := s.save()
	s.mu.Unlock()

	s.notify()
	return err
}
