// Package session persists the authenticated principal for the console
// client: one session at a time, rehydrated from durable storage before any
// permission check is answered.
package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/commerceops/backoffice/internal/rbac"
)

// Storage is the durable backend holding the single serialized principal.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

// Store keeps the current principal in memory and writes it through to
// Storage. Permission checks before Ready reports true are indeterminate;
// callers must pass Ready() into rbac.Guard rather than assuming either
// answer.
type Store struct {
	mu        sync.RWMutex
	principal *rbac.Principal
	ready     bool
	storage   Storage
	logger    *slog.Logger
}

// NewStore rehydrates synchronously from storage before returning, so the
// store is ready once constructed. Corrupt or unreadable persisted data is
// treated as no session: the store never guesses a role.
func NewStore(storage Storage, logger *slog.Logger) *Store {
	s := &Store{storage: storage, logger: logger}
	s.rehydrate()
	return s
}

func (s *Store) rehydrate() {
	defer func() {
		s.mu.Lock()
		s.ready = true
		s.mu.Unlock()
	}()

	data, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("session rehydrate failed, starting logged out", "error", err)
		return
	}
	if len(data) == 0 {
		return
	}

	var p rbac.Principal
	if err := json.Unmarshal(data, &p); err != nil {
		s.logger.Warn("persisted session is corrupt, discarding", "error", err)
		if clearErr := s.storage.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear corrupt session", "error", clearErr)
		}
		return
	}
	if p.Email == "" || !rbac.ValidRole(p.Role) {
		s.logger.Warn("persisted session has invalid principal, discarding", "role", string(p.Role))
		if clearErr := s.storage.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear invalid session", "error", clearErr)
		}
		return
	}

	s.mu.Lock()
	s.principal = &p
	s.mu.Unlock()
}

// Login stores the principal in memory and in durable storage.
func (s *Store) Login(p rbac.Principal) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := s.storage.Save(data); err != nil {
		return err
	}

	s.mu.Lock()
	s.principal = &p
	s.mu.Unlock()

	s.logger.Info("session established", "email", p.Email, "role", string(p.Role))
	return nil
}

// Logout clears both memory and durable storage.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.principal = nil
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		return err
	}
	s.logger.Info("session cleared")
	return nil
}

// Current returns the stored principal, or nil and false when logged out.
// The returned principal is a copy; it does not change for the lifetime of
// the session.
func (s *Store) Current() (*rbac.Principal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.principal == nil {
		return nil, false
	}
	p := *s.principal
	return &p, true
}

// Ready reports whether rehydration has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Guard runs the route guard against the store's current state.
func (s *Store) Guard(required rbac.Permission) rbac.Decision {
	p, _ := s.Current()
	return rbac.Guard(p, required, s.Ready())
}
