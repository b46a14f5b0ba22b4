package state

import (
	"context"
	"encoding/json"
	"sync"

	"amparo/internal/domain"
	"amparo/internal/session"
)

// SessionSnapshot is the session container state for rendering.
type SessionSnapshot struct {
	Authenticated bool
	Identity      *domain.Identity
	Loading       bool
	Err           string
}

// Session gates every other view. Login scans the staff collection for a
// plaintext credential match; the result is persisted to the durable side
// channel and restored on process start without re-validation.
type Session struct {
	mu      sync.Mutex
	client  Client[domain.Funcionario]
	channel session.Channel

	authenticated bool
	identity      *domain.Identity
	loading       bool
	err           error
}

// NewSession builds the session container over the staff collection
// client and the durable side channel.
func NewSession(client Client[domain.Funcionario], channel session.Channel) *Session {
	return &Session{client: client, channel: channel}
}

// Login fetches the full staff collection and scans for the first record
// whose email and password both match. Credential mismatches and
// transport failures surface as the same fixed error.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	funcionarios, err := s.client.ListAll(ctx)
	var match *domain.Funcionario
	if err == nil {
		for i := range funcionarios {
			if funcionarios[i].Email == email && funcionarios[i].Password == password {
				match = &funcionarios[i]
				break
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if match == nil {
		s.authenticated = false
		s.identity = nil
		s.err = ErrInvalidCredentials
		return false
	}
	identity := domain.Identity{
		ID:          match.ID,
		FullName:    match.FullName,
		Email:       match.Email,
		Role:        match.Role,
		Permissions: match.Permissions,
	}
	if identity.Permissions == nil {
		identity.Permissions = []string{}
	}
	s.authenticated = true
	s.identity = &identity
	s.persist(identity)
	return true
}

// Logout clears the session and removes the persisted keys.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.identity = nil
	s.err = nil
	_ = s.channel.Delete(session.KeyAuthenticated)
	_ = s.channel.Delete(session.KeyIdentity)
}

// Restore reads the persisted keys. Both must be present; the identity is
// trusted as stored, with no re-validation against the record store.
func (s *Session) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	flag, ok := s.channel.Get(session.KeyAuthenticated)
	if !ok || flag != "true" {
		return
	}
	raw, ok := s.channel.Get(session.KeyIdentity)
	if !ok {
		return
	}
	var identity domain.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return
	}
	s.authenticated = true
	s.identity = &identity
}

// ClearError clears the error slot.
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := SessionSnapshot{
		Authenticated: s.authenticated,
		Loading:       s.loading,
	}
	if s.err != nil {
		snap.Err = s.err.Error()
	}
	if s.identity != nil {
		id := *s.identity
		snap.Identity = &id
	}
	return snap
}

func (s *Session) persist(identity domain.Identity) {
	raw, err := json.Marshal(identity)
	if err != nil {
		return
	}
	_ = s.channel.Set(session.KeyAuthenticated, "true")
	_ = s.channel.Set(session.KeyIdentity, string(raw))
}
