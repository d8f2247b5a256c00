package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog/log"
)

// Manager owns the live sessions. Idle sessions expire after the TTL and the
// least recently used ones are evicted beyond the size limit.
type Manager struct {
	ctx      context.Context
	deps     Dependencies
	opts     Options
	sessions *expirable.LRU[string, *Session]
}

// NewManager creates a session manager. ctx bounds every debounced lookup.
func NewManager(ctx context.Context, deps Dependencies, opts Options, size int, ttl time.Duration) *Manager {
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = 15 * time.Second
	}
	onEvict := func(id string, s *Session) {
		s.Close()
		log.Debug().Str("session", id).Msg("session closed")
	}
	return &Manager{
		ctx:      ctx,
		deps:     deps,
		opts:     opts,
		sessions: expirable.NewLRU[string, *Session](size, onEvict, ttl),
	}
}

// Create starts a new empty session.
func (m *Manager) Create() *Session {
	s := newSession(m.ctx, uuid.NewString(), m.deps, m.opts)
	m.sessions.Add(s.ID, s)
	return s
}

// Get returns a live session and refreshes its expiry.
func (m *Manager) Get(id string) (*Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("session: %w: %s", ErrSessionNotFound, id)
	}
	m.sessions.Add(id, s)
	return s, nil
}

// Delete closes and forgets a session.
func (m *Manager) Delete(id string) bool {
	return m.sessions.Remove(id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}
