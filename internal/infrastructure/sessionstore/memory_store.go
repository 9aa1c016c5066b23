package sessionstore

import (
	"context"
	"sync"
	"time"

	appsession "github.com/timbermart/backend/internal/application/session"
	"github.com/timbermart/backend/internal/domain/session"
)

// MemorySessionStore is an in-process session store for single-instance
// deployments and tests. State does not survive a restart and is not shared
// across instances.
type MemorySessionStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	state     *session.State
	expiresAt time.Time
}

// NewMemorySessionStore creates an in-memory session store. A zero TTL
// means entries never expire.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Load returns a copy of the stored state, or a fresh empty state for
// unknown or expired sessions.
func (s *MemorySessionStore) Load(_ context.Context, sessionID string) (*session.State, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok || s.expired(entry) {
		return session.NewState(), nil
	}

	// Copy so callers never share slices with the stored state
	state := session.State{
		Cart:      append(session.Cart{}, entry.state.Cart...),
		Favorites: append(session.Favorites{}, entry.state.Favorites...),
	}
	return &state, nil
}

// Save stores the state and refreshes the session's expiry
func (s *MemorySessionStore) Save(_ context.Context, sessionID string, state *session.State) error {
	stored := session.State{
		Cart:      append(session.Cart{}, state.Cart...),
		Favorites: append(session.Favorites{}, state.Favorites...),
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[sessionID] = memoryEntry{state: &stored, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

// Purge removes expired sessions and reports how many were dropped
func (s *MemorySessionStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, entry := range s.entries {
		if s.expired(entry) {
			delete(s.entries, id)
			purged++
		}
	}
	return purged
}

func (s *MemorySessionStore) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt)
}

var _ appsession.SessionStore = (*MemorySessionStore)(nil)
