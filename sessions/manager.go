package sessions

import (
	"sync"
	"time"
)

// Manager hands out per-browser session stores keyed by an opaque session ID.
// Stores that have not been touched within the TTL are evicted lazily on the
// next lookup, so an abandoned login does not hold token material forever.
type Manager struct {
	mu     sync.Mutex
	ttl    time.Duration
	stores map[string]*managedStore
	now    func() time.Time
}

type managedStore struct {
	store    *InMemoryStore
	lastSeen time.Time
}

// NewManager creates a session manager whose stores expire after ttl of
// inactivity.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:    ttl,
		stores: make(map[string]*managedStore),
		now:    time.Now,
	}
}

// Store returns the store for the given session ID, creating it if the ID is
// new or its previous store has expired. Every lookup refreshes the store's
// idle timer.
func (m *Manager) Store(id string) Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()

	entry, ok := m.stores[id]
	if !ok {
		entry = &managedStore{store: NewInMemoryStore()}
		m.stores[id] = entry
	}
	entry.lastSeen = m.now()
	return entry.store
}

// Delete drops the store for the given session ID, if any.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.stores, id)
}

// Len reports the number of live stores.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.stores)
}

func (m *Manager) sweepLocked() {
	cutoff := m.now().Add(-m.ttl)
	for id, entry := range m.stores {
		if entry.lastSeen.Before(cutoff) {
			delete(m.stores, id)
		}
	}
}
