package session

import "sync"

// MemoryStore keeps the session in process memory only. Used in tests
// and as the fallback when no durable state directory is usable.
type MemoryStore struct {
	mu  sync.RWMutex
	cur Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = s
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = Session{}
	return nil
}

func (m *MemoryStore) Read() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return normalize(m.cur)
}
