package session

import (
	"sync"
	"time"
)

// Store abstracts session persistence so a shared store can replace the
// in-memory map if the site ever runs more than one instance.
type Store interface {
	Put(s Session)
	Get(token string) (Session, bool)
	Delete(token string)
}

// MemoryStore is a mutex-guarded in-process session map. There is no expiry
// sweep; expired entries are deleted lazily when looked up.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Put(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
}

func (m *MemoryStore) Get(token string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	return s, ok
}

func (m *MemoryStore) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// timeNow is a variable for testability.
var timeNow = time.Now
