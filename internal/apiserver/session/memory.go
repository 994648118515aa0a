package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arachchispices/spicestore/internal/common/errorx"
)

type memoryEntry struct {
	principal Principal
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Expired entries are
// dropped lazily on read and swept periodically.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	done     chan struct{}
	once     sync.Once
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory session store and starts its
// cleanup loop.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		done:     make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, entry := range s.sessions {
				if now.After(entry.expiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// Create stores the principal under a fresh random session ID.
func (s *MemoryStore) Create(_ context.Context, p *Principal, ttl time.Duration) (string, error) {
	id := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{
		principal: *p,
		expiresAt: time.Now().Add(ttl),
	}
	return id, nil
}

// Get returns the principal for the given session ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*Principal, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, errorx.ErrNoSession
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, errorx.ErrNoSession
	}
	p := entry.principal
	return &p, nil
}

// Delete removes the session if present.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close stops the cleanup loop.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}
