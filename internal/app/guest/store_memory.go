package guest

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory guest store used in tests and local development.
type MemoryStore struct {
	mu     sync.RWMutex
	guests map[string]*Guest // keyed by lowercased email
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{guests: make(map[string]*Guest)}
}

// FindByEmail looks up a guest by its case-insensitive email natural key.
func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.guests[strings.ToLower(email)]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *g
	return &copied, nil
}

// Insert persists a new guest record, enforcing the email natural key.
func (s *MemoryStore) Insert(ctx context.Context, g *Guest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(g.Email)
	if _, exists := s.guests[key]; exists {
		return ErrDuplicateEmail
	}

	g.CreatedAt = time.Now().UTC()
	copied := *g
	s.guests[key] = &copied
	return nil
}

// SetVerified flips the verified flag to true for the given guest id.
func (s *MemoryStore) SetVerified(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, g := range s.guests {
		if g.ID == id {
			g.Verified = true
			return nil
		}
	}

	return ErrNotFound
}
