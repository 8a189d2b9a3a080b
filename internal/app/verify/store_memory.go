package verify

import (
	"context"
	"sync"
)

// MemoryStore is the in-process challenge store. Challenge state is
// process-lifetime only, which is all the widget requires.
type MemoryStore struct {
	mu         sync.RWMutex
	challenges map[string]Record
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{challenges: make(map[string]Record)}
}

// Set writes the live challenge for a guest, superseding any prior record.
func (s *MemoryStore) Set(ctx context.Context, guestID string, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[guestID] = rec
	return nil
}

// Get returns the live challenge for a guest, or ErrNoChallenge.
func (s *MemoryStore) Get(ctx context.Context, guestID string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.challenges[guestID]
	if !ok {
		return Record{}, ErrNoChallenge
	}
	return rec, nil
}

// Clear removes the live challenge for a guest.
func (s *MemoryStore) Clear(ctx context.Context, guestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, guestID)
	return nil
}
