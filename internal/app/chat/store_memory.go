package chat

import (
	"context"
	"sync"
)

// MemorySessionStore is an in-memory session store used in tests and local development.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions []*Session
}

// NewMemorySessionStore constructs an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

// FindLatestByGuest returns the guest's most recently created session.
func (s *MemorySessionStore) FindLatestByGuest(ctx context.Context, guestID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *Session
	for _, session := range s.sessions {
		if session.GuestID != guestID {
			continue
		}
		if latest == nil || session.CreatedAt.After(latest.CreatedAt) {
			latest = session
		}
	}

	if latest == nil {
		return nil, ErrNoSession
	}

	copied := *latest
	return &copied, nil
}

// Insert persists a new session.
func (s *MemorySessionStore) Insert(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.sessions = append(s.sessions, &copied)
	return nil
}

// MemoryMessageStore is an in-memory transcript store used in tests and local
// development. Slice append preserves insertion order, which doubles as the
// timestamp tiebreak.
type MemoryMessageStore struct {
	mu       sync.RWMutex
	messages map[string][]Message
}

// NewMemoryMessageStore constructs an empty MemoryMessageStore.
func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{messages: make(map[string][]Message)}
}

// Insert appends one message.
func (s *MemoryMessageStore) Insert(ctx context.Context, m *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[m.SessionID] = append(s.messages[m.SessionID], *m)
	return nil
}

// ListBySession returns the session's messages in insertion order.
func (s *MemoryMessageStore) ListBySession(ctx context.Context, sessionID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[sessionID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}
