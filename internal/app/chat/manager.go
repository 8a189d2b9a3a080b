/*
Package chat contains the session and transcript model of the support widget.

This file defines the Manager, which enforces session singularity per guest
and owns all transcript reads and appends.
*/
package chat

import (
	"context"
	"time"

	"supportchat/internal/pkg/logx"
	"supportchat/internal/pkg/randx"
)

// Manager obtains and creates chat sessions and maintains their transcripts.
type Manager struct {
	sessions SessionStore
	messages MessageStore
}

// NewManager constructs a Manager over the given stores.
func NewManager(sessions SessionStore, messages MessageStore) *Manager {
	return &Manager{sessions: sessions, messages: messages}
}

// GetOrCreate returns the guest's latest session, creating one only when the
// guest has none. A guest never ends up with two live sessions from this
// path; that would fragment the transcript across containers.
func (m *Manager) GetOrCreate(ctx context.Context, guestID string) (*Session, error) {
	existing, err := m.sessions.FindLatestByGuest(ctx, guestID)
	if err == nil {
		return existing, nil
	}
	if err != ErrNoSession {
		return nil, err
	}

	token, err := randx.SessionToken()
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:        token,
		GuestID:   guestID,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.sessions.Insert(ctx, session); err != nil {
		return nil, err
	}

	logx.Info("Chat session created.", "session_id", session.ID, "guest_id", guestID)
	return session, nil
}

// ListMessages returns the full transcript of a session in ascending time
// order. An empty transcript for a brand-new session is a valid result; the
// widget substitutes a greeting client-side, which is never persisted.
func (m *Manager) ListMessages(ctx context.Context, sessionID string) ([]Message, error) {
	return m.messages.ListBySession(ctx, sessionID)
}

// Append writes one immutable message to the session transcript and returns
// it with its server-assigned id and timestamp.
func (m *Manager) Append(ctx context.Context, sessionID string, sender Sender, text string) (*Message, error) {
	message := &Message{
		ID:        randx.MessageID(),
		SessionID: sessionID,
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.messages.Insert(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}
