/*
Package chat contains the session and transcript model of the support widget.

A verified guest owns at most one live session (the most recently created
one), and each session carries an append-only, time-ordered transcript of
guest and bot messages. This file defines the data structures and the store
contracts; the Manager in manager.go implements the lifecycle rules.
*/
package chat

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoSession is returned when a guest has no chat session yet.
	ErrNoSession = errors.New("no chat session for guest")

	// ErrSessionNotFound is returned when a session id does not resolve.
	ErrSessionNotFound = errors.New("chat session not found")
)

// Sender identifies the author side of a transcript message.
type Sender string

const (
	// SenderGuest marks a message typed by the website visitor.
	SenderGuest Sender = "guest"

	// SenderBot marks a canned reply appended by the matcher.
	SenderBot Sender = "bot"
)

// Session is the container for one guest's ongoing chat transcript.
type Session struct {
	// ID is the opaque session token.
	ID string `json:"id"`

	// GuestID references the verified guest who owns the session.
	GuestID string `json:"guestId"`

	// CreatedAt records when the session was opened.
	CreatedAt time.Time `json:"createdAt"`
}

// Message is one immutable transcript entry.
type Message struct {
	// ID is the server-assigned message identifier.
	ID string `json:"id"`

	// SessionID references the owning session.
	SessionID string `json:"sessionId"`

	// Sender is who authored the message (guest or bot).
	Sender Sender `json:"sender"`

	// Text is the message body.
	Text string `json:"text"`

	// CreatedAt is the server-assigned timestamp. Transcript order is
	// CreatedAt ascending with ties broken by insertion order.
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStore is the persistence contract for chat sessions.
type SessionStore interface {
	// FindLatestByGuest returns the guest's most recently created session,
	// or ErrNoSession when the guest has none.
	FindLatestByGuest(ctx context.Context, guestID string) (*Session, error)

	// Insert persists a new session.
	Insert(ctx context.Context, s *Session) error
}

// MessageStore is the persistence contract for the append-only transcript.
// No update or delete operations exist; messages are immutable once written.
type MessageStore interface {
	// Insert appends one message.
	Insert(ctx context.Context, m *Message) error

	// ListBySession returns the session's messages ordered by CreatedAt
	// ascending, insertion order on ties.
	ListBySession(ctx context.Context, sessionID string) ([]Message, error)
}
