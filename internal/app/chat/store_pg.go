package chat

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSessionStore is the PostgreSQL-backed session store.
type PGSessionStore struct {
	pool *pgxpool.Pool
}

// NewPGSessionStore constructs a PGSessionStore on top of an initialized connection pool.
func NewPGSessionStore(pool *pgxpool.Pool) *PGSessionStore {
	return &PGSessionStore{pool: pool}
}

// FindLatestByGuest returns the guest's most recently created session.
func (s *PGSessionStore) FindLatestByGuest(ctx context.Context, guestID string) (*Session, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, guest_id, created_at
		 FROM chat_sessions
		 WHERE guest_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1`,
		guestID,
	)

	var session Session
	if err := row.Scan(&session.ID, &session.GuestID, &session.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	return &session, nil
}

// Insert persists a new session.
func (s *PGSessionStore) Insert(ctx context.Context, session *Session) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO chat_sessions (id, guest_id, created_at)
		 VALUES ($1, $2, $3)`,
		session.ID, session.GuestID, session.CreatedAt,
	)
	return err
}

// PGMessageStore is the PostgreSQL-backed transcript store.
type PGMessageStore struct {
	pool *pgxpool.Pool
}

// NewPGMessageStore constructs a PGMessageStore on top of an initialized connection pool.
func NewPGMessageStore(pool *pgxpool.Pool) *PGMessageStore {
	return &PGMessageStore{pool: pool}
}

// Insert appends one message. The seq identity column assigns the
// insertion-order tiebreak server-side.
func (s *PGMessageStore) Insert(ctx context.Context, m *Message) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO chat_messages (id, session_id, sender, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.SessionID, string(m.Sender), m.Text, m.CreatedAt,
	)
	return err
}

// ListBySession returns the session's messages ordered by created_at
// ascending, with the seq column breaking timestamp ties in insertion order.
func (s *PGMessageStore) ListBySession(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, session_id, sender, body, created_at
		 FROM chat_messages
		 WHERE session_id = $1
		 ORDER BY created_at ASC, seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var sender string
		if err := rows.Scan(&m.ID, &m.SessionID, &sender, &m.Text, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Sender = Sender(sender)
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
