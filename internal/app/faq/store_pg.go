package faq

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore reads FAQ entries from the content dashboard's PostgreSQL tables.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore constructs a PGStore on top of an initialized connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// ListActive returns all active entries ordered by priority descending.
// The id tiebreak keeps the order stable across reloads.
func (s *PGStore) ListActive(ctx context.Context) ([]Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, keywords, response, COALESCE(follow_up, '{}'::jsonb), category, priority, is_active
		 FROM faq_entries
		 WHERE is_active
		 ORDER BY priority DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Keywords, &e.Response, &e.FollowUp, &e.Category, &e.Priority, &e.Active); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
