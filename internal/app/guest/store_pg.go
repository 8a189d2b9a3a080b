package guest

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"supportchat/internal/app/db"
)

// PGStore is the PostgreSQL-backed guest store.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore constructs a PGStore on top of an initialized connection pool.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// FindByEmail looks up a guest by its case-insensitive email natural key.
func (s *PGStore) FindByEmail(ctx context.Context, email string) (*Guest, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, display_name, verified, created_at
		 FROM guests
		 WHERE lower(email) = lower($1)`,
		email,
	)

	var g Guest
	if err := row.Scan(&g.ID, &g.Email, &g.DisplayName, &g.Verified, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &g, nil
}

// Insert persists a new guest record. A unique-violation on the email index is
// reported as ErrDuplicateEmail so the registry can resolve the creation race.
func (s *PGStore) Insert(ctx context.Context, g *Guest) error {
	g.CreatedAt = time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO guests (id, email, display_name, verified, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.Email, g.DisplayName, g.Verified, g.CreatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

// SetVerified flips the verified flag to true. The one-way transition is
// enforced here: the flag is only ever written as TRUE.
func (s *PGStore) SetVerified(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE guests SET verified = TRUE WHERE id = $1`,
		id,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
