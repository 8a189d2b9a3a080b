/*
Package guest manages the identity of website visitors who open the support chat.

This file defines the Registry, the find-or-create gate in front of the guest store.
*/
package guest

import (
	"context"

	"github.com/google/uuid"

	"supportchat/internal/pkg/logx"
)

// Registry finds or creates guest identities and tracks their verification status.
type Registry struct {
	store Store
}

// NewRegistry constructs a Registry backed by the given store.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// FindOrCreate looks up a guest by email, creating an unverified record when absent.
// Idempotent: calling twice with the same email never creates a duplicate, including
// under a concurrent-insert race (the unique natural key loses the race to a re-fetch).
// Malformed email fails with ErrInvalidEmail before any store call.
func (r *Registry) FindOrCreate(ctx context.Context, rawEmail, displayName string) (*Guest, error) {
	email, err := NormalizeEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	g, err := r.store.FindByEmail(ctx, email)
	if err == nil {
		return g, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	g = &Guest{
		ID:          uuid.New().String(),
		Email:       email,
		DisplayName: displayName,
		Verified:    false,
	}

	if err := r.store.Insert(ctx, g); err != nil {
		if err == ErrDuplicateEmail {
			logx.Warn("guest insert lost creation race, re-fetching", "email_key", email)
			return r.store.FindByEmail(ctx, email)
		}
		return nil, err
	}

	return g, nil
}

// MarkVerified sets the guest's verified flag to true. No-op if already verified.
func (r *Registry) MarkVerified(ctx context.Context, guestID string) error {
	return r.store.SetVerified(ctx, guestID)
}
