/*
Package guest manages the identity of website visitors who open the support chat.

A guest is identified by email address (the natural key, compared case-insensitively)
and carries a verified flag that flips to true once the emailed code is confirmed.
This file defines the Guest struct, the Store contract, and email normalization.
*/
package guest

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no guest exists for the given lookup key.
	ErrNotFound = errors.New("guest not found")

	// ErrDuplicateEmail is returned by Store.Insert when another guest already
	// owns the email address. FindOrCreate treats it as a lost race and re-fetches.
	ErrDuplicateEmail = errors.New("guest email already exists")

	// ErrInvalidEmail is returned for malformed email input, before any store call.
	ErrInvalidEmail = errors.New("invalid email address")
)

// Guest represents an unauthenticated website visitor identified by email for chat purposes.
type Guest struct {
	// ID is the unique identifier assigned when the guest record is first created.
	ID string `json:"id"`

	// Email is the guest's normalized (lowercased, trimmed) email address.
	Email string `json:"email"`

	// DisplayName is the optional name the visitor typed into the widget.
	DisplayName string `json:"displayName,omitempty"`

	// Verified reports whether the guest has confirmed ownership of the email.
	// It transitions false to true exactly once and is never reset here.
	Verified bool `json:"verified"`

	// CreatedAt records when the guest record was first created.
	CreatedAt time.Time `json:"createdAt"`
}

// Store is the persistence contract the registry depends on.
type Store interface {
	// FindByEmail looks up a guest by normalized email. Returns ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*Guest, error)

	// Insert persists a new guest record. Returns ErrDuplicateEmail when the
	// email natural key is already taken.
	Insert(ctx context.Context, g *Guest) error

	// SetVerified flips the verified flag to true for the given guest id.
	// Setting an already-verified guest is a no-op.
	SetVerified(ctx context.Context, id string) error
}

// NormalizeEmail lowercases and trims the raw input and validates its shape.
// Returns ErrInvalidEmail for anything net/mail refuses to parse.
func NormalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}

	return email, nil
}
