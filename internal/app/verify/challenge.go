/*
Package verify implements the one-time numeric code gate in front of the support chat.

A challenge is a 6-digit code tied to a guest. Issuing a new code supersedes any
prior one; a successful check clears the live challenge so a used code cannot be
replayed; a mismatch leaves the code live for retries. Codes are hashed with
bcrypt before they reach the store, so neither Redis nor process memory ever
holds a plaintext code.

Codes never expire and retries are not limited. That mirrors the documented
widget behavior; the Redis store applies only a generous storage TTL as a
safety bound on abandoned keys.
*/
package verify

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"supportchat/internal/pkg/randx"
)

var (
	// ErrNoChallenge is returned when a check or lookup finds no live challenge
	// for the guest. Recoverable; the client should prompt a re-issue.
	ErrNoChallenge = errors.New("no live verification challenge")

	// ErrMismatch is returned when the submitted code does not equal the live
	// code. The challenge stays live; the visitor may retry.
	ErrMismatch = errors.New("verification code mismatch")

	// ErrResendTooSoon is returned when a new code is requested inside the
	// resend window of the previous issue.
	ErrResendTooSoon = errors.New("verification code requested too soon")
)

// DefaultResendWindow is the minimum spacing between two issued codes per guest.
const DefaultResendWindow = time.Minute

// Record is the stored state of one live challenge.
type Record struct {
	// CodeHash is the bcrypt hash of the issued 6-digit code.
	CodeHash string `json:"codeHash"`

	// IssuedAt records when the code was generated.
	IssuedAt time.Time `json:"issuedAt"`
}

// Store is the keyed ephemeral store (guest id -> live challenge) the
// challenger depends on. Implementations may be in-process or Redis-backed;
// no persistence across restarts is required.
type Store interface {
	// Set writes the live challenge for a guest, superseding any prior record.
	Set(ctx context.Context, guestID string, rec Record) error

	// Get returns the live challenge for a guest, or ErrNoChallenge.
	Get(ctx context.Context, guestID string) (Record, error)

	// Clear removes the live challenge for a guest. Clearing an absent
	// challenge is not an error.
	Clear(ctx context.Context, guestID string) error
}

// Challenger issues and checks verification codes.
type Challenger struct {
	store        Store
	resendWindow time.Duration
}

// NewChallenger constructs a Challenger. A non-positive resendWindow disables
// resend throttling (used by tests).
func NewChallenger(store Store, resendWindow time.Duration) *Challenger {
	return &Challenger{store: store, resendWindow: resendWindow}
}

// Issue generates a fresh 6-digit code for the guest and stores its hash,
// superseding any previously issued code. The plaintext code is returned to
// the caller exactly once, for delivery to the guest's mailbox.
func (c *Challenger) Issue(ctx context.Context, guestID string) (string, error) {
	if c.resendWindow > 0 {
		prior, err := c.store.Get(ctx, guestID)
		if err == nil && time.Since(prior.IssuedAt) < c.resendWindow {
			return "", ErrResendTooSoon
		}
		if err != nil && err != ErrNoChallenge {
			return "", err
		}
	}

	code, err := randx.VerificationCode()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	rec := Record{
		CodeHash: string(hash),
		IssuedAt: time.Now().UTC(),
	}

	if err := c.store.Set(ctx, guestID, rec); err != nil {
		return "", err
	}

	return code, nil
}

// Check compares the submitted code against the guest's live challenge.
// On a match the live challenge is cleared, so replaying a used code fails
// with ErrNoChallenge. On a mismatch the challenge is left untouched and
// ErrMismatch is returned; the caller may retry without limit.
//
// Check never mutates guest state: flipping the verified flag is the
// caller's responsibility.
func (c *Challenger) Check(ctx context.Context, guestID, submitted string) error {
	rec, err := c.store.Get(ctx, guestID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(submitted)) != nil {
		return ErrMismatch
	}

	return c.store.Clear(ctx, guestID)
}
