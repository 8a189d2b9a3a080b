package verify_test

import (
	"context"
	"testing"
	"time"

	"supportchat/internal/app/verify"
	"supportchat/internal/pkg/randx"
)

func newChallenger() *verify.Challenger {
	return verify.NewChallenger(verify.NewMemoryStore(), 0)
}

func TestIssueAndCheck(t *testing.T) {
	ctx := context.Background()
	c := newChallenger()

	code, err := c.Issue(ctx, "guest-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if !randx.IsValidVerificationCode(code) {
		t.Fatalf("issued code %q is not a 6-digit numeric code", code)
	}

	if err := c.Check(ctx, "guest-1", code); err != nil {
		t.Fatalf("Check with correct code failed: %v", err)
	}
}

func TestCheckClearsChallengeOnSuccess(t *testing.T) {
	ctx := context.Background()
	c := newChallenger()

	code, err := c.Issue(ctx, "guest-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if err := c.Check(ctx, "guest-1", code); err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	// Replaying the used code must fail: the challenge is gone.
	if err := c.Check(ctx, "guest-1", code); err != verify.ErrNoChallenge {
		t.Fatalf("replayed code error = %v, want ErrNoChallenge", err)
	}
}

func TestCheckMismatchKeepsChallengeLive(t *testing.T) {
	ctx := context.Background()
	c := newChallenger()

	code, err := c.Issue(ctx, "guest-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	// Unlimited retries: several mismatches never consume the code.
	for i := 0; i < 3; i++ {
		if err := c.Check(ctx, "guest-1", wrong); err != verify.ErrMismatch {
			t.Fatalf("mismatch error = %v, want ErrMismatch", err)
		}
	}

	if err := c.Check(ctx, "guest-1", code); err != nil {
		t.Fatalf("correct code after mismatches failed: %v", err)
	}
}

func TestCheckWithoutChallenge(t *testing.T) {
	ctx := context.Background()
	c := newChallenger()

	if err := c.Check(ctx, "guest-unknown", "123456"); err != verify.ErrNoChallenge {
		t.Fatalf("Check without issue error = %v, want ErrNoChallenge", err)
	}
}

func TestIssueSupersedesPriorCode(t *testing.T) {
	ctx := context.Background()
	c := newChallenger()

	first, err := c.Issue(ctx, "guest-1")
	if err != nil {
		t.Fatalf("first Issue failed: %v", err)
	}

	second, err := c.Issue(ctx, "guest-1")
	if err != nil {
		t.Fatalf("second Issue failed: %v", err)
	}

	if first != second {
		// The superseded code must no longer verify.
		if err := c.Check(ctx, "guest-1", first); err != verify.ErrMismatch {
			t.Fatalf("superseded code error = %v, want ErrMismatch", err)
		}
	}

	if err := c.Check(ctx, "guest-1", second); err != nil {
		t.Fatalf("latest code failed to verify: %v", err)
	}
}

func TestIssueResendWindow(t *testing.T) {
	ctx := context.Background()
	c := verify.NewChallenger(verify.NewMemoryStore(), time.Hour)

	if _, err := c.Issue(ctx, "guest-1"); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := c.Issue(ctx, "guest-1"); err != verify.ErrResendTooSoon {
		t.Fatalf("immediate re-issue error = %v, want ErrResendTooSoon", err)
	}
}
