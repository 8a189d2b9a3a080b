package widget_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"supportchat/internal/app/chat"
	"supportchat/internal/app/faq"
	"supportchat/internal/app/guest"
	"supportchat/internal/app/match"
	"supportchat/internal/app/verify"
	"supportchat/internal/app/widget"
)

// captureMailer records issued codes instead of sending mail.
type captureMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{codes: make(map[string]string)}
}

func (m *captureMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = code
	return nil
}

func (m *captureMailer) codeFor(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

type fixture struct {
	service *widget.Service
	mailer  *captureMailer
	hub     *chat.TranscriptHub
}

func newFixture(t *testing.T, entries []faq.Entry, replyDelay time.Duration) *fixture {
	t.Helper()

	catalog := faq.NewCatalog(staticFaqStore(entries))
	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("catalog load failed: %v", err)
	}

	mailer := newCaptureMailer()
	hub := chat.NewTranscriptHub()

	service := widget.NewService(
		guest.NewRegistry(guest.NewMemoryStore()),
		verify.NewChallenger(verify.NewMemoryStore(), 0),
		chat.NewManager(chat.NewMemorySessionStore(), chat.NewMemoryMessageStore()),
		catalog,
		hub,
		mailer,
		"en",
		replyDelay,
	)
	t.Cleanup(service.Close)

	return &fixture{service: service, mailer: mailer, hub: hub}
}

type staticFaqStore []faq.Entry

func (s staticFaqStore) ListActive(ctx context.Context) ([]faq.Entry, error) {
	return s, nil
}

// verifyGuest walks a fresh guest through the email and code steps.
func (f *fixture) verifyGuest(t *testing.T, email string) *widget.EmailResult {
	t.Helper()
	ctx := context.Background()

	pending, err := f.service.SubmitEmail(ctx, email, "Test Visitor")
	if err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}
	if pending.Status != widget.StatusPending {
		t.Fatalf("SubmitEmail status = %q, want pending", pending.Status)
	}

	code := f.mailer.codeFor(strings.ToLower(email))
	if code == "" {
		t.Fatalf("no verification code was delivered for %q", email)
	}

	verified, err := f.service.SubmitCode(ctx, email, code)
	if err != nil {
		t.Fatalf("SubmitCode failed: %v", err)
	}
	if verified.Status != widget.StatusVerified {
		t.Fatalf("SubmitCode status = %q, want verified", verified.Status)
	}
	if verified.Session == nil || verified.Session.ID == "" {
		t.Fatalf("SubmitCode did not open a chat session")
	}

	return verified
}

func TestVerificationFlow(t *testing.T) {
	f := newFixture(t, nil, time.Millisecond)
	ctx := context.Background()

	verified := f.verifyGuest(t, "visitor@example.com")
	if !verified.Guest.Verified {
		t.Fatalf("guest not marked verified after code acceptance")
	}

	// A verified guest re-opening the widget skips the challenge and gets
	// the same session back.
	again, err := f.service.SubmitEmail(ctx, "visitor@example.com", "")
	if err != nil {
		t.Fatalf("second SubmitEmail failed: %v", err)
	}
	if again.Status != widget.StatusVerified {
		t.Fatalf("second SubmitEmail status = %q, want verified", again.Status)
	}
	if again.Session.ID != verified.Session.ID {
		t.Fatalf("verified guest received a different session")
	}
}

func TestSubmitCodeRejectsWrongCode(t *testing.T) {
	f := newFixture(t, nil, time.Millisecond)
	ctx := context.Background()

	if _, err := f.service.SubmitEmail(ctx, "visitor@example.com", ""); err != nil {
		t.Fatalf("SubmitEmail failed: %v", err)
	}

	code := f.mailer.codeFor("visitor@example.com")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	if _, err := f.service.SubmitCode(ctx, "visitor@example.com", wrong); err != verify.ErrMismatch {
		t.Fatalf("wrong code error = %v, want ErrMismatch", err)
	}

	// The mismatch left the real code live.
	if _, err := f.service.SubmitCode(ctx, "visitor@example.com", code); err != nil {
		t.Fatalf("correct code after mismatch failed: %v", err)
	}
}

func TestSubmitCodeWithoutChallenge(t *testing.T) {
	f := newFixture(t, nil, time.Millisecond)

	if _, err := f.service.SubmitCode(context.Background(), "fresh@example.com", "123456"); err != verify.ErrNoChallenge {
		t.Fatalf("code check without challenge error = %v, want ErrNoChallenge", err)
	}
}

func TestSendMessageAppendsGuestAndBotReply(t *testing.T) {
	entries := []faq.Entry{{
		ID:       "refund",
		Keywords: []string{"refund", "money back"},
		Response: faq.LocaleText{"en": "Refunds take 5 business days."},
		Category: "billing",
		Priority: 2,
		Active:   true,
	}}
	f := newFixture(t, entries, time.Millisecond)
	ctx := context.Background()

	verified := f.verifyGuest(t, "visitor@example.com")
	sessionID := verified.Session.ID

	frames, cancel := f.hub.Subscribe(sessionID)
	defer cancel()

	guestMsg, err := f.service.SendMessage(ctx, sessionID, "how do I get my money back", "en")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if guestMsg.Sender != chat.SenderGuest {
		t.Fatalf("first appended message sender = %q, want guest", guestMsg.Sender)
	}

	botMsg := waitForSender(t, frames, chat.SenderBot)
	if botMsg.Text != "Refunds take 5 business days." {
		t.Fatalf("bot reply = %q, want the refund response", botMsg.Text)
	}

	transcript, err := f.service.Transcript(ctx, sessionID)
	if err != nil {
		t.Fatalf("Transcript failed: %v", err)
	}
	if len(transcript) != 2 {
		t.Fatalf("transcript has %d messages, want 2", len(transcript))
	}
	if transcript[0].Sender != chat.SenderGuest || transcript[1].Sender != chat.SenderBot {
		t.Fatalf("transcript order wrong: %q then %q", transcript[0].Sender, transcript[1].Sender)
	}
}

func TestSendMessageEscalation(t *testing.T) {
	f := newFixture(t, nil, time.Millisecond)
	ctx := context.Background()

	verified := f.verifyGuest(t, "visitor@example.com")
	frames, cancel := f.hub.Subscribe(verified.Session.ID)
	defer cancel()

	if _, err := f.service.SendMessage(ctx, verified.Session.ID, "I want to talk to a human", "en"); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	botMsg := waitForSender(t, frames, chat.SenderBot)
	want := match.Match("I want to talk to a human", nil, "en", "en").Text
	if botMsg.Text != want {
		t.Fatalf("escalation reply = %q, want the fixed agent-request response", botMsg.Text)
	}
}

func TestSendMessageValidation(t *testing.T) {
	f := newFixture(t, nil, time.Millisecond)
	ctx := context.Background()

	verified := f.verifyGuest(t, "visitor@example.com")

	if _, err := f.service.SendMessage(ctx, verified.Session.ID, "   ", "en"); err != widget.ErrEmptyMessage {
		t.Fatalf("blank message error = %v, want ErrEmptyMessage", err)
	}

	long := strings.Repeat("x", widget.MaxMessageRunes+1)
	if _, err := f.service.SendMessage(ctx, verified.Session.ID, long, "en"); err != widget.ErrMessageTooLong {
		t.Fatalf("oversized message error = %v, want ErrMessageTooLong", err)
	}
}

func TestSendMessageSerializedPerSession(t *testing.T) {
	f := newFixture(t, nil, 150*time.Millisecond)
	ctx := context.Background()

	verified := f.verifyGuest(t, "visitor@example.com")
	sessionID := verified.Session.ID

	frames, cancel := f.hub.Subscribe(sessionID)
	defer cancel()

	if _, err := f.service.SendMessage(ctx, sessionID, "first question", "en"); err != nil {
		t.Fatalf("first SendMessage failed: %v", err)
	}

	// A second send while the bot reply is pending must be rejected.
	if _, err := f.service.SendMessage(ctx, sessionID, "second question", "en"); err != widget.ErrReplyPending {
		t.Fatalf("concurrent send error = %v, want ErrReplyPending", err)
	}

	waitForSender(t, frames, chat.SenderBot)

	// Once the reply landed the session accepts sends again.
	if _, err := f.service.SendMessage(ctx, sessionID, "second question", "en"); err != nil {
		t.Fatalf("send after reply failed: %v", err)
	}
}

// waitForSender drains hub frames until a message from the wanted sender
// arrives or the test times out.
func waitForSender(t *testing.T, frames <-chan chat.Message, want chat.Sender) chat.Message {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case m := <-frames:
			if m.Sender == want {
				return m
			}
		case <-deadline:
			t.Fatalf("timed out waiting for a %q message", want)
		}
	}
}
