package chat_test

import (
	"context"
	"testing"

	"supportchat/internal/app/chat"
)

func newManager() *chat.Manager {
	return chat.NewManager(chat.NewMemorySessionStore(), chat.NewMemoryMessageStore())
}

func TestGetOrCreateReturnsOneSession(t *testing.T) {
	ctx := context.Background()
	manager := newManager()

	first, err := manager.GetOrCreate(ctx, "guest-1")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected a session token, got empty")
	}

	// Repeated calls must keep returning the same session.
	for i := 0; i < 5; i++ {
		again, err := manager.GetOrCreate(ctx, "guest-1")
		if err != nil {
			t.Fatalf("GetOrCreate failed: %v", err)
		}
		if again.ID != first.ID {
			t.Fatalf("GetOrCreate returned a second session %q, want %q", again.ID, first.ID)
		}
	}
}

func TestGetOrCreateSeparatesGuests(t *testing.T) {
	ctx := context.Background()
	manager := newManager()

	a, err := manager.GetOrCreate(ctx, "guest-a")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	b, err := manager.GetOrCreate(ctx, "guest-b")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("two guests received the same session")
	}
}

func TestTranscriptOrdering(t *testing.T) {
	ctx := context.Background()
	manager := newManager()

	session, err := manager.GetOrCreate(ctx, "guest-1")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	// A brand-new session has a valid, empty transcript.
	empty, err := manager.ListMessages(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("new session transcript has %d messages, want 0", len(empty))
	}

	texts := []string{"M1", "M2", "M3"}
	senders := []chat.Sender{chat.SenderGuest, chat.SenderBot, chat.SenderGuest}
	for i, text := range texts {
		if _, err := manager.Append(ctx, session.ID, senders[i], text); err != nil {
			t.Fatalf("Append(%q) failed: %v", text, err)
		}
	}

	messages, err := manager.ListMessages(ctx, session.ID)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != len(texts) {
		t.Fatalf("transcript has %d messages, want %d", len(messages), len(texts))
	}
	for i, m := range messages {
		if m.Text != texts[i] {
			t.Fatalf("transcript[%d] = %q, want %q", i, m.Text, texts[i])
		}
		if m.Sender != senders[i] {
			t.Fatalf("transcript[%d] sender = %q, want %q", i, m.Sender, senders[i])
		}
		if m.ID == "" || m.SessionID != session.ID || m.CreatedAt.IsZero() {
			t.Fatalf("transcript[%d] missing server-assigned fields: %+v", i, m)
		}
	}
}

func TestHubPublishAndSubscribe(t *testing.T) {
	hub := chat.NewTranscriptHub()

	ch, cancel := hub.Subscribe("session-1")
	defer cancel()

	otherCh, otherCancel := hub.Subscribe("session-2")
	defer otherCancel()

	hub.Publish(chat.Message{ID: "m1", SessionID: "session-1", Text: "hello"})

	select {
	case got := <-ch:
		if got.ID != "m1" {
			t.Fatalf("subscriber received %q, want m1", got.ID)
		}
	default:
		t.Fatalf("subscriber did not receive the published message")
	}

	select {
	case got := <-otherCh:
		t.Fatalf("subscriber of another session received %q", got.ID)
	default:
	}
}

func TestHubCancelStopsDelivery(t *testing.T) {
	hub := chat.NewTranscriptHub()

	ch, cancel := hub.Subscribe("session-1")
	cancel()

	hub.Publish(chat.Message{ID: "m1", SessionID: "session-1"})

	select {
	case got := <-ch:
		t.Fatalf("cancelled subscriber received %q", got.ID)
	default:
	}
}
