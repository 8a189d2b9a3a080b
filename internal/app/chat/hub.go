/*
Package chat contains the session and transcript model of the support widget.

This file defines the TranscriptHub, the notification channel between message
persistence and the widget UI. Subscribers receive every message appended to
their session; matching and persistence stay free of any rendering concern.
*/
package chat

import (
	"sync"

	"supportchat/internal/pkg/logx"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber that
// falls this far behind starts losing frames; the widget re-fetches the full
// transcript on reconnect, so dropped frames are cosmetic.
const subscriberBuffer = 16

// TranscriptHub fan-outs transcript-changed notifications per session.
type TranscriptHub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Message]struct{}
}

// NewTranscriptHub constructs an empty TranscriptHub.
func NewTranscriptHub() *TranscriptHub {
	return &TranscriptHub{subs: make(map[string]map[chan Message]struct{})}
}

// Subscribe registers a listener for one session's transcript changes.
// It returns the receive channel and a cancel function that must be called
// exactly once when the listener goes away.
func (h *TranscriptHub) Subscribe(sessionID string) (<-chan Message, func()) {
	ch := make(chan Message, subscriberBuffer)

	h.mu.Lock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[chan Message]struct{})
	}
	h.subs[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[sessionID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, sessionID)
			}
		}
		h.mu.Unlock()
	}

	return ch, cancel
}

// Publish delivers an appended message to every subscriber of its session.
// Delivery is non-blocking: a full subscriber loses the frame rather than
// stalling the send flow.
func (h *TranscriptHub) Publish(m Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[m.SessionID] {
		select {
		case ch <- m:
		default:
			logx.Warn("Transcript subscriber channel full, dropping frame.", "session_id", m.SessionID)
		}
	}
}
