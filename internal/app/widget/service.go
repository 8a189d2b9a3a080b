/*
Package widget orchestrates the support-chat flow end to end: the email
verification gate, the session lifecycle, and the matched bot replies.

The Service is transport-agnostic; the HTTP handlers translate its results
and sentinel errors into wire responses, and the TranscriptHub carries
transcript-changed notifications to whatever is rendering the widget.
*/
package widget

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"supportchat/internal/app/chat"
	"supportchat/internal/app/faq"
	"supportchat/internal/app/guest"
	"supportchat/internal/app/match"
	"supportchat/internal/app/notify"
	"supportchat/internal/app/verify"
	"supportchat/internal/pkg/logx"
)

const (
	// MaxMessageRunes caps the length of one visitor message.
	MaxMessageRunes = 2000

	// botAppendTimeout bounds the store calls of a scheduled bot reply. The
	// reply runs detached from the originating request, so it carries its
	// own deadline instead of the request context's.
	botAppendTimeout = 10 * time.Second
)

var (
	// ErrEmptyMessage is returned for blank message input, before any store call.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrMessageTooLong is returned when the message exceeds MaxMessageRunes.
	ErrMessageTooLong = errors.New("message is too long")

	// ErrReplyPending is returned while a prior message's bot reply is still
	// being computed for the session. Sends are serialized per session.
	ErrReplyPending = errors.New("bot reply still pending for session")
)

// Verification flow statuses returned by SubmitEmail.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
)

// Service wires the guest registry, challenge gate, session manager, FAQ
// catalog, and matcher into the widget's three UI operations.
type Service struct {
	guests     *guest.Registry
	challenger *verify.Challenger
	sessions   *chat.Manager
	catalog    *faq.Catalog
	hub        *chat.TranscriptHub
	mailer     notify.Mailer

	defaultLocale string
	replyDelay    time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
	wg       sync.WaitGroup
}

// NewService constructs the widget Service.
// replyDelay is the artificial "typing" pause before a bot reply is appended.
func NewService(
	guests *guest.Registry,
	challenger *verify.Challenger,
	sessions *chat.Manager,
	catalog *faq.Catalog,
	hub *chat.TranscriptHub,
	mailer notify.Mailer,
	defaultLocale string,
	replyDelay time.Duration,
) *Service {
	return &Service{
		guests:        guests,
		challenger:    challenger,
		sessions:      sessions,
		catalog:       catalog,
		hub:           hub,
		mailer:        mailer,
		defaultLocale: defaultLocale,
		replyDelay:    replyDelay,
		inFlight:      make(map[string]struct{}),
	}
}

// EmailResult is the outcome of SubmitEmail.
type EmailResult struct {
	// Status is StatusPending (code mailed) or StatusVerified (guest already
	// verified, chat open immediately).
	Status string

	// Guest is the found-or-created guest record.
	Guest *guest.Guest

	// Session is set only when Status is StatusVerified.
	Session *chat.Session
}

// SubmitEmail finds or creates the guest for the address and starts the
// verification flow. Already-verified guests skip the challenge entirely and
// get their session back.
func (s *Service) SubmitEmail(ctx context.Context, email, displayName string) (*EmailResult, error) {
	g, err := s.guests.FindOrCreate(ctx, email, displayName)
	if err != nil {
		return nil, err
	}

	if g.Verified {
		session, err := s.sessions.GetOrCreate(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		return &EmailResult{Status: StatusVerified, Guest: g, Session: session}, nil
	}

	code, err := s.challenger.Issue(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationCode(ctx, g.Email, code); err != nil {
		return nil, err
	}

	return &EmailResult{Status: StatusPending, Guest: g}, nil
}

// SubmitCode checks the verification code for the guest behind the email.
// On a match the guest is marked verified and their session is opened. The
// challenge itself never touches the Guest record; the flag flip happens here.
func (s *Service) SubmitCode(ctx context.Context, email, code string) (*EmailResult, error) {
	g, err := s.guests.FindOrCreate(ctx, email, "")
	if err != nil {
		return nil, err
	}

	if err := s.challenger.Check(ctx, g.ID, strings.TrimSpace(code)); err != nil {
		return nil, err
	}

	if err := s.guests.MarkVerified(ctx, g.ID); err != nil {
		return nil, err
	}
	g.Verified = true

	session, err := s.sessions.GetOrCreate(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	return &EmailResult{Status: StatusVerified, Guest: g, Session: session}, nil
}

// Transcript returns the session's messages in transcript order.
func (s *Service) Transcript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	return s.sessions.ListMessages(ctx, sessionID)
}

// SendMessage appends the visitor's message and schedules the matched bot
// reply after the typing delay. The guest message is returned immediately;
// the bot reply arrives through the TranscriptHub.
//
// Sends are serialized per session: while a bot reply is pending the session
// rejects further sends with ErrReplyPending. If the guest append succeeds
// but the bot reply later fails, the guest message stays persisted.
func (s *Service) SendMessage(ctx context.Context, sessionID, text, locale string) (*chat.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxMessageRunes {
		return nil, ErrMessageTooLong
	}

	if locale == "" {
		locale = s.defaultLocale
	}

	if !s.acquireSend(sessionID) {
		return nil, ErrReplyPending
	}

	guestMsg, err := s.sessions.Append(ctx, sessionID, chat.SenderGuest, text)
	if err != nil {
		s.releaseSend(sessionID)
		return nil, err
	}

	s.hub.Publish(*guestMsg)

	s.wg.Add(1)
	go s.replyAfterDelay(sessionID, text, locale)

	return guestMsg, nil
}

// replyAfterDelay computes and persists the bot reply once the typing delay
// elapses. Scheduled replies are fire-and-forget: closing the widget does not
// cancel one, it still completes and persists. Close waits for pending
// replies, so no timer outlives the service.
func (s *Service) replyAfterDelay(sessionID, inputText, locale string) {
	defer s.wg.Done()

	time.Sleep(s.replyDelay)

	result := match.Match(inputText, s.catalog.Entries(), locale, s.defaultLocale)

	ctx, cancel := context.WithTimeout(context.Background(), botAppendTimeout)
	defer cancel()

	botMsg, err := s.sessions.Append(ctx, sessionID, chat.SenderBot, result.Text)

	// The session accepts sends again before the reply frame goes out, so a
	// client reacting to the frame never observes the session as busy.
	s.releaseSend(sessionID)

	if err != nil {
		// The guest message stays in the transcript; only the reply is lost.
		logx.Error(err, "Failed to append bot reply.", "session_id", sessionID, "category", result.Category)
		return
	}

	s.hub.Publish(*botMsg)
}

// Close waits for all scheduled bot replies to finish persisting.
func (s *Service) Close() {
	s.wg.Wait()
}

// acquireSend marks a send in flight for the session. Returns false when one
// is already pending.
func (s *Service) acquireSend(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *Service) releaseSend(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, sessionID)
}
