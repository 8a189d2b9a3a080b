/*
Package notify defines the outbound delivery port for verification codes.

Actual mail delivery belongs to the marketing site's transactional-mail
collaborator; this subsystem only hands the code over. The log implementation
keeps local development and tests self-contained.
*/
package notify

import (
	"context"
	"strings"

	"supportchat/internal/pkg/logx"
)

// Mailer delivers a verification code to a guest's mailbox.
type Mailer interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// LogMailer writes the code to the server log instead of sending mail.
// Development only: the logged email address is masked, the code is not.
type LogMailer struct{}

// SendVerificationCode logs the code for manual pickup during development.
func (LogMailer) SendVerificationCode(ctx context.Context, email, code string) error {
	logx.Info("Verification code issued.", "email", MaskEmail(email), "code", code)
	return nil
}

// MaskEmail hides most of the local part of an address for log output.
func MaskEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := parts[0]
	domain := parts[1]

	switch len(local) {
	case 0:
		return "***@" + domain
	case 1, 2:
		return local[:1] + "***@" + domain
	default:
		return local[:1] + "***" + local[len(local)-1:] + "@" + domain
	}
}
