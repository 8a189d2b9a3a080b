/*
Package handler provides HTTP handler functions for the support-chat widget API.

This file contains the verification-gate and conversation endpoints: email
submission, code checking, message sending, and transcript retrieval. Handlers
translate the widget service's sentinel errors into the business error codes
the client renders.
*/
package handler

import (
	"errors"
	"net/http"
	"strings"

	"supportchat/internal/app/chat"
	"supportchat/internal/app/guest"
	"supportchat/internal/app/verify"
	"supportchat/internal/app/widget"
	"supportchat/internal/pkg/auth/jwt"
	"supportchat/internal/pkg/errs"
	"supportchat/internal/pkg/logx"
	"supportchat/internal/pkg/req"
	"supportchat/internal/pkg/resp"
)

// widgetError maps a widget service error to the business error the client renders.
func widgetError(err error) *errs.CustomError {
	switch {
	case errors.Is(err, guest.ErrInvalidEmail):
		return errs.NewError(errs.ErrInvalidEmail)
	case errors.Is(err, verify.ErrNoChallenge):
		return errs.NewError(errs.ErrNoChallenge)
	case errors.Is(err, verify.ErrMismatch):
		return errs.NewError(errs.ErrVerificationMismatch)
	case errors.Is(err, verify.ErrResendTooSoon):
		return errs.NewError(errs.ErrChallengeResendTooSoon)
	case errors.Is(err, widget.ErrEmptyMessage):
		return errs.NewError(errs.ErrEmptyMessage)
	case errors.Is(err, widget.ErrMessageTooLong):
		return errs.NewError(errs.ErrMessageTooLong)
	case errors.Is(err, widget.ErrReplyPending):
		return errs.NewError(errs.ErrReplyPending)
	case errors.Is(err, chat.ErrSessionNotFound):
		return errs.NewError(errs.ErrSessionNotFound)
	default:
		return errs.NewError(errs.ErrStoreUnavailable)
	}
}

// issueChatToken signs a chat access token for a verified guest's session.
func issueChatToken(deps *AppDeps, guestID, sessionID string) (string, error) {
	payload := &jwt.Payload{
		GuestID:   guestID,
		SessionID: sessionID,
	}
	return jwt.GenerateToken(payload, deps.Config.JWTSecret, jwt.ChatAccessExpiration)
}

type SubmitEmailInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleSubmitEmail processes the widget's email step. Unverified guests get a
// verification code mailed; already-verified guests skip straight to an open
// session and a chat token.
func HandleSubmitEmail(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SubmitEmailInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		result, err := deps.Widget.SubmitEmail(r.Context(), input.Email, strings.TrimSpace(input.Name))
		if err != nil {
			if !errors.Is(err, guest.ErrInvalidEmail) && !errors.Is(err, verify.ErrResendTooSoon) {
				logx.Error(err, "submit_email: verification flow failed")
			}
			resp.RespondError(w, r, widgetError(err))
			return
		}

		if result.Status == widget.StatusVerified {
			token, err := issueChatToken(deps, result.Guest.ID, result.Session.ID)
			if err != nil {
				logx.Error(err, "submit_email: jwt generation failed", "guest_id", result.Guest.ID)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}

			resp.RespondSuccess(w, r, map[string]any{
				"status":  widget.StatusVerified,
				"token":   token,
				"session": result.Session,
			})
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"status":     widget.StatusPending,
			"retryAfter": int(verify.DefaultResendWindow.Seconds()),
		})
	}
}

type SubmitCodeInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// HandleSubmitCode checks the verification code. On success the guest is
// verified, their session is opened, and a chat token is issued.
func HandleSubmitCode(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SubmitCodeInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		result, err := deps.Widget.SubmitCode(r.Context(), input.Email, input.Code)
		if err != nil {
			if !errors.Is(err, verify.ErrMismatch) && !errors.Is(err, verify.ErrNoChallenge) && !errors.Is(err, guest.ErrInvalidEmail) {
				logx.Error(err, "submit_code: verification check failed")
			}
			resp.RespondError(w, r, widgetError(err))
			return
		}

		token, err := issueChatToken(deps, result.Guest.ID, result.Session.ID)
		if err != nil {
			logx.Error(err, "submit_code: jwt generation failed", "guest_id", result.Guest.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"status":  widget.StatusVerified,
			"token":   token,
			"session": result.Session,
		})
	}
}

type SendMessageInput struct {
	Text   string `json:"text"`
	Locale string `json:"locale"`
}

// HandleSendMessage appends the visitor's message to their session transcript.
// The guest message is returned immediately; the bot reply arrives later over
// the transcript socket.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input SendMessageInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		message, err := deps.Widget.SendMessage(r.Context(), identity.SessionID, input.Text, input.Locale)
		if err != nil {
			if !errors.Is(err, widget.ErrEmptyMessage) && !errors.Is(err, widget.ErrMessageTooLong) && !errors.Is(err, widget.ErrReplyPending) {
				logx.Error(err, "send_message: append failed", "session_id", identity.SessionID)
			}
			resp.RespondError(w, r, widgetError(err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"message": message,
		})
	}
}

// HandleGetTranscript returns the full ordered transcript of the token
// holder's session. An empty list is a valid response for a fresh session.
func HandleGetTranscript(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		messages, err := deps.Widget.Transcript(r.Context(), identity.SessionID)
		if err != nil {
			logx.Error(err, "transcript: fetch failed", "session_id", identity.SessionID)
			resp.RespondError(w, r, widgetError(err))
			return
		}

		if messages == nil {
			messages = []chat.Message{}
		}

		resp.RespondSuccess(w, r, map[string]any{
			"messages": messages,
		})
	}
}

// HandleReloadFAQ refreshes the FAQ catalog snapshot from the content store.
// The content dashboard calls this after publishing changes; a failed reload
// keeps the previous snapshot serving.
func HandleReloadFAQ(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Catalog.Load(r.Context()); err != nil {
			logx.Error(err, "faq_reload: snapshot refresh failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreUnavailable))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
