/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or system errors both internally
within the server and in communication with the widget client.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Widget Input and Conversation Errors
const (
	// ErrInvalidEmail indicates the submitted email address is malformed.
	// Rejected before any store call.
	ErrInvalidEmail = 2101

	// ErrEmptyMessage indicates the visitor submitted a blank chat message.
	ErrEmptyMessage = 2201

	// ErrMessageTooLong indicates the chat message exceeded the maximum length limit.
	ErrMessageTooLong = 2202

	// ErrReplyPending indicates a previous message's bot reply is still being
	// computed for this session; sends are serialized per session.
	ErrReplyPending = 2203

	// ErrSessionNotFound indicates the chat session referenced by the token no longer exists.
	ErrSessionNotFound = 2301
)

// 3xxx: Verification and Security Errors
const (
	// ErrNoChallenge indicates a code check was attempted while no verification
	// code is live for the guest. Recoverable; the client should re-issue.
	ErrNoChallenge = 3001

	// ErrVerificationMismatch indicates the submitted code does not match the
	// live verification code. The code stays live so the visitor may retry.
	ErrVerificationMismatch = 3002

	// ErrChallengeResendTooSoon indicates a new code was requested inside the resend window.
	ErrChallengeResendTooSoon = 3003

	// ErrUnauthorized indicates a missing or invalid chat access token.
	ErrUnauthorized = 3004
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrStoreUnavailable indicates a backing store call failed. Transient; the
	// triggering action is not retried automatically.
	ErrStoreUnavailable = 5001
)
