/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Widget Input and Conversation Errors
	ErrInvalidEmail:    {Code: ErrInvalidEmail, Message: "Please enter a valid email address."},
	ErrEmptyMessage:    {Code: ErrEmptyMessage, Message: "Message cannot be empty."},
	ErrMessageTooLong:  {Code: ErrMessageTooLong, Message: "Message is too long."},
	ErrReplyPending:    {Code: ErrReplyPending, Message: "Please wait for the current reply to finish."},
	ErrSessionNotFound: {Code: ErrSessionNotFound, Message: "Chat session not found. Please reopen the chat."},

	// 3xxx: Verification and Security Errors
	ErrNoChallenge:            {Code: ErrNoChallenge, Message: "No verification code is active. Please request a new one."},
	ErrVerificationMismatch:   {Code: ErrVerificationMismatch, Message: "Incorrect verification code. Please try again."},
	ErrChallengeResendTooSoon: {Code: ErrChallengeResendTooSoon, Message: "A code was sent recently. Please wait before requesting another.", Status: http.StatusTooManyRequests},
	ErrUnauthorized:           {Code: ErrUnauthorized, Message: "Please verify your email to continue.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:          {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrStoreUnavailable: {Code: ErrStoreUnavailable, Message: "Service is temporarily unavailable. Please try again.", Status: http.StatusServiceUnavailable},
}
