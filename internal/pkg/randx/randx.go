/*
Package randx provides functions for generating cryptographically secure random codes and identifiers.

It generates the fixed-width numeric verification codes mailed to guests, the opaque
Base62 session tokens, and standard UUID message IDs.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base62Chars defines the character set used for Base62 encoding (0-9, A-Z, a-z).
	Base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// Base62Len is the total number of characters in the Base62 character set (62).
	Base62Len = int64(len(Base62Chars))

	// VerificationCodeLength is the fixed width of the numeric verification code.
	VerificationCodeLength = 6

	// SessionTokenLength is the fixed length of the opaque chat session identifier.
	SessionTokenLength = 24
)

// verificationCodeSpace is the number of possible codes (10^VerificationCodeLength).
var verificationCodeSpace = big.NewInt(1_000_000)

// VerificationCode generates a 6-digit numeric verification code, uniformly drawn
// from 000000-999999 and zero-padded to fixed width.
func VerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, verificationCodeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate random verification code: %w", err)
	}

	return fmt.Sprintf("%0*d", VerificationCodeLength, n.Int64()), nil
}

// IsValidVerificationCode checks whether the given string has the shape of a
// verification code: fixed width, digits only.
func IsValidVerificationCode(code string) bool {
	if len(code) != VerificationCodeLength {
		return false
	}

	for _, char := range code {
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}

// SessionToken generates an opaque Base62 identifier for a chat session using
// a cryptographically secure random number generator.
func SessionToken() (string, error) {
	result := make([]byte, SessionTokenLength)

	for i := 0; i < SessionTokenLength; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(Base62Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for session token: %w", err)
		}

		result[i] = Base62Chars[num.Int64()]
	}

	return string(result), nil
}

// IsValidSessionToken checks if the given string is a well-formed session token.
func IsValidSessionToken(token string) bool {
	if len(token) != SessionTokenLength {
		return false
	}

	for _, char := range token {
		if !strings.ContainsRune(Base62Chars, char) {
			return false
		}
	}

	return true
}

// MessageID generates a standard UUID v4 string to serve as a unique identifier for a message.
func MessageID() string {
	return uuid.New().String()
}
