package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims for a verified guest's chat access token.
// The token is issued once the email verification code is accepted and
// authorizes message sends and transcript reads for exactly one session.
type Payload struct {
	// StandardClaims embeds the JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer). These are crucial for token validity checks.
	jwt.StandardClaims `json:"standard_claims"`

	// GuestID is the identifier of the verified guest the token belongs to.
	GuestID string `json:"guest_id"`

	// SessionID is the opaque chat session the token holder is authorized to use.
	SessionID string `json:"session_id"`
}
