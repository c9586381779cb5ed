package service

import (
	"time"

	"tastebud/internal/errors"
)

// Decode failure modes, from outermost to innermost check. Callers use
// errors.Is; the codec wraps these with context.
var (
	// ErrTokenMalformed: the token cannot be split into payload and
	// signature, or the payload does not decode.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignature: the HMAC over the payload does not match.
	ErrTokenSignature = errors.New("token signature mismatch")
	// ErrTokenExpired: the embedded expiry is not strictly in the future.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMissingSubject: the decode succeeded but no subject claim is present.
	ErrTokenMissingSubject = errors.New("token has no subject claim")
)

// Claims are the fields embedded in a bearer token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenCodec issues and validates opaque signed bearer tokens.
//
// The wire format is fixed for interoperability with external verifiers:
//
//	base64url(json claims) + "." + hex(hmac-sha256(payload, secret))
//
// Tokens carry their own expiry and are never persisted; there is no
// server-side revocation list.
type TokenCodec interface {
	// Issue signs claims for the subject expiring ttl from now.
	// A zero ttl falls back to the configured default; a negative ttl
	// yields a token that is already expired.
	Issue(subject string, ttl time.Duration) (string, error)

	// Decode validates a token and returns its claims. Failures are
	// ErrTokenMalformed, ErrTokenSignature or ErrTokenExpired; the
	// signature is always checked before the claims are trusted.
	Decode(token string) (*Claims, error)
}

// VerificationTokenGenerator produces high-entropy opaque strings for
// out-of-band email verification. Uniqueness across outstanding records
// is enforced by the credential store, not here.
type VerificationTokenGenerator interface {
	GenerateVerificationToken() (string, error)
}
