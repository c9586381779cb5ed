package auth

import (
	"crypto/rand"
	"encoding/base64"

	"tastebud/internal/domain/service"
	"tastebud/internal/errors"
)

// verificationTokenBytes is read from the CSPRNG per token: 256 bits of
// entropy before encoding, which makes collisions negligible. Uniqueness
// across outstanding records is still enforced by the credential store.
const verificationTokenBytes = 32

// verificationGenerator implements service.VerificationTokenGenerator
// with crypto/rand and URL-safe base64.
type verificationGenerator struct{}

// NewVerificationTokenGenerator is the constructor for verificationGenerator.
func NewVerificationTokenGenerator() service.VerificationTokenGenerator {
	return &verificationGenerator{}
}

// GenerateVerificationToken returns an unpadded base64url string suitable
// for embedding in a verification link.
func (g *verificationGenerator) GenerateVerificationToken() (string, error) {
	buf := make([]byte, verificationTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for verification token")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
