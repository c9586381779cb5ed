// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Username doubles as the login
// identifier and as the subject claim of issued bearer tokens.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Username     string    // Unique login name; the token subject.
	Email        string    // Unique contact email, target of verification mail.
	PasswordHash string    // bcrypt digest; salt and cost are embedded in the digest itself.
	Verified     bool      // True once the verification token has been consumed. Never reverts.
	// VerificationToken is the outstanding email-verification token.
	// Nil once consumed or when no verification is pending. Unique across users.
	VerificationToken *string
	// ConsumedVerificationToken retains the token value after consumption,
	// so a repeated click on the same verification link still resolves to
	// this record instead of reporting an unknown token.
	ConsumedVerificationToken *string
	IsAdmin                   bool
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// ConsumeVerification flips the record to verified and retires the token.
// Consuming an already-verified record is an idempotent no-op.
func (u *User) ConsumeVerification() {
	if u.Verified {
		return
	}
	u.Verified = true
	u.ConsumedVerificationToken = u.VerificationToken
	u.VerificationToken = nil
}
