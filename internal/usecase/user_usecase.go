// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user and their first session token.
type RegisterOutput struct {
	User        *entity.User
	AccessToken string
	TokenType   string
}

// UserUsecase defines the interface for account lifecycle operations.
// This is the contract that the delivery layer depends on.
type UserUsecase interface {
	// Register creates an unverified account, emails the verification link
	// and logs the new user straight in.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// VerifyEmail consumes a verification token. Verifying an already
	// verified account reports success without changing anything.
	VerifyEmail(ctx context.Context, token string) (*entity.User, error)

	// ResendVerification rotates the verification token for an unverified
	// account and emails the new link.
	ResendVerification(ctx context.Context, email string) error

	// GetProfile returns the account behind an authenticated session.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
