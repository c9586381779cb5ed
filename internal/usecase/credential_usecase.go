package usecase

import (
	"context"

	"tastebud/internal/domain/entity"
)

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput returns the bearer token after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	User        *entity.User
}

// CredentialUsecase defines the interface for authentication operations.
type CredentialUsecase interface {
	// Login verifies the password and issues a session token. Unknown
	// usernames and wrong passwords fail identically.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// ResolveSession validates a bearer token and loads the account it
	// names. Used by the authentication middleware.
	ResolveSession(ctx context.Context, token string) (*entity.User, error)
}
