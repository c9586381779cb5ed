// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "tastebud/internal/delivery/context"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/domain/service"
	"tastebud/internal/usecase"

	"github.com/pkg/errors"
)

// tokenTypeBearer is the token_type reported alongside issued tokens.
const tokenTypeBearer = "bearer"

// credentialService implements the CredentialUsecase interface. The token
// subject is the username; sessions survive as long as the token, there is
// no server-side session state.
type credentialService struct {
	txManager  repository.TransactionManager
	hasher     service.PasswordHasher
	codec      service.TokenCodec
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewCredentialService is the constructor for credentialService.
func NewCredentialService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	codec service.TokenCodec,
	sessionTTL time.Duration,
	logger *slog.Logger,
) usecase.CredentialUsecase {
	return &credentialService{
		txManager:  txManager,
		hasher:     hasher,
		codec:      codec,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the password and issues a session token. Unknown usernames
// and wrong passwords both surface as ErrInvalidCredentials so the endpoint
// cannot be used to enumerate accounts.
func (srv *credentialService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByUsername(ctx, input.Username)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrInvalidCredentials
			}

			return errors.Wrap(err, "failed to find user")
		}

		if !srv.hasher.Check(input.Password, found.PasswordHash) {
			return domainerrors.ErrInvalidCredentials
		}

		user = found

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

		return nil, err
	}

	token, err := srv.codec.Issue(user.Username, srv.sessionTTL)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Info("User logged in", slog.String("username", user.Username))

	return &usecase.LoginOutput{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		User:        user,
	}, nil
}

// ResolveSession validates a bearer token and loads the account it names.
// Expired tokens map to ErrTokenExpired, every other decode failure and an
// empty subject claim map to ErrTokenInvalid. A token whose subject no
// longer exists is invalid too.
func (srv *credentialService) ResolveSession(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.codec.Decode(token)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return nil, domainerrors.ErrTokenExpired
		}

		return nil, domainerrors.ErrTokenInvalid
	}

	if claims.Subject == "" {
		srv.log(ctx).Warn("Session token carries no subject")

		return nil, errors.Wrap(service.ErrTokenMissingSubject, "resolve session")
	}

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByUsername(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrTokenInvalid
			}

			return errors.Wrap(err, "failed to find session user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
