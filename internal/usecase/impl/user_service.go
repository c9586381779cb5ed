package impl

import (
	"context"
	"log/slog"
	"slices"
	"time"

	deliverycontext "tastebud/internal/delivery/context"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/domain/service"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// verificationTokenRetries bounds regeneration attempts when a freshly
// generated token collides with an outstanding one. With 256-bit tokens a
// single collision is already extraordinary.
const verificationTokenRetries = 3

// userService implements the UserUsecase interface.
type userService struct {
	txManager  repository.TransactionManager
	hasher     service.PasswordHasher
	codec      service.TokenCodec
	generator  service.VerificationTokenGenerator
	mailer     service.Mailer
	sessionTTL time.Duration
	// bootstrapAdmins are emails granted the admin role on registration.
	bootstrapAdmins []string
	logger          *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	codec service.TokenCodec,
	generator service.VerificationTokenGenerator,
	mailer service.Mailer,
	sessionTTL time.Duration,
	bootstrapAdmins []string,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		txManager:       txManager,
		hasher:          hasher,
		codec:           codec,
		generator:       generator,
		mailer:          mailer,
		sessionTTL:      sessionTTL,
		bootstrapAdmins: bootstrapAdmins,
		logger:          logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unverified account and logs it straight in. The
// verification mail is sent after the transaction commits; a delivery
// failure is logged but does not undo the registration, the user can ask
// for a resend.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Password hashing failed", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	var user *entity.User
	var verificationToken string

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		for attempt := 0; attempt < verificationTokenRetries; attempt++ {
			token, err := srv.generator.GenerateVerificationToken()
			if err != nil {
				return errors.Wrap(err, "failed to generate verification token")
			}

			candidate := &entity.User{
				Username:          input.Username,
				Email:             input.Email,
				PasswordHash:      hash,
				Verified:          false,
				VerificationToken: &token,
				IsAdmin:           slices.Contains(srv.bootstrapAdmins, input.Email),
			}

			err = userRepo.Create(ctx, candidate)
			switch {
			case err == nil:
				user = candidate
				verificationToken = token

				return nil
			case errors.Is(err, repository.ErrDuplicateUsername):
				return domainerrors.ErrUsernameTaken
			case errors.Is(err, repository.ErrDuplicateEmail):
				return domainerrors.ErrEmailTaken
			case errors.Is(err, repository.ErrDuplicateVerificationToken):
				continue
			default:
				return errors.Wrap(err, "failed to create user")
			}
		}

		return errors.New("verification token collisions exhausted retries")
	})
	if err != nil {
		return nil, err
	}

	if err := srv.mailer.SendVerificationMail(ctx, user.Email, verificationToken); err != nil {
		srv.log(ctx).Error("Verification mail not delivered",
			slog.String("email", user.Email),
			slog.Any("error", err),
		)
	}

	accessToken, err := srv.codec.Issue(user.Username, srv.sessionTTL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Info("User registered",
		slog.String("username", user.Username),
		slog.Bool("is_admin", user.IsAdmin),
	)

	return &usecase.RegisterOutput{
		User:        user,
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
	}, nil
}

// VerifyEmail consumes a verification token. Consuming the same token
// again after the account verified is an idempotent success; tokens that
// were never issued (or were rotated away) report invalid.
func (srv *userService) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		found, err := userRepo.FindByVerificationToken(ctx, token)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrVerificationTokenInvalid
			}

			return errors.Wrap(err, "failed to find verification token")
		}

		if found.Verified {
			user = found

			return nil
		}

		found.ConsumeVerification()
		if err := userRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to mark user verified")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Email verified", slog.String("username", user.Username))

	return user, nil
}

// ResendVerification rotates the verification token and re-emails the link.
// Unlike registration, a mail failure here fails the whole operation; the
// resend exists only to deliver that mail.
func (srv *userService) ResendVerification(ctx context.Context, email string) error {
	var verificationToken string

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}
		if user.Verified {
			return domainerrors.ErrAlreadyVerified
		}

		for attempt := 0; attempt < verificationTokenRetries; attempt++ {
			token, err := srv.generator.GenerateVerificationToken()
			if err != nil {
				return errors.Wrap(err, "failed to generate verification token")
			}

			user.VerificationToken = &token

			err = userRepo.Update(ctx, user)
			switch {
			case err == nil:
				verificationToken = token

				return nil
			case errors.Is(err, repository.ErrDuplicateVerificationToken):
				continue
			default:
				return errors.Wrap(err, "failed to rotate verification token")
			}
		}

		return errors.New("verification token collisions exhausted retries")
	})
	if err != nil {
		return err
	}

	if err := srv.mailer.SendVerificationMail(ctx, email, verificationToken); err != nil {
		return errors.Wrap(err, "failed to send verification mail")
	}

	srv.log(ctx).Info("Verification mail resent", slog.String("email", email))

	return nil
}

// GetProfile returns the account behind an authenticated session.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
