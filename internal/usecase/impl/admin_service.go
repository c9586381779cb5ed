package impl

import (
	"context"
	"log/slog"

	deliverycontext "tastebud/internal/delivery/context"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		txManager: txManager,
		logger:    logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListUsers returns a page of every account.
func (srv *adminService) ListUsers(ctx context.Context, skip, limit int) ([]*entity.User, error) {
	var users []*entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().List(ctx, skip, limit)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}
		users = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

// ListAllReviews returns the joined moderation view.
func (srv *adminService) ListAllReviews(ctx context.Context) ([]*entity.ReviewDetail, error) {
	var details []*entity.ReviewDetail

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.ReviewRepo().ListDetailed(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list reviews")
		}
		details = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return details, nil
}

// DeleteReview removes a review as a moderation action.
func (srv *adminService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ReviewRepo().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrReviewNotFound
			}

			return errors.Wrap(err, "failed to delete review")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Review deleted by moderation", slog.Any("review_id", id))

	return nil
}

// ListAdmins returns every account holding the admin role.
func (srv *adminService) ListAdmins(ctx context.Context) ([]*entity.User, error) {
	var admins []*entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.UserRepo().ListAdmins(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list admins")
		}
		admins = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return admins, nil
}

// GrantAdmin promotes the account registered under email. Promoting an
// account that is already an admin is a conflict, matching the
// idempotency-aware contract of the endpoint.
func (srv *adminService) GrantAdmin(ctx context.Context, email string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}
		if user.IsAdmin {
			return domainerrors.ErrConflict.WithDetails("user is already an admin")
		}

		user.IsAdmin = true

		return errors.Wrap(userRepo.Update(ctx, user), "failed to grant admin")
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Admin granted", slog.String("email", email))

	return nil
}

// RevokeAdmin demotes the account registered under email.
func (srv *adminService) RevokeAdmin(ctx context.Context, email string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}
		if !user.IsAdmin {
			return domainerrors.ErrConflict.WithDetails("user is not an admin")
		}

		user.IsAdmin = false

		return errors.Wrap(userRepo.Update(ctx, user), "failed to revoke admin")
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Admin revoked", slog.String("email", email))

	return nil
}
