package impl

import (
	"context"
	"log/slog"

	deliverycontext "tastebud/internal/delivery/context"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/domain/service"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager repository.TransactionManager
	uploader  service.Uploader
	logger    *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(
	txManager repository.TransactionManager,
	uploader service.Uploader,
	logger *slog.Logger,
) usecase.ReviewUsecase {
	return &reviewService{
		txManager: txManager,
		uploader:  uploader,
		logger:    logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create posts a review as the given author. The image upload happens
// before the transaction; if the upload fails the review is never stored.
func (srv *reviewService) Create(ctx context.Context, authorID uuid.UUID, input usecase.CreateReviewInput) (*entity.Review, error) {
	review := &entity.Review{
		Text:         input.Text,
		Rating:       input.Rating,
		UserID:       authorID,
		RestaurantID: input.RestaurantID,
	}
	if !review.ValidRating() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
	}

	if input.Image != nil {
		url, err := srv.uploader.Upload(ctx, input.Image.Data, input.Image.FileName, input.Image.ContentType)
		if err != nil {
			srv.log(ctx).Error("Review image upload failed", slog.Any("error", err))

			return nil, domainerrors.ErrUploadFailed
		}
		review.ImageURL = &url
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// The restaurant must exist before the review is attached.
		if _, err := repoFactory.RestaurantRepo().FindByID(ctx, input.RestaurantID); err != nil {
			if errors.Is(err, repository.ErrRestaurantNotFound) {
				return domainerrors.ErrRestaurantNotFound
			}

			return errors.Wrap(err, "failed to find restaurant")
		}

		return repoFactory.ReviewRepo().Create(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Review created",
		slog.Any("restaurant_id", review.RestaurantID),
		slog.Any("author_id", review.UserID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// ListByRestaurant returns a page of one restaurant's reviews.
func (srv *reviewService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, skip, limit int) ([]*entity.Review, error) {
	var reviews []*entity.Review

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.RestaurantRepo().FindByID(ctx, restaurantID); err != nil {
			if errors.Is(err, repository.ErrRestaurantNotFound) {
				return domainerrors.ErrRestaurantNotFound
			}

			return errors.Wrap(err, "failed to find restaurant")
		}

		found, err := repoFactory.ReviewRepo().ListByRestaurant(ctx, restaurantID, skip, limit)
		if err != nil {
			return errors.Wrap(err, "failed to list reviews")
		}
		reviews = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}
