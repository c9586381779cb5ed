package repository

import (
	"context"

	"tastebud/internal/domain/entity"
	"tastebud/internal/errors"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when no review matches the lookup.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository provides access to restaurant reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, skip, limit int) ([]*entity.Review, error)

	// ListDetailed returns every review joined with its author's username
	// and the restaurant name, for the moderation view.
	ListDetailed(ctx context.Context) ([]*entity.ReviewDetail, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
