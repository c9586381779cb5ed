package usecase

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
)

// ImageUpload carries an optional review image through the use case to the
// upload backend.
type ImageUpload struct {
	Data        []byte
	FileName    string
	ContentType string
}

// CreateReviewInput defines the data required to post a review.
type CreateReviewInput struct {
	RestaurantID uuid.UUID
	Text         string
	Rating       int
	Image        *ImageUpload
}

// ReviewUsecase defines the interface for review operations.
type ReviewUsecase interface {
	// Create posts a review as the given author. When an image is attached
	// it is uploaded first; an upload failure fails the whole operation.
	Create(ctx context.Context, authorID uuid.UUID, input CreateReviewInput) (*entity.Review, error)

	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, skip, limit int) ([]*entity.Review, error)
}
