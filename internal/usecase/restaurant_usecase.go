package usecase

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateRestaurantInput defines the data required to add a restaurant.
type CreateRestaurantInput struct {
	Name string
}

// RestaurantUsecase defines the interface for catalogue operations.
type RestaurantUsecase interface {
	Create(ctx context.Context, input CreateRestaurantInput) (*entity.Restaurant, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)
	List(ctx context.Context, skip, limit int) ([]*entity.Restaurant, error)
}
