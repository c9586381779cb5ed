package repository

import (
	"context"

	"tastebud/internal/domain/entity"
	"tastebud/internal/errors"

	"github.com/google/uuid"
)

// ErrRestaurantNotFound is returned when no restaurant matches the lookup.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantRepository provides access to the restaurant catalogue.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *entity.Restaurant) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error)
	List(ctx context.Context, skip, limit int) ([]*entity.Restaurant, error)
}
