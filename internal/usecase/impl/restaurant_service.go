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

// restaurantService implements the RestaurantUsecase interface.
type restaurantService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewRestaurantService is the constructor for restaurantService.
func NewRestaurantService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.RestaurantUsecase {
	return &restaurantService{
		txManager: txManager,
		logger:    logger,
	}
}

func (srv *restaurantService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create adds a restaurant to the catalogue.
func (srv *restaurantService) Create(ctx context.Context, input usecase.CreateRestaurantInput) (*entity.Restaurant, error) {
	restaurant := &entity.Restaurant{Name: input.Name}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.RestaurantRepo().Create(ctx, restaurant)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create restaurant")
	}

	srv.log(ctx).Info("Restaurant created",
		slog.String("name", restaurant.Name),
		slog.Any("id", restaurant.ID),
	)

	return restaurant, nil
}

// Get retrieves one restaurant.
func (srv *restaurantService) Get(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	var restaurant *entity.Restaurant

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.RestaurantRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrRestaurantNotFound) {
				return domainerrors.ErrRestaurantNotFound
			}

			return errors.Wrap(err, "failed to find restaurant")
		}
		restaurant = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return restaurant, nil
}

// List returns a page of the catalogue.
func (srv *restaurantService) List(ctx context.Context, skip, limit int) ([]*entity.Restaurant, error) {
	var restaurants []*entity.Restaurant

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.RestaurantRepo().List(ctx, skip, limit)
		if err != nil {
			return errors.Wrap(err, "failed to list restaurants")
		}
		restaurants = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return restaurants, nil
}
