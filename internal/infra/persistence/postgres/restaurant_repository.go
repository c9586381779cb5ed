package postgres

import (
	"context"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/domain/repository"
	"tastebud/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// restaurantRepository implements the repository.RestaurantRepository interface using GORM.
type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository is the constructor for restaurantRepository.
func NewRestaurantRepository(db *gorm.DB) repository.RestaurantRepository {
	return &restaurantRepository{db: db}
}

// Create persists a new restaurant.
func (repo *restaurantRepository) Create(ctx context.Context, restaurant *entity.Restaurant) error {
	restaurantM := fromRestaurantDomain(restaurant)

	if err := repo.db.WithContext(ctx).Create(restaurantM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create restaurant")
	}

	restaurant.ID = restaurantM.ID
	restaurant.CreatedAt = restaurantM.CreatedAt

	return nil
}

// FindByID retrieves a single restaurant by its unique ID.
func (repo *restaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	var restaurantM model.RestaurantModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&restaurantM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRestaurantNotFound
		}

		return nil, errors.Wrap(err, "failed to find restaurant by id")
	}

	return toRestaurantDomain(&restaurantM), nil
}

// List returns a page of restaurants ordered by creation time.
func (repo *restaurantRepository) List(ctx context.Context, skip, limit int) ([]*entity.Restaurant, error) {
	var models []model.RestaurantModel
	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list restaurants")
	}

	restaurants := make([]*entity.Restaurant, 0, len(models))
	for i := range models {
		restaurants = append(restaurants, toRestaurantDomain(&models[i]))
	}

	return restaurants, nil
}

// --- Mapper Functions ---

func toRestaurantDomain(data *model.RestaurantModel) *entity.Restaurant {
	if data == nil {
		return nil
	}

	return &entity.Restaurant{
		ID:        data.ID,
		Name:      data.Name,
		CreatedAt: data.CreatedAt,
	}
}

func fromRestaurantDomain(data *entity.Restaurant) *model.RestaurantModel {
	if data == nil {
		return nil
	}

	return &model.RestaurantModel{
		ID:   data.ID,
		Name: data.Name,
	}
}
