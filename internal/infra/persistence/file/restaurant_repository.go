package file

import (
	"context"
	"time"

	"tastebud/internal/domain/entity"
	"tastebud/internal/domain/repository"

	"github.com/google/uuid"
)

// restaurantRecord is the on-disk shape of a restaurant.
type restaurantRecord struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// restaurantRepository implements repository.RestaurantRepository on the
// flat-file store.
type restaurantRepository struct {
	store *Store
	lock  bool
}

// NewRestaurantRepository returns a standalone, self-locking restaurant repository.
func NewRestaurantRepository(store *Store) repository.RestaurantRepository {
	return &restaurantRepository{store: store, lock: true}
}

func (repo *restaurantRepository) load() ([]restaurantRecord, error) {
	return readJSON[restaurantRecord](repo.store.path(restaurantsFile))
}

func (repo *restaurantRepository) Create(_ context.Context, restaurant *entity.Restaurant) error {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return err
	}

	restaurant.ID = newID(restaurant.ID)
	restaurant.CreatedAt = now()

	records = append(records, restaurantRecord{
		ID:        restaurant.ID,
		Name:      restaurant.Name,
		CreatedAt: restaurant.CreatedAt,
	})

	return writeJSON(repo.store.path(restaurantsFile), records)
}

func (repo *restaurantRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID == id {
			return toRestaurantEntity(records[i]), nil
		}
	}

	return nil, repository.ErrRestaurantNotFound
}

// List returns a page of restaurants in insertion order.
func (repo *restaurantRepository) List(_ context.Context, skip, limit int) ([]*entity.Restaurant, error) {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	page := pageSlice(records, skip, limit)
	restaurants := make([]*entity.Restaurant, 0, len(page))
	for i := range page {
		restaurants = append(restaurants, toRestaurantEntity(page[i]))
	}

	return restaurants, nil
}

func toRestaurantEntity(rec restaurantRecord) *entity.Restaurant {
	return &entity.Restaurant{
		ID:        rec.ID,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
	}
}
