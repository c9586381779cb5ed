package file

import (
	"context"
	"sort"
	"time"

	"tastebud/internal/domain/entity"
	"tastebud/internal/domain/repository"

	"github.com/google/uuid"
)

// reviewRecord is the on-disk shape of a review.
type reviewRecord struct {
	ID           uuid.UUID `json:"id"`
	Text         string    `json:"text"`
	Rating       int       `json:"rating"`
	ImageURL     *string   `json:"image_url"`
	UserID       uuid.UUID `json:"user_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// reviewRepository implements repository.ReviewRepository on the flat-file store.
type reviewRepository struct {
	store *Store
	lock  bool
}

// NewReviewRepository returns a standalone, self-locking review repository.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{store: store, lock: true}
}

func (repo *reviewRepository) load() ([]reviewRecord, error) {
	return readJSON[reviewRecord](repo.store.path(reviewsFile))
}

func (repo *reviewRepository) save(records []reviewRecord) error {
	return writeJSON(repo.store.path(reviewsFile), records)
}

func (repo *reviewRepository) Create(_ context.Context, review *entity.Review) error {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return err
	}

	review.ID = newID(review.ID)
	review.CreatedAt = now()

	records = append(records, fromReviewEntity(review))

	return repo.save(records)
}

func (repo *reviewRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
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
			return toReviewEntity(records[i]), nil
		}
	}

	return nil, repository.ErrReviewNotFound
}

// ListByRestaurant returns a page of one restaurant's reviews, newest first.
func (repo *reviewRepository) ListByRestaurant(_ context.Context, restaurantID uuid.UUID, skip, limit int) ([]*entity.Review, error) {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	matched := make([]reviewRecord, 0)
	for i := range records {
		if records[i].RestaurantID == restaurantID {
			matched = append(matched, records[i])
		}
	}
	sortReviewsNewestFirst(matched)

	page := pageSlice(matched, skip, limit)
	reviews := make([]*entity.Review, 0, len(page))
	for i := range page {
		reviews = append(reviews, toReviewEntity(page[i]))
	}

	return reviews, nil
}

// ListDetailed joins every review with its author's username and restaurant
// name. Dangling references read as "Unknown" rather than failing the whole
// listing.
func (repo *reviewRepository) ListDetailed(_ context.Context) ([]*entity.ReviewDetail, error) {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return nil, err
	}
	sortReviewsNewestFirst(records)

	users, err := readJSON[userRecord](repo.store.path(usersFile))
	if err != nil {
		return nil, err
	}
	restaurants, err := readJSON[restaurantRecord](repo.store.path(restaurantsFile))
	if err != nil {
		return nil, err
	}

	usernames := make(map[uuid.UUID]string, len(users))
	for i := range users {
		usernames[users[i].ID] = users[i].Username
	}
	restaurantNames := make(map[uuid.UUID]string, len(restaurants))
	for i := range restaurants {
		restaurantNames[restaurants[i].ID] = restaurants[i].Name
	}

	details := make([]*entity.ReviewDetail, 0, len(records))
	for i := range records {
		detail := &entity.ReviewDetail{
			Review:         *toReviewEntity(records[i]),
			Username:       "Unknown",
			RestaurantName: "Unknown",
		}
		if name, ok := usernames[records[i].UserID]; ok {
			detail.Username = name
		}
		if name, ok := restaurantNames[records[i].RestaurantID]; ok {
			detail.RestaurantName = name
		}
		details = append(details, detail)
	}

	return details, nil
}

// Delete removes a review by ID.
func (repo *reviewRepository) Delete(_ context.Context, id uuid.UUID) error {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return err
	}

	kept := make([]reviewRecord, 0, len(records))
	for i := range records {
		if records[i].ID != id {
			kept = append(kept, records[i])
		}
	}
	if len(kept) == len(records) {
		return repository.ErrReviewNotFound
	}

	return repo.save(kept)
}

func sortReviewsNewestFirst(records []reviewRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}

func toReviewEntity(rec reviewRecord) *entity.Review {
	return &entity.Review{
		ID:           rec.ID,
		Text:         rec.Text,
		Rating:       rec.Rating,
		ImageURL:     rec.ImageURL,
		UserID:       rec.UserID,
		RestaurantID: rec.RestaurantID,
		CreatedAt:    rec.CreatedAt,
	}
}

func fromReviewEntity(review *entity.Review) reviewRecord {
	return reviewRecord{
		ID:           review.ID,
		Text:         review.Text,
		Rating:       review.Rating,
		ImageURL:     review.ImageURL,
		UserID:       review.UserID,
		RestaurantID: review.RestaurantID,
		CreatedAt:    review.CreatedAt,
	}
}
