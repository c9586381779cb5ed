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

// reviewRepository implements the repository.ReviewRepository interface using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create persists a new review. The rating check constraint and the author
// and restaurant foreign keys are enforced by the database as a second line
// of defense behind the use case validation.
func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "review rating out of range")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "review references a missing user or restaurant")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

// FindByID retrieves a single review by its unique ID.
func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&reviewM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return toReviewDomain(&reviewM), nil
}

// ListByRestaurant returns a page of reviews for one restaurant, newest first.
func (repo *reviewRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, skip, limit int) ([]*entity.Review, error) {
	var models []model.ReviewModel
	if err := repo.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reviews by restaurant")
	}

	reviews := make([]*entity.Review, 0, len(models))
	for i := range models {
		reviews = append(reviews, toReviewDomain(&models[i]))
	}

	return reviews, nil
}

// ListDetailed returns every review joined with its author's username and the
// restaurant name, newest first, for the moderation view.
func (repo *reviewRepository) ListDetailed(ctx context.Context) ([]*entity.ReviewDetail, error) {
	var models []model.ReviewModel
	if err := repo.db.WithContext(ctx).
		Preload("User").
		Preload("Restaurant").
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list detailed reviews")
	}

	details := make([]*entity.ReviewDetail, 0, len(models))
	for i := range models {
		detail := &entity.ReviewDetail{
			Review: *toReviewDomain(&models[i]),
		}
		if models[i].User != nil {
			detail.Username = models[i].User.Username
		}
		if models[i].Restaurant != nil {
			detail.RestaurantName = models[i].Restaurant.Name
		}
		details = append(details, detail)
	}

	return details, nil
}

// Delete removes a review. Deleting an unknown ID reports ErrReviewNotFound
// so a double delete surfaces to the caller.
func (repo *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ReviewModel{})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	if data == nil {
		return nil
	}

	return &entity.Review{
		ID:           data.ID,
		Text:         data.Text,
		Rating:       data.Rating,
		ImageURL:     data.ImageURL,
		UserID:       data.UserID,
		RestaurantID: data.RestaurantID,
		CreatedAt:    data.CreatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	if data == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:           data.ID,
		Text:         data.Text,
		Rating:       data.Rating,
		ImageURL:     data.ImageURL,
		UserID:       data.UserID,
		RestaurantID: data.RestaurantID,
	}
}
