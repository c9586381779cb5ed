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

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create persists a new credential record. Duplicate-key violations are
// collapsed onto the repository sentinels so the use case layer can tell
// a taken username apart from a taken email.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return userUniqueViolationSentinel(err)
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Propagate the generated ID and timestamps back to the entity.
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByUsername retrieves a single user by their login name.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByVerificationToken retrieves the user holding a verification token,
// outstanding or already consumed. Matching consumed tokens lets a repeated
// consumption resolve to the verified record and succeed as a no-op.
func (repo *userRepository) FindByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("verification_token = ? OR consumed_verification_token = ?", token, token).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by verification token")
	}

	return toUserDomain(&userM), nil
}

// Update overwrites an existing credential record. The explicit Select forces
// every listed column into the UPDATE, including NULL for a cleared
// verification token, which Updates alone would skip as a zero value.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("id = ?", user.ID).
		Select("Username", "Email", "PasswordHash", "Verified",
			"VerificationToken", "ConsumedVerificationToken", "IsAdmin").
		Updates(userM)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return userUniqueViolationSentinel(err)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// List returns a page of users ordered by creation time.
func (repo *userRepository) List(ctx context.Context, skip, limit int) ([]*entity.User, error) {
	var models []model.UserModel
	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, toUserDomain(&models[i]))
	}

	return users, nil
}

// ListAdmins returns every user holding the admin flag.
func (repo *userRepository) ListAdmins(ctx context.Context) ([]*entity.User, error) {
	var models []model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("is_admin = ?", true).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list admins")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		users = append(users, toUserDomain(&models[i]))
	}

	return users, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                        data.ID,
		Username:                  data.Username,
		Email:                     data.Email,
		PasswordHash:              data.PasswordHash,
		Verified:                  data.Verified,
		VerificationToken:         data.VerificationToken,
		ConsumedVerificationToken: data.ConsumedVerificationToken,
		IsAdmin:                   data.IsAdmin,
		CreatedAt:                 data.CreatedAt,
		UpdatedAt:                 data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                        data.ID,
		Username:                  data.Username,
		Email:                     data.Email,
		PasswordHash:              data.PasswordHash,
		Verified:                  data.Verified,
		VerificationToken:         data.VerificationToken,
		ConsumedVerificationToken: data.ConsumedVerificationToken,
		IsAdmin:                   data.IsAdmin,
	}
}
