package file

import (
	"context"
	"time"

	"tastebud/internal/domain/entity"
	"tastebud/internal/domain/repository"

	"github.com/google/uuid"
)

// userRecord is the on-disk shape of a credential record.
type userRecord struct {
	ID                        uuid.UUID `json:"id"`
	Username                  string    `json:"username"`
	Email                     string    `json:"email"`
	PasswordHash              string    `json:"password_hash"`
	Verified                  bool      `json:"verified"`
	VerificationToken         *string   `json:"verification_token"`
	ConsumedVerificationToken *string   `json:"consumed_verification_token"`
	IsAdmin                   bool      `json:"is_admin"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// holdsToken reports whether the record carries the token, outstanding or
// consumed. Consumed tokens stay resolvable and stay reserved against reuse.
func (rec userRecord) holdsToken(token *string) bool {
	if token == nil {
		return false
	}
	if rec.VerificationToken != nil && *rec.VerificationToken == *token {
		return true
	}

	return rec.ConsumedVerificationToken != nil && *rec.ConsumedVerificationToken == *token
}

// userRepository implements repository.UserRepository on the flat-file store.
// Transaction-bound instances skip locking because Execute already holds the
// store mutex.
type userRepository struct {
	store *Store
	lock  bool
}

// NewUserRepository returns a standalone, self-locking user repository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store, lock: true}
}

func (repo *userRepository) load() ([]userRecord, error) {
	return readJSON[userRecord](repo.store.path(usersFile))
}

func (repo *userRepository) save(records []userRecord) error {
	return writeJSON(repo.store.path(usersFile), records)
}

// Create appends a new record after checking the unique columns by hand;
// there is no database here to enforce them.
func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return err
	}

	for _, rec := range records {
		if rec.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if rec.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if rec.holdsToken(user.VerificationToken) {
			return repository.ErrDuplicateVerificationToken
		}
	}

	user.ID = newID(user.ID)
	user.CreatedAt = now()
	user.UpdatedAt = user.CreatedAt

	records = append(records, fromUserEntity(user))

	return repo.save(records)
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findBy(func(rec userRecord) bool { return rec.ID == id })
}

func (repo *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return repo.findBy(func(rec userRecord) bool { return rec.Username == username })
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return repo.findBy(func(rec userRecord) bool { return rec.Email == email })
}

func (repo *userRepository) FindByVerificationToken(_ context.Context, token string) (*entity.User, error) {
	return repo.findBy(func(rec userRecord) bool {
		return rec.holdsToken(&token)
	})
}

func (repo *userRepository) findBy(match func(userRecord) bool) (*entity.User, error) {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if match(records[i]) {
			return toUserEntity(records[i]), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

// Update overwrites the record matching the entity's ID, re-checking the
// unique columns against every other record.
func (repo *userRepository) Update(_ context.Context, user *entity.User) error {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return err
	}

	idx := -1
	for i, rec := range records {
		if rec.ID == user.ID {
			idx = i
			continue
		}
		if rec.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if rec.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if rec.holdsToken(user.VerificationToken) {
			return repository.ErrDuplicateVerificationToken
		}
	}
	if idx < 0 {
		return repository.ErrUserNotFound
	}

	user.UpdatedAt = now()

	updated := fromUserEntity(user)
	updated.CreatedAt = records[idx].CreatedAt
	records[idx] = updated

	return repo.save(records)
}

// List returns a page of users in insertion order.
func (repo *userRepository) List(_ context.Context, skip, limit int) ([]*entity.User, error) {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	page := pageSlice(records, skip, limit)
	users := make([]*entity.User, 0, len(page))
	for i := range page {
		users = append(users, toUserEntity(page[i]))
	}

	return users, nil
}

// ListAdmins returns every user holding the admin flag.
func (repo *userRepository) ListAdmins(_ context.Context) ([]*entity.User, error) {
	if repo.lock {
		repo.store.mu.Lock()
		defer repo.store.mu.Unlock()
	}

	records, err := repo.load()
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0)
	for i := range records {
		if records[i].IsAdmin {
			users = append(users, toUserEntity(records[i]))
		}
	}

	return users, nil
}

func toUserEntity(rec userRecord) *entity.User {
	return &entity.User{
		ID:                        rec.ID,
		Username:                  rec.Username,
		Email:                     rec.Email,
		PasswordHash:              rec.PasswordHash,
		Verified:                  rec.Verified,
		VerificationToken:         rec.VerificationToken,
		ConsumedVerificationToken: rec.ConsumedVerificationToken,
		IsAdmin:                   rec.IsAdmin,
		CreatedAt:                 rec.CreatedAt,
		UpdatedAt:                 rec.UpdatedAt,
	}
}

func fromUserEntity(user *entity.User) userRecord {
	return userRecord{
		ID:                        user.ID,
		Username:                  user.Username,
		Email:                     user.Email,
		PasswordHash:              user.PasswordHash,
		Verified:                  user.Verified,
		VerificationToken:         user.VerificationToken,
		ConsumedVerificationToken: user.ConsumedVerificationToken,
		IsAdmin:                   user.IsAdmin,
		CreatedAt:                 user.CreatedAt,
		UpdatedAt:                 user.UpdatedAt,
	}
}
