package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tastebud/config"
	"tastebud/internal/domain/entity"
	"tastebud/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(Params{Config: &config.Config{
		Storage: config.StorageConfig{Driver: "file", DataPath: t.TempDir()},
	}})
	require.NoError(t, err)

	return store
}

func strPtr(s string) *string { return &s }

func TestNewStore_SeedsCollectionFiles(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{usersFile, restaurantsFile, reviewsFile} {
		data, err := os.ReadFile(store.path(name))
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(data))
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	user := &entity.User{
		Username:          "alice",
		Email:             "alice@example.com",
		PasswordHash:      "$2a$10$hash",
		VerificationToken: strPtr("tok-alice"),
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byToken, err := repo.FindByVerificationToken(ctx, "tok-alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byToken.ID)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_DuplicateSentinels(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{
		Username:          "alice",
		Email:             "alice@example.com",
		VerificationToken: strPtr("tok-1"),
	}))

	err := repo.Create(ctx, &entity.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)

	err = repo.Create(ctx, &entity.User{Username: "bob", Email: "alice@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	err = repo.Create(ctx, &entity.User{
		Username:          "carol",
		Email:             "carol@example.com",
		VerificationToken: strPtr("tok-1"),
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateVerificationToken)
}

func TestUserRepository_UpdateConsumesVerificationToken(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	user := &entity.User{
		Username:          "alice",
		Email:             "alice@example.com",
		VerificationToken: strPtr("tok-1"),
	}
	require.NoError(t, repo.Create(ctx, user))

	user.ConsumeVerification()
	require.NoError(t, repo.Update(ctx, user))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Verified)
	assert.Nil(t, stored.VerificationToken)
	require.NotNil(t, stored.ConsumedVerificationToken)
	assert.Equal(t, "tok-1", *stored.ConsumedVerificationToken)

	// The consumed token still resolves, so repeated consumption is a no-op,
	// and it stays reserved against reuse by new registrations.
	found, err := repo.FindByVerificationToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	err = repo.Create(ctx, &entity.User{
		Username:          "dave",
		Email:             "dave@example.com",
		VerificationToken: strPtr("tok-1"),
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateVerificationToken)
}

func TestUserRepository_UpdateUnknownID(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store)

	err := repo.Update(context.Background(), &entity.User{ID: uuid.New(), Username: "ghost"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_ListAdmins(t *testing.T) {
	store := newTestStore(t)
	repo := NewUserRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.User{Username: "alice", Email: "a@example.com", IsAdmin: true}))
	require.NoError(t, repo.Create(ctx, &entity.User{Username: "bob", Email: "b@example.com"}))

	admins, err := repo.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "alice", admins[0].Username)
}

func TestRestaurantRepository_Pagination(t *testing.T) {
	store := newTestStore(t)
	repo := NewRestaurantRepository(store)
	ctx := context.Background()

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		require.NoError(t, repo.Create(ctx, &entity.Restaurant{Name: name}))
	}

	page, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Second", page[0].Name)

	beyond, err := repo.List(ctx, 10, 5)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestReviewRepository_ListDetailedJoins(t *testing.T) {
	store := newTestStore(t)
	users := NewUserRepository(store)
	restaurants := NewRestaurantRepository(store)
	reviews := NewReviewRepository(store)
	ctx := context.Background()

	author := &entity.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, users.Create(ctx, author))

	place := &entity.Restaurant{Name: "Noodle Bar"}
	require.NoError(t, restaurants.Create(ctx, place))

	require.NoError(t, reviews.Create(ctx, &entity.Review{
		Text:         "great noodles",
		Rating:       5,
		UserID:       author.ID,
		RestaurantID: place.ID,
	}))
	require.NoError(t, reviews.Create(ctx, &entity.Review{
		Text:         "orphaned",
		Rating:       2,
		UserID:       uuid.New(),
		RestaurantID: uuid.New(),
	}))

	details, err := reviews.ListDetailed(ctx)
	require.NoError(t, err)
	require.Len(t, details, 2)

	byText := make(map[string]*entity.ReviewDetail, len(details))
	for _, d := range details {
		byText[d.Text] = d
	}

	assert.Equal(t, "alice", byText["great noodles"].Username)
	assert.Equal(t, "Noodle Bar", byText["great noodles"].RestaurantName)
	assert.Equal(t, "Unknown", byText["orphaned"].Username)
	assert.Equal(t, "Unknown", byText["orphaned"].RestaurantName)
}

func TestReviewRepository_Delete(t *testing.T) {
	store := newTestStore(t)
	repo := NewReviewRepository(store)
	ctx := context.Background()

	review := &entity.Review{Text: "ok", Rating: 3, UserID: uuid.New(), RestaurantID: uuid.New()}
	require.NoError(t, repo.Create(ctx, review))

	require.NoError(t, repo.Delete(ctx, review.ID))

	err := repo.Delete(ctx, review.ID)
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)
}

func TestTransactionManager_SharesStore(t *testing.T) {
	store := newTestStore(t)
	tm := NewTransactionManager(store)
	ctx := context.Background()

	err := tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		user := &entity.User{Username: "alice", Email: "alice@example.com"}
		if err := repos.UserRepo().Create(ctx, user); err != nil {
			return err
		}

		place := &entity.Restaurant{Name: "Noodle Bar"}
		return repos.RestaurantRepo().Create(ctx, place)
	})
	require.NoError(t, err)

	// Writes from inside the callback are visible to standalone repositories.
	_, err = NewUserRepository(store).FindByUsername(ctx, "alice")
	assert.NoError(t, err)
}

func TestReadJSON_CorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	items, err := readJSON[userRecord](path)
	require.NoError(t, err)
	assert.Empty(t, items)
}
