package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"tastebud/internal/domain/entity"
	"tastebud/internal/domain/repository"
	"tastebud/internal/domain/service"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- In-memory store and repositories ---

type memoryStore struct {
	users       []*entity.User
	restaurants []*entity.Restaurant
	reviews     []*entity.Review
}

type memoryFactory struct {
	store *memoryStore
}

func (f *memoryFactory) UserRepo() repository.UserRepository {
	return &memoryUserRepo{store: f.store}
}

func (f *memoryFactory) RestaurantRepo() repository.RestaurantRepository {
	return &memoryRestaurantRepo{store: f.store}
}

func (f *memoryFactory) ReviewRepo() repository.ReviewRepository {
	return &memoryReviewRepo{store: f.store}
}

// memoryTxManager runs callbacks directly against the shared store. The
// services under test only care that repository semantics hold.
type memoryTxManager struct {
	store *memoryStore
}

func newMemoryTxManager() *memoryTxManager {
	return &memoryTxManager{store: &memoryStore{}}
}

func (tm *memoryTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&memoryFactory{store: tm.store})
}

type memoryUserRepo struct {
	store *memoryStore
}

func (r *memoryUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.store.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if user.VerificationToken != nil {
			if existing.VerificationToken != nil && *existing.VerificationToken == *user.VerificationToken {
				return repository.ErrDuplicateVerificationToken
			}
			if existing.ConsumedVerificationToken != nil && *existing.ConsumedVerificationToken == *user.VerificationToken {
				return repository.ErrDuplicateVerificationToken
			}
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	clone := *user
	r.store.users = append(r.store.users, &clone)

	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *memoryUserRepo) FindByVerificationToken(_ context.Context, token string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			return true
		}

		return u.ConsumedVerificationToken != nil && *u.ConsumedVerificationToken == token
	})
}

func (r *memoryUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	for _, u := range r.store.users {
		if match(u) {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memoryUserRepo) Update(_ context.Context, user *entity.User) error {
	for i, existing := range r.store.users {
		if existing.ID == user.ID {
			user.UpdatedAt = time.Now()
			clone := *user
			r.store.users[i] = &clone

			return nil
		}
	}

	return repository.ErrUserNotFound
}

func (r *memoryUserRepo) List(_ context.Context, skip, limit int) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	for i, u := range r.store.users {
		if i < skip {
			continue
		}
		if limit > 0 && len(users) >= limit {
			break
		}
		clone := *u
		users = append(users, &clone)
	}

	return users, nil
}

func (r *memoryUserRepo) ListAdmins(_ context.Context) ([]*entity.User, error) {
	admins := make([]*entity.User, 0)
	for _, u := range r.store.users {
		if u.IsAdmin {
			clone := *u
			admins = append(admins, &clone)
		}
	}

	return admins, nil
}

type memoryRestaurantRepo struct {
	store *memoryStore
}

func (r *memoryRestaurantRepo) Create(_ context.Context, restaurant *entity.Restaurant) error {
	if restaurant.ID == uuid.Nil {
		restaurant.ID = uuid.New()
	}
	restaurant.CreatedAt = time.Now()

	clone := *restaurant
	r.store.restaurants = append(r.store.restaurants, &clone)

	return nil
}

func (r *memoryRestaurantRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Restaurant, error) {
	for _, rest := range r.store.restaurants {
		if rest.ID == id {
			clone := *rest

			return &clone, nil
		}
	}

	return nil, repository.ErrRestaurantNotFound
}

func (r *memoryRestaurantRepo) List(_ context.Context, skip, limit int) ([]*entity.Restaurant, error) {
	restaurants := make([]*entity.Restaurant, 0)
	for i, rest := range r.store.restaurants {
		if i < skip {
			continue
		}
		if limit > 0 && len(restaurants) >= limit {
			break
		}
		clone := *rest
		restaurants = append(restaurants, &clone)
	}

	return restaurants, nil
}

type memoryReviewRepo struct {
	store *memoryStore
}

func (r *memoryReviewRepo) Create(_ context.Context, review *entity.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	review.CreatedAt = time.Now()

	clone := *review
	r.store.reviews = append(r.store.reviews, &clone)

	return nil
}

func (r *memoryReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	for _, rev := range r.store.reviews {
		if rev.ID == id {
			clone := *rev

			return &clone, nil
		}
	}

	return nil, repository.ErrReviewNotFound
}

func (r *memoryReviewRepo) ListByRestaurant(_ context.Context, restaurantID uuid.UUID, skip, limit int) ([]*entity.Review, error) {
	reviews := make([]*entity.Review, 0)
	matched := 0
	for _, rev := range r.store.reviews {
		if rev.RestaurantID != restaurantID {
			continue
		}
		matched++
		if matched <= skip {
			continue
		}
		if limit > 0 && len(reviews) >= limit {
			break
		}
		clone := *rev
		reviews = append(reviews, &clone)
	}

	return reviews, nil
}

func (r *memoryReviewRepo) ListDetailed(_ context.Context) ([]*entity.ReviewDetail, error) {
	details := make([]*entity.ReviewDetail, 0, len(r.store.reviews))
	for _, rev := range r.store.reviews {
		detail := &entity.ReviewDetail{
			Review:         *rev,
			Username:       "Unknown",
			RestaurantName: "Unknown",
		}
		for _, u := range r.store.users {
			if u.ID == rev.UserID {
				detail.Username = u.Username
			}
		}
		for _, rest := range r.store.restaurants {
			if rest.ID == rev.RestaurantID {
				detail.RestaurantName = rest.Name
			}
		}
		details = append(details, detail)
	}

	return details, nil
}

func (r *memoryReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, rev := range r.store.reviews {
		if rev.ID == id {
			r.store.reviews = append(r.store.reviews[:i], r.store.reviews[i+1:]...)

			return nil
		}
	}

	return repository.ErrReviewNotFound
}

// --- Fake domain services ---

// fakeHasher marks digests deterministically so tests can assert the raw
// password never reaches the store.
type fakeHasher struct {
	failHash bool
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.failHash {
		return "", fmt.Errorf("hash unavailable")
	}

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeCodec issues "tok|<subject>" and decodes it back. Special tokens
// simulate the codec failure modes.
type fakeCodec struct {
	issued []string
}

const (
	fakeExpiredToken   = "expired"
	fakeMalformedToken = "malformed"
	fakeEmptySubject   = "tok|"
)

func (c *fakeCodec) Issue(subject string, _ time.Duration) (string, error) {
	token := "tok|" + subject
	c.issued = append(c.issued, token)

	return token, nil
}

func (c *fakeCodec) Decode(token string) (*service.Claims, error) {
	switch token {
	case fakeExpiredToken:
		return nil, service.ErrTokenExpired
	case fakeMalformedToken:
		return nil, service.ErrTokenMalformed
	}

	subject, ok := strings.CutPrefix(token, "tok|")
	if !ok {
		return nil, service.ErrTokenSignature
	}

	return &service.Claims{Subject: subject, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

// fakeGenerator hands out a configurable token sequence.
type fakeGenerator struct {
	tokens []string
	next   int
}

func (g *fakeGenerator) GenerateVerificationToken() (string, error) {
	if g.next < len(g.tokens) {
		token := g.tokens[g.next]
		g.next++

		return token, nil
	}

	g.next++

	return fmt.Sprintf("vtok-%d", g.next), nil
}

// fakeMailer records deliveries and can be told to fail.
type fakeMailer struct {
	sent []struct{ email, token string }
	fail bool
}

func (m *fakeMailer) SendVerificationMail(_ context.Context, email, token string) error {
	if m.fail {
		return fmt.Errorf("smtp unreachable")
	}

	m.sent = append(m.sent, struct{ email, token string }{email, token})

	return nil
}

// fakeUploader returns a fixed URL or fails.
type fakeUploader struct {
	url    string
	fail   bool
	called int
}

func (u *fakeUploader) Upload(_ context.Context, _ []byte, _, _ string) (string, error) {
	u.called++
	if u.fail {
		return "", fmt.Errorf("upload backend down")
	}

	return u.url, nil
}
