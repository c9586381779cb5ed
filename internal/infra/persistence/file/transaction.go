package file

import (
	"context"

	"tastebud/internal/domain/repository"
)

// fileTransactionManager implements the domain's TransactionManager on the
// flat-file store. There is no rollback here; Execute holds the store mutex
// for the whole callback, so concurrent callers observe each multi-step
// operation as a unit even though partial writes stay on disk if a later
// step fails.
type fileTransactionManager struct {
	store *Store
}

// fileRepositoryFactory hands out repositories that skip per-operation
// locking because Execute already holds the store mutex.
type fileRepositoryFactory struct {
	store *Store
}

// UserRepo returns a user repository bound to the held lock.
func (f *fileRepositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{store: f.store, lock: false}
}

// RestaurantRepo returns a restaurant repository bound to the held lock.
func (f *fileRepositoryFactory) RestaurantRepo() repository.RestaurantRepository {
	return &restaurantRepository{store: f.store, lock: false}
}

// ReviewRepo returns a review repository bound to the held lock.
func (f *fileRepositoryFactory) ReviewRepo() repository.ReviewRepository {
	return &reviewRepository{store: f.store, lock: false}
}

// NewTransactionManager is the constructor for fileTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &fileTransactionManager{store: store}
}

// Execute serializes the callback against every other store operation.
func (tm *fileTransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	return fn(&fileRepositoryFactory{store: tm.store})
}
