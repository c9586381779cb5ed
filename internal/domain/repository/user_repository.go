// Package repository defines the persistence interfaces of the domain.
// Implementations live in infra; the use cases only see these contracts.
package repository

import (
	"context"

	"tastebud/internal/domain/entity"
	"tastebud/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors shared by every storage backend. The backends are
// responsible for collapsing their native error conventions onto these.
var (
	ErrUserNotFound               = errors.New("user not found")
	ErrDuplicateUsername          = errors.New("username already registered")
	ErrDuplicateEmail             = errors.New("email already registered")
	ErrDuplicateVerificationToken = errors.New("verification token already in use")
)

// UserRepository provides lookup and mutation over credential records.
// Username, email and verification token are unique across all records;
// the backend enforces this and returns the duplicate sentinels above.
// FindByVerificationToken matches outstanding and consumed tokens alike,
// so repeated consumption of the same link resolves to the verified record.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, skip, limit int) ([]*entity.User, error)
	ListAdmins(ctx context.Context) ([]*entity.User, error)
}
