package usecase

import (
	"context"

	"tastebud/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUsecase defines the interface for moderation and role management.
// Every operation assumes the caller was already authorized as an admin.
type AdminUsecase interface {
	ListUsers(ctx context.Context, skip, limit int) ([]*entity.User, error)

	// ListAllReviews returns every review joined with author and
	// restaurant names for the moderation view.
	ListAllReviews(ctx context.Context) ([]*entity.ReviewDetail, error)

	DeleteReview(ctx context.Context, id uuid.UUID) error

	ListAdmins(ctx context.Context) ([]*entity.User, error)

	// GrantAdmin promotes the account registered under email. Promoting an
	// existing admin is a conflict.
	GrantAdmin(ctx context.Context, email string) error

	// RevokeAdmin demotes the account registered under email.
	RevokeAdmin(ctx context.Context, email string) error
}
