package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinRating and MaxRating bound the review score.
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a restaurant, optionally with an attached image.
type Review struct {
	ID           uuid.UUID
	Text         string
	Rating       int
	ImageURL     *string // Public URL of the uploaded image, nil when no image was attached.
	UserID       uuid.UUID
	RestaurantID uuid.UUID
	CreatedAt    time.Time
}

// ValidRating reports whether the rating falls inside the allowed range.
func (r *Review) ValidRating() bool {
	return r.Rating >= MinRating && r.Rating <= MaxRating
}

// ReviewDetail is the moderation view of a review, joined with the
// author's username and the restaurant name.
type ReviewDetail struct {
	Review
	Username       string
	RestaurantName string
}
