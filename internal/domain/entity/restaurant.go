package entity

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant is a venue that users can review.
type Restaurant struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
