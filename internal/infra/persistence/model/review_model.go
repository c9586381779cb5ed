package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Text         string    `gorm:"type:text;not null"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	ImageURL     *string   `gorm:"type:varchar(512)"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time

	User       *UserModel       `gorm:"foreignKey:UserID"`
	Restaurant *RestaurantModel `gorm:"foreignKey:RestaurantID"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
